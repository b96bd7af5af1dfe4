package odds

import (
	"fmt"
	"sort"
	"strings"
)

// Rendering is deliberately boring: fixed label text, fixed field order,
// sorted map keys. Both the confirmation messages and the downstream payload
// embed these strings, and the tests compare them verbatim.

const notDetected = "not detected"

// Summary renders one line per extracted market under the given title.
// Markets absent from the record are omitted entirely.
func Summary(title string, r Record) string {
	var b strings.Builder
	b.WriteString(title)
	if r.Match1X2 != nil {
		fmt.Fprintf(&b, "\n1X2: %s / %s / %s", r.Match1X2.Home, r.Match1X2.Draw, r.Match1X2.Away)
	}
	if r.OverUnder != nil {
		fmt.Fprintf(&b, "\nO/U %s: over %s, under %s", r.OverUnder.Line, r.OverUnder.Over, r.OverUnder.Under)
	}
	if r.BTTS != nil {
		fmt.Fprintf(&b, "\nBTTS: yes %s, no %s", r.BTTS.Yes, r.BTTS.No)
	}
	if len(r.Corners) > 0 {
		b.WriteString("\nCorners: " + strings.Join(cornerLines(r.Corners), ", "))
	}
	if len(r.Players) > 0 {
		b.WriteString("\nPlayers: " + strings.Join(playerLines(r.Players), "; "))
	}
	return b.String()
}

// Detailed renders one section per market with a per-outcome breakdown,
// writing a "not detected" placeholder for every missing market so the reader
// sees at a glance what the OCR pass did not find.
func Detailed(title string, r Record) string {
	var b strings.Builder
	b.WriteString(title)

	b.WriteString("\n\nMatch result (1X2)")
	if r.Match1X2 != nil {
		fmt.Fprintf(&b, "\n  home: %s\n  draw: %s\n  away: %s", r.Match1X2.Home, r.Match1X2.Draw, r.Match1X2.Away)
	} else {
		b.WriteString("\n  " + notDetected)
	}

	b.WriteString("\n\nGoals over/under")
	if r.OverUnder != nil {
		fmt.Fprintf(&b, "\n  over %s: %s\n  under %s: %s", r.OverUnder.Line, r.OverUnder.Over, r.OverUnder.Line, r.OverUnder.Under)
	} else {
		b.WriteString("\n  " + notDetected)
	}

	b.WriteString("\n\nBoth teams to score")
	if r.BTTS != nil {
		fmt.Fprintf(&b, "\n  yes: %s\n  no: %s", r.BTTS.Yes, r.BTTS.No)
	} else {
		b.WriteString("\n  " + notDetected)
	}

	b.WriteString("\n\nCorners")
	if len(r.Corners) > 0 {
		for _, line := range cornerLines(r.Corners) {
			b.WriteString("\n  " + line)
		}
	} else {
		b.WriteString("\n  " + notDetected)
	}

	b.WriteString("\n\nPlayers")
	if len(r.Players) > 0 {
		for _, line := range playerLines(r.Players) {
			b.WriteString("\n  " + line)
		}
	} else {
		b.WriteString("\n  " + notDetected)
	}
	return b.String()
}

func cornerLines(corners map[int]string) []string {
	lines := make([]int, 0, len(corners))
	for n := range corners {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	out := make([]string, 0, len(lines))
	for _, n := range lines {
		out = append(out, fmt.Sprintf("over %d: %s", n, corners[n]))
	}
	return out
}

func playerLines(players map[string]PlayerOdds) []string {
	names := make([]string, 0, len(players))
	for n := range players {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		bets := players[name]
		parts := []string{}
		if v, ok := bets[BetFirstGoal]; ok {
			parts = append(parts, "first goal "+v)
		}
		if v, ok := bets[BetAnytimeGoal]; ok {
			parts = append(parts, "anytime "+v)
		}
		out = append(out, name+": "+strings.Join(parts, ", "))
	}
	return out
}
