package odds

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// A decimal odds token as it appears on a bookmaker board: 1-2 integer digits
// and exactly two decimals. Comma decimal marks show up in OCR of Spanish
// boards, so both are accepted and normalized on storage.
const decTok = `(\d{1,2}[.,]\d{2})`

// Each market is extracted by an ordered list of pattern rules. Rules are
// tried in order and every candidate match is run through the market's
// plausibility check; the first candidate that validates wins. A market with
// no valid candidate is simply absent from the result.
type rule struct {
	name string
	re   *regexp.Regexp
}

var rules1X2 = []rule{
	// Labeled: home odds, a draw label, draw odds, optional team tokens, away odds.
	{"labeled-draw", regexp.MustCompile(`(?i)` + decTok + `\s+(?:empate|draw|x)\s+` + decTok + `\s+(?:\S+\s+){0,4}?` + decTok)},
	// Generic fallback: three decimals in a row.
	{"triple", regexp.MustCompile(decTok + `\s+` + decTok + `\s+` + decTok)},
}

var rulesOverUnder = []rule{
	{"over-first", regexp.MustCompile(`(?i)(?:m[áa]s|over)\s*(?:de\s*)?2[.,]5\s*[:\-]?\s*` + decTok + `[\s\S]{0,60}?(?:menos|under)\s*(?:de\s*)?2[.,]5\s*[:\-]?\s*` + decTok)},
	{"under-first", regexp.MustCompile(`(?i)(?:menos|under)\s*(?:de\s*)?2[.,]5\s*[:\-]?\s*` + decTok + `[\s\S]{0,60}?(?:m[áa]s|over)\s*(?:de\s*)?2[.,]5\s*[:\-]?\s*` + decTok)},
	{"generic", regexp.MustCompile(decTok + `\D{0,20}?2[.,]5\D{0,20}?` + decTok)},
}

var rulesBTTS = []rule{
	// \b after "sí" never holds (í is not an ASCII word byte), so the yes token
	// is delimited by an explicit separator instead.
	{"yes-no", regexp.MustCompile(`(?i)\b(?:s[íi]|yes)[\s:\-]+` + decTok + `[\s\S]{0,60}?\bno\b[\s:\-]+` + decTok)},
	{"pair", regexp.MustCompile(decTok + `\s+` + decTok)},
}

var rulesCorners = []rule{
	{"over-line", regexp.MustCompile(`(?i)(?:m[áa]s\s*(?:de\s*)?|over\s*)(\d{1,2})\s*[:\-]?\s*` + decTok)},
	{"line-odds", regexp.MustCompile(`\b(\d{1,2})\s*\D{0,10}?` + decTok)},
}

var bttsKeywords = []string{"ambos", "both", "equipos", "teams", "anotan", "marcan", "score", "btts"}

var cornerKeywords = []string{"córner", "corner", "esquina", "saque"}

var firstScorerLabels = []string{"primer goleador", "primer gol", "first scorer", "first goalscorer", "first goal"}

var decRE = regexp.MustCompile(decTok)

var lineMarkerRE = regexp.MustCompile(`2[.,]5`)

// ParseText runs every market extractor over one image's recognized text and
// returns whatever validated. Malformed or noisy input yields an empty Record,
// never an error.
func ParseText(text string) Record {
	text = NormalizeText(text)
	return Record{
		Match1X2:  Extract1X2(text),
		OverUnder: ExtractOverUnder(text),
		BTTS:      ExtractBTTS(text),
		Corners:   ExtractCorners(text),
		Players:   ExtractPlayers(text),
	}
}

// NormalizeText collapses newlines, tabs and runs of spaces so the pattern
// rules see one flat token stream.
func NormalizeText(t string) string {
	t = strings.ReplaceAll(t, "\n", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	return strings.Join(strings.Fields(t), " ")
}

// Extract1X2 returns the first home/draw/away triple that passes the
// per-outcome bands and the implied-probability filter, or nil.
func Extract1X2(text string) *Market1X2 {
	for _, r := range rules1X2 {
		for _, m := range r.re.FindAllStringSubmatch(text, -1) {
			home, okH := parseOdds(m[1])
			draw, okD := parseOdds(m[2])
			away, okA := parseOdds(m[3])
			if !okH || !okD || !okA {
				continue
			}
			if plausible1X2(home, draw, away) {
				return &Market1X2{Home: canonOdds(m[1]), Draw: canonOdds(m[2]), Away: canonOdds(m[3])}
			}
		}
	}
	return nil
}

// ExtractOverUnder extracts the 2.5-goals totals pair. The literal line
// marker must be present in the text; otherwise the market is absent.
func ExtractOverUnder(text string) *TotalsLine {
	if !lineMarkerRE.MatchString(text) {
		return nil
	}
	for _, r := range rulesOverUnder {
		for _, m := range r.re.FindAllStringSubmatch(text, -1) {
			over, under := m[1], m[2]
			if r.name == "under-first" {
				over, under = m[2], m[1]
			}
			o, okO := parseOdds(over)
			u, okU := parseOdds(under)
			if !okO || !okU {
				continue
			}
			if plausibleTotals(o, u) {
				return &TotalsLine{Line: "2.5", Over: canonOdds(over), Under: canonOdds(under)}
			}
		}
	}
	return nil
}

// ExtractBTTS extracts a yes/no pair for both-teams-to-score. At least one
// BTTS keyword must be present before any pattern is tried.
func ExtractBTTS(text string) *YesNo {
	if !containsAny(text, bttsKeywords) {
		return nil
	}
	for _, r := range rulesBTTS {
		for _, m := range r.re.FindAllStringSubmatch(text, -1) {
			yes, okY := parseOdds(m[1])
			no, okN := parseOdds(m[2])
			if !okY || !okN {
				continue
			}
			if plausibleBTTS(yes, no) {
				return &YesNo{Yes: canonOdds(m[1]), No: canonOdds(m[2])}
			}
		}
	}
	return nil
}

// ExtractCorners collects (threshold, odds) pairs for corner-count lines.
// Thresholds outside the usual 8..15 window are ignored; the first odds seen
// for a threshold wins.
func ExtractCorners(text string) map[int]string {
	if !containsAny(text, cornerKeywords) {
		return nil
	}
	out := map[int]string{}
	for _, r := range rulesCorners {
		for _, m := range r.re.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 8 || n > 15 {
				continue
			}
			if _, dup := out[n]; dup {
				continue
			}
			v, ok := parseOdds(m[2])
			if !ok || !plausibleCornerOdds(v) {
				continue
			}
			out[n] = canonOdds(m[2])
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ExtractPlayers matches the known-player reference list against the text and
// captures up to two following decimals per player. With a first-scorer label
// anywhere in the text the first value is the first-goal price and the second,
// when present, the anytime price; without the label only an anytime price is
// kept.
func ExtractPlayers(text string) map[string]PlayerOdds {
	low := strings.ToLower(text)
	firstScorer := containsAny(low, firstScorerLabels)

	// Earliest occurrence per player. Each player's odds search is bounded by
	// the next player mention so one row's prices never bleed into another's.
	type hit struct {
		name string
		pos  int
	}
	var hits []hit
	for _, p := range knownPlayers() {
		idx := -1
		for _, alias := range p.searchTerms() {
			if i := strings.Index(low, strings.ToLower(alias)); i != -1 && (idx == -1 || i < idx) {
				idx = i
			}
		}
		if idx != -1 {
			hits = append(hits, hit{name: p.Name, pos: idx})
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := map[string]PlayerOdds{}
	for i, h := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].pos
		}
		var vals []string
		for _, tok := range decRE.FindAllString(text[h.pos:end], 4) {
			v, ok := parseOdds(tok)
			if !ok || !plausiblePlayerOdds(v) {
				continue
			}
			vals = append(vals, canonOdds(tok))
			if len(vals) == 2 {
				break
			}
		}
		if len(vals) == 0 {
			continue
		}
		po := PlayerOdds{}
		if firstScorer {
			po[BetFirstGoal] = vals[0]
			if len(vals) > 1 {
				po[BetAnytimeGoal] = vals[1]
			}
		} else {
			po[BetAnytimeGoal] = vals[0]
		}
		out[h.name] = po
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// canonOdds normalizes a matched odds token to dot decimal notation.
func canonOdds(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

func containsAny(text string, keywords []string) bool {
	low := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(low, k) {
			return true
		}
	}
	return false
}
