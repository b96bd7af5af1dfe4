package models

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidMatchSpec reports a session-start input that does not name two
// teams.
var ErrInvalidMatchSpec = errors.New("invalid match specification")

// MatchInfo identifies the fixture a batch captures odds for. Team names are
// free text normalized to title case; date and league are optional.
type MatchInfo struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	League    string `json:"league,omitempty"`
	MatchDate string `json:"match_date,omitempty"`
}

var vsRE = regexp.MustCompile(`(?i)\s+vs\.?\s+|\s+-\s+`)

// ParseMatchSpec parses operator input of the form
// "Home Team vs Away Team[, date][, league]". Segments after the first comma
// are classified as a date when they contain a digit, else as the league.
func ParseMatchSpec(text string) (MatchInfo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return MatchInfo{}, ErrInvalidMatchSpec
	}
	segments := strings.Split(text, ",")
	teams := vsRE.Split(segments[0], 2)
	if len(teams) != 2 {
		return MatchInfo{}, ErrInvalidMatchSpec
	}
	info := MatchInfo{
		HomeTeam: TitleCase(teams[0]),
		AwayTeam: TitleCase(teams[1]),
	}
	if info.HomeTeam == "" || info.AwayTeam == "" {
		return MatchInfo{}, ErrInvalidMatchSpec
	}
	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if strings.ContainsAny(seg, "0123456789") && info.MatchDate == "" {
			info.MatchDate = seg
		} else if info.League == "" {
			info.League = TitleCase(seg)
		}
	}
	return info, nil
}

// Title renders the one-line fixture header used by the formatter and the
// outbound payload.
func (m MatchInfo) Title() string {
	title := m.HomeTeam + " vs " + m.AwayTeam
	if m.MatchDate != "" {
		title += " (" + m.MatchDate + ")"
	}
	if m.League != "" {
		title += " - " + m.League
	}
	return title
}

// TitleCase uppercases the first letter of each word, leaving the rest of
// each word untouched (so "FC" or "PSG" survive).
func TitleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
