package odds

// Player bet types recognised by the parser.
const (
	BetFirstGoal   = "firstGoal"
	BetAnytimeGoal = "anytimeGoal"
)

// Market1X2 holds match-winner odds. Values are the exact decimal strings
// found in the recognized text (e.g. "2.10") so display never suffers float
// rounding.
type Market1X2 struct {
	Home string `json:"home"`
	Draw string `json:"draw"`
	Away string `json:"away"`
}

// TotalsLine holds over/under odds for one goals line.
type TotalsLine struct {
	Line  string `json:"line"`
	Over  string `json:"over"`
	Under string `json:"under"`
}

// YesNo holds a yes/no market pair (both teams to score).
type YesNo struct {
	Yes string `json:"yes"`
	No  string `json:"no"`
}

// PlayerOdds maps a bet type (BetFirstGoal, BetAnytimeGoal) to its odds.
type PlayerOdds map[string]string

// Record is the set of betting markets extracted from one screenshot, or the
// consolidated result across a whole capture batch. A missing market is
// represented by a nil pointer / empty map, not by an error: absence is the
// "not found" signal.
type Record struct {
	Match1X2  *Market1X2            `json:"1x2,omitempty"`
	OverUnder *TotalsLine           `json:"over_under,omitempty"`
	BTTS      *YesNo                `json:"btts,omitempty"`
	Corners   map[int]string        `json:"corners,omitempty"`
	Players   map[string]PlayerOdds `json:"players,omitempty"`
}

// Empty reports whether no market at all was extracted.
func (r Record) Empty() bool {
	return r.Match1X2 == nil && r.OverUnder == nil && r.BTTS == nil &&
		len(r.Corners) == 0 && len(r.Players) == 0
}
