package odds

import "github.com/shopspring/decimal"

// Plausibility bands per market. OCR noise produces plenty of decimal-looking
// strings (scores, timestamps, stake suggestions); anything outside the band
// for its market is rejected rather than stored.
var (
	min1X2Home = decimal.RequireFromString("1.01")
	max1X2Home = decimal.RequireFromString("50.0")
	min1X2Draw = decimal.RequireFromString("1.01")
	max1X2Draw = decimal.RequireFromString("15.0")
	min1X2Away = decimal.RequireFromString("1.01")
	max1X2Away = decimal.RequireFromString("50.0")

	minTotals = decimal.RequireFromString("1.01")
	maxTotals = decimal.RequireFromString("10.0")

	minBTTS = decimal.RequireFromString("1.20")
	maxBTTS = decimal.RequireFromString("5.00")

	minCorners = decimal.RequireFromString("1.01")
	maxCorners = decimal.RequireFromString("25.0")

	minPlayer = decimal.RequireFromString("1.50")
	maxPlayer = decimal.RequireFromString("25.00")

	// Bookmaker margin band: the implied probabilities of a real 1X2 line sum
	// to a little over 1. Triples far outside this are mis-OCR'd noise.
	minImplied = decimal.RequireFromString("0.95")
	maxImplied = decimal.RequireFromString("1.20")

	one = decimal.NewFromInt(1)
)

// parseOdds parses a decimal odds string, tolerating a comma decimal mark.
func parseOdds(s string) (decimal.Decimal, bool) {
	if len(s) == 0 {
		return decimal.Zero, false
	}
	norm := make([]byte, len(s))
	copy(norm, s)
	for i := range norm {
		if norm[i] == ',' {
			norm[i] = '.'
		}
	}
	d, err := decimal.NewFromString(string(norm))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func inBand(v, lo, hi decimal.Decimal) bool {
	return v.GreaterThanOrEqual(lo) && v.LessThanOrEqual(hi)
}

// impliedProbability sums 1/odds over mutually exclusive outcomes.
func impliedProbability(vals ...decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range vals {
		if v.IsZero() {
			return decimal.Zero
		}
		sum = sum.Add(one.Div(v))
	}
	return sum
}

// plausible1X2 checks per-outcome bands plus the implied-probability filter.
func plausible1X2(home, draw, away decimal.Decimal) bool {
	if !inBand(home, min1X2Home, max1X2Home) ||
		!inBand(draw, min1X2Draw, max1X2Draw) ||
		!inBand(away, min1X2Away, max1X2Away) {
		return false
	}
	return inBand(impliedProbability(home, draw, away), minImplied, maxImplied)
}

func plausibleTotals(over, under decimal.Decimal) bool {
	return inBand(over, minTotals, maxTotals) && inBand(under, minTotals, maxTotals)
}

func plausibleBTTS(yes, no decimal.Decimal) bool {
	return inBand(yes, minBTTS, maxBTTS) && inBand(no, minBTTS, maxBTTS)
}

func plausibleCornerOdds(v decimal.Decimal) bool {
	return inBand(v, minCorners, maxCorners)
}

func plausiblePlayerOdds(v decimal.Decimal) bool {
	return inBand(v, minPlayer, maxPlayer)
}
