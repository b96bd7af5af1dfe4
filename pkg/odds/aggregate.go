package odds

// Merge consolidates per-image records, in arrival order, into one record.
// Scalar markets are first-write-wins: once an image yields a valid reading,
// conflicting OCR noise from a later screenshot does not override it. The
// multi-valued markets (corners, players) union by key with the same
// first-write-wins rule per key. Merging the same ordered inputs twice yields
// an identical result.
func Merge(records []Record) Record {
	var out Record
	for _, r := range records {
		if out.Match1X2 == nil && r.Match1X2 != nil {
			v := *r.Match1X2
			out.Match1X2 = &v
		}
		if out.OverUnder == nil && r.OverUnder != nil {
			v := *r.OverUnder
			out.OverUnder = &v
		}
		if out.BTTS == nil && r.BTTS != nil {
			v := *r.BTTS
			out.BTTS = &v
		}
		for line, price := range r.Corners {
			if out.Corners == nil {
				out.Corners = map[int]string{}
			}
			if _, taken := out.Corners[line]; !taken {
				out.Corners[line] = price
			}
		}
		for name, bets := range r.Players {
			if out.Players == nil {
				out.Players = map[string]PlayerOdds{}
			}
			if _, taken := out.Players[name]; !taken {
				cp := PlayerOdds{}
				for bet, price := range bets {
					cp[bet] = price
				}
				out.Players[name] = cp
			}
		}
	}
	return out
}
