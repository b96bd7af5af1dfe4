package odds

import "testing"

const bet365Block = "Real Madrid 2.10 Empate 3.40 Barcelona 3.20 Más de 2.5 1.66 Menos de 2.5 2.20"

func TestExtract1X2Labeled(t *testing.T) {
	m := Extract1X2(bet365Block)
	if m == nil {
		t.Fatal("expected a 1X2 market")
	}
	if m.Home != "2.10" || m.Draw != "3.40" || m.Away != "3.20" {
		t.Fatalf("got %+v", m)
	}
}

func TestExtract1X2GenericTriple(t *testing.T) {
	m := Extract1X2("2.00 3.50 3.80")
	if m == nil {
		t.Fatal("expected a 1X2 market")
	}
	if m.Home != "2.00" || m.Draw != "3.50" || m.Away != "3.80" {
		t.Fatalf("got %+v", m)
	}
}

func TestExtract1X2LabeledBeatsEarlierTriple(t *testing.T) {
	// A valid unlabeled triple appears first in the document, but the labeled
	// rule has priority over the generic fallback.
	text := "2.00 3.50 3.80 cuotas 2.10 Empate 3.40 Arsenal 3.20"
	m := Extract1X2(text)
	if m == nil {
		t.Fatal("expected a 1X2 market")
	}
	if m.Home != "2.10" || m.Draw != "3.40" || m.Away != "3.20" {
		t.Fatalf("labeled pattern should win, got %+v", m)
	}
}

func TestExtract1X2ImpliedProbabilityBand(t *testing.T) {
	// 3 x 1.10 implies ~272% book, far outside any real margin.
	if m := Extract1X2("1.10 1.10 1.10"); m != nil {
		t.Fatalf("expected rejection, got %+v", m)
	}
	// ~55% book is equally implausible.
	if m := Extract1X2("5.00 6.00 7.00"); m != nil {
		t.Fatalf("expected rejection, got %+v", m)
	}
}

func TestExtract1X2DrawCap(t *testing.T) {
	// Implied probability is fine but the draw leg exceeds its band.
	if m := Extract1X2("1.05 16.00 18.00"); m != nil {
		t.Fatalf("expected rejection, got %+v", m)
	}
}

func TestExtract1X2CommaDecimals(t *testing.T) {
	m := Extract1X2("Betis 2,10 Empate 3,40 Sevilla 3,20")
	if m == nil {
		t.Fatal("expected a 1X2 market")
	}
	if m.Home != "2.10" || m.Draw != "3.40" || m.Away != "3.20" {
		t.Fatalf("expected dot normalization, got %+v", m)
	}
}

func TestExtractOverUnder(t *testing.T) {
	ou := ExtractOverUnder(bet365Block)
	if ou == nil {
		t.Fatal("expected an over/under market")
	}
	if ou.Line != "2.5" || ou.Over != "1.66" || ou.Under != "2.20" {
		t.Fatalf("got %+v", ou)
	}
}

func TestExtractOverUnderRequiresLineMarker(t *testing.T) {
	if ou := ExtractOverUnder("Over 1.66 Under 2.20"); ou != nil {
		t.Fatalf("expected absence without a 2.5 marker, got %+v", ou)
	}
}

func TestExtractOverUnderCommaLine(t *testing.T) {
	ou := ExtractOverUnder("Más de 2,5 1.66 Menos de 2,5 2.20")
	if ou == nil {
		t.Fatal("expected an over/under market")
	}
	if ou.Over != "1.66" || ou.Under != "2.20" {
		t.Fatalf("got %+v", ou)
	}
}

func TestExtractOverUnderRejectsImplausible(t *testing.T) {
	if ou := ExtractOverUnder("Over 2.5 15.00 Under 2.5 1.01"); ou != nil {
		t.Fatalf("expected rejection, got %+v", ou)
	}
}

func TestExtractBTTS(t *testing.T) {
	b := ExtractBTTS("Ambos equipos marcan Sí 1.80 No 1.95")
	if b == nil {
		t.Fatal("expected a BTTS market")
	}
	if b.Yes != "1.80" || b.No != "1.95" {
		t.Fatalf("got %+v", b)
	}
}

func TestExtractBTTSRequiresKeyword(t *testing.T) {
	if b := ExtractBTTS("Sí 1.80 No 1.95"); b != nil {
		t.Fatalf("expected absence without BTTS keyword, got %+v", b)
	}
}

func TestExtractBTTSBand(t *testing.T) {
	if b := ExtractBTTS("Both teams to score Yes 8.00 No 1.01"); b != nil {
		t.Fatalf("expected rejection, got %+v", b)
	}
}

func TestExtractCorners(t *testing.T) {
	c := ExtractCorners("Córners Más de 9 1.85 Más de 10 2.40")
	if len(c) != 2 {
		t.Fatalf("expected two corner lines, got %v", c)
	}
	if c[9] != "1.85" || c[10] != "2.40" {
		t.Fatalf("got %v", c)
	}
}

func TestExtractCornersThresholdWindow(t *testing.T) {
	c := ExtractCorners("Corners Over 5 1.50 Over 20 3.00 Over 11 2.05")
	if len(c) != 1 || c[11] != "2.05" {
		t.Fatalf("only the 8..15 window should pass, got %v", c)
	}
}

func TestExtractCornersRequiresKeyword(t *testing.T) {
	if c := ExtractCorners("Más de 9 1.85"); c != nil {
		t.Fatalf("expected absence without corners keyword, got %v", c)
	}
}

func TestExtractPlayersFirstScorer(t *testing.T) {
	p := ExtractPlayers("Primer goleador: Mbappé 4.50 Vinicius 6.00")
	if len(p) != 2 {
		t.Fatalf("expected two players, got %v", p)
	}
	if p["Mbappé"][BetFirstGoal] != "4.50" {
		t.Fatalf("got %v", p["Mbappé"])
	}
	if p["Vinicius"][BetFirstGoal] != "6.00" {
		t.Fatalf("odds must not bleed across players, got %v", p["Vinicius"])
	}
}

func TestExtractPlayersAnytime(t *testing.T) {
	p := ExtractPlayers("Haaland marca en cualquier momento 2.50")
	if p["Haaland"][BetAnytimeGoal] != "2.50" {
		t.Fatalf("got %v", p)
	}
	if _, ok := p["Haaland"][BetFirstGoal]; ok {
		t.Fatalf("no first-scorer label present, got %v", p["Haaland"])
	}
}

func TestExtractPlayersTwoValues(t *testing.T) {
	p := ExtractPlayers("First scorer Lewandowski 5.50 9.00")
	if p["Lewandowski"][BetFirstGoal] != "5.50" || p["Lewandowski"][BetAnytimeGoal] != "9.00" {
		t.Fatalf("got %v", p["Lewandowski"])
	}
}

func TestExtractPlayersAlias(t *testing.T) {
	p := ExtractPlayers("First scorer Mbappe 4.50")
	if p["Mbappé"][BetFirstGoal] != "4.50" {
		t.Fatalf("alias should map to canonical name, got %v", p)
	}
}

func TestExtractPlayersBand(t *testing.T) {
	if p := ExtractPlayers("Messi 1.20"); p != nil {
		t.Fatalf("expected rejection below band, got %v", p)
	}
}

func TestParseTextEndToEnd(t *testing.T) {
	rec := ParseText(bet365Block)
	if rec.Match1X2 == nil || rec.OverUnder == nil {
		t.Fatalf("expected 1X2 and over/under, got %+v", rec)
	}
	if rec.BTTS != nil || rec.Corners != nil || rec.Players != nil {
		t.Fatalf("unexpected extra markets: %+v", rec)
	}
}

func TestParseTextGarbage(t *testing.T) {
	for _, text := range []string{"", "%%%% ???", "lorem ipsum dolor", "OCR not available"} {
		if rec := ParseText(text); !rec.Empty() {
			t.Fatalf("expected empty record for %q, got %+v", text, rec)
		}
	}
}

func TestParseTextMultiline(t *testing.T) {
	rec := ParseText("Real Madrid 2.10\nEmpate 3.40\nBarcelona 3.20")
	if rec.Match1X2 == nil || rec.Match1X2.Draw != "3.40" {
		t.Fatalf("newlines should normalize away, got %+v", rec)
	}
}
