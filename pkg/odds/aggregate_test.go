package odds

import (
	"reflect"
	"testing"
)

func TestMergeFirstWriteWins(t *testing.T) {
	first := Record{Match1X2: &Market1X2{Home: "2.10", Draw: "3.40", Away: "3.20"}}
	second := Record{
		Match1X2:  &Market1X2{Home: "2.50", Draw: "3.10", Away: "2.90"},
		OverUnder: &TotalsLine{Line: "2.5", Over: "1.66", Under: "2.20"},
	}
	got := Merge([]Record{first, second})
	if got.Match1X2.Home != "2.10" {
		t.Fatalf("first image's 1X2 must win, got %+v", got.Match1X2)
	}
	if got.OverUnder == nil || got.OverUnder.Over != "1.66" {
		t.Fatalf("later image must fill missing markets, got %+v", got.OverUnder)
	}
}

func TestMergeKeyUnion(t *testing.T) {
	a := Record{
		Corners: map[int]string{9: "1.85"},
		Players: map[string]PlayerOdds{"Mbappé": {BetFirstGoal: "4.50"}},
	}
	b := Record{
		Corners: map[int]string{9: "9.99", 10: "2.40"},
		Players: map[string]PlayerOdds{
			"Mbappé":  {BetFirstGoal: "9.99"},
			"Haaland": {BetAnytimeGoal: "2.50"},
		},
	}
	got := Merge([]Record{a, b})
	if got.Corners[9] != "1.85" || got.Corners[10] != "2.40" {
		t.Fatalf("got corners %v", got.Corners)
	}
	if got.Players["Mbappé"][BetFirstGoal] != "4.50" {
		t.Fatalf("existing player key must not be overwritten, got %v", got.Players)
	}
	if got.Players["Haaland"][BetAnytimeGoal] != "2.50" {
		t.Fatalf("new player key must be added, got %v", got.Players)
	}
}

func TestMergeDeterministic(t *testing.T) {
	in := []Record{
		{Match1X2: &Market1X2{Home: "2.10", Draw: "3.40", Away: "3.20"}},
		{BTTS: &YesNo{Yes: "1.80", No: "1.95"}, Corners: map[int]string{11: "2.05"}},
	}
	if a, b := Merge(in), Merge(in); !reflect.DeepEqual(a, b) {
		t.Fatalf("same ordered inputs must merge identically:\n%+v\n%+v", a, b)
	}
}

func TestMergeCopiesValues(t *testing.T) {
	src := Record{Players: map[string]PlayerOdds{"Kane": {BetAnytimeGoal: "2.10"}}}
	got := Merge([]Record{src})
	src.Players["Kane"][BetAnytimeGoal] = "mutated"
	if got.Players["Kane"][BetAnytimeGoal] != "2.10" {
		t.Fatal("merged record must not alias the input maps")
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil); !got.Empty() {
		t.Fatalf("got %+v", got)
	}
	if got := Merge([]Record{{}, {}}); !got.Empty() {
		t.Fatalf("got %+v", got)
	}
}
