package models

import (
	"errors"
	"testing"
)

func TestParseMatchSpec(t *testing.T) {
	cases := []struct {
		in   string
		want MatchInfo
	}{
		{"real madrid vs barcelona", MatchInfo{HomeTeam: "Real Madrid", AwayTeam: "Barcelona"}},
		{"Real Madrid VS. Barcelona", MatchInfo{HomeTeam: "Real Madrid", AwayTeam: "Barcelona"}},
		{"Atletico - Sevilla", MatchInfo{HomeTeam: "Atletico", AwayTeam: "Sevilla"}},
		{
			"atletico vs sevilla, 2026-05-01, la liga",
			MatchInfo{HomeTeam: "Atletico", AwayTeam: "Sevilla", MatchDate: "2026-05-01", League: "La Liga"},
		},
		{
			"atletico vs sevilla, la liga, 2026-05-01",
			MatchInfo{HomeTeam: "Atletico", AwayTeam: "Sevilla", MatchDate: "2026-05-01", League: "La Liga"},
		},
		{"PSG vs city", MatchInfo{HomeTeam: "PSG", AwayTeam: "City"}},
	}
	for _, tc := range cases {
		got, err := ParseMatchSpec(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %+v want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseMatchSpecInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "real madrid", "vs barcelona", "real madrid vs "} {
		if _, err := ParseMatchSpec(in); !errors.Is(err, ErrInvalidMatchSpec) {
			t.Fatalf("%q: got %v", in, err)
		}
	}
}

func TestTitle(t *testing.T) {
	m := MatchInfo{HomeTeam: "Real Madrid", AwayTeam: "Barcelona"}
	if got := m.Title(); got != "Real Madrid vs Barcelona" {
		t.Fatalf("got %q", got)
	}
	m.MatchDate = "2026-05-01"
	m.League = "La Liga"
	if got := m.Title(); got != "Real Madrid vs Barcelona (2026-05-01) - La Liga" {
		t.Fatalf("got %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"real madrid": "Real Madrid",
		"FC barcelona": "FC Barcelona",
		"  spaced   out ": "Spaced Out",
		"": "",
	}
	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Fatalf("%q: got %q", in, got)
		}
	}
}
