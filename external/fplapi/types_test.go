package fplapi

import (
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestDecimalUnmarshal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"quoted number", `"12.4"`, 12.4},
		{"bare number", `7.5`, 7.5},
		{"integer", `3`, 3},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage string", `"n/a"`, 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var d Decimal
			if err := sonic.Unmarshal([]byte(tc.in), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if d.Float64() != tc.want {
				t.Fatalf("got=%v want=%v", d.Float64(), tc.want)
			}
		})
	}
}

func TestHistoryEntryDecode_MissingFieldsDefaultToZero(t *testing.T) {
	t.Parallel()

	var entry HistoryEntry
	err := sonic.Unmarshal([]byte(`{"element": 10, "fixture": 100, "round": 2, "influence": "18.2"}`), &entry)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if entry.Element != 10 || entry.Fixture != 100 || entry.Round != 2 {
		t.Fatalf("unexpected identity fields: %+v", entry)
	}
	if entry.Influence.Float64() != 18.2 {
		t.Fatalf("influence: got=%v", entry.Influence.Float64())
	}
	if entry.Minutes != 0 || entry.GoalsScored != 0 || entry.BPS != 0 || entry.WasHome {
		t.Fatalf("absent fields must decode to zero values: %+v", entry)
	}
}

func TestFixtureDecode_NullScoresStayNil(t *testing.T) {
	t.Parallel()

	var f Fixture
	err := sonic.Unmarshal([]byte(`{"id": 100, "event": null, "team_h": 1, "team_a": 2, "team_h_score": null, "team_a_score": null}`), &f)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.TeamHScore != nil || f.TeamAScore != nil {
		t.Fatalf("null scores must stay nil: %+v", f)
	}
	if f.Event != 0 {
		t.Fatalf("null event must decode to zero: got=%d", f.Event)
	}
}

func TestBootstrapLookups(t *testing.T) {
	t.Parallel()

	b := Bootstrap{
		Teams:    []Team{{ID: 1, Name: "Arsenal"}, {ID: 2, Name: "Chelsea"}},
		Elements: []Element{{ID: 10, WebName: "Saka", Team: 1}},
	}

	teams := b.TeamByID()
	if teams[2].Name != "Chelsea" {
		t.Fatalf("team lookup: got=%q", teams[2].Name)
	}
	elements := b.ElementByID()
	if elements[10].WebName != "Saka" {
		t.Fatalf("element lookup: got=%q", elements[10].WebName)
	}
	if _, ok := elements[99]; ok {
		t.Fatal("unknown id must miss")
	}
}
