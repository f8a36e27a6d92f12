package usecase

import (
	"testing"
	"time"

	"github.com/fpl-analytics/fpl-pipeline/external/fplapi"
)

func testBootstrap() fplapi.Bootstrap {
	return fplapi.Bootstrap{
		Events: []fplapi.Event{{ID: 1, Name: "Gameweek 1"}},
		Teams: []fplapi.Team{
			{ID: 1, Name: "Arsenal", ShortName: "ARS"},
			{ID: 2, Name: "Chelsea", ShortName: "CHE"},
			{ID: 3, Name: "Everton", ShortName: "EVE"},
		},
	}
}

func intPtr(v int) *int { return &v }

func TestBuildFixtureTable_EmptyInput(t *testing.T) {
	t.Parallel()

	rows := BuildFixtureTable(nil, testBootstrap(), "2025-2026")
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got=%d rows", len(rows))
	}
}

func TestBuildFixtureTable_DoublesRowCount(t *testing.T) {
	t.Parallel()

	fixtures := []fplapi.Fixture{
		{ID: 100, Event: 1, TeamH: 1, TeamA: 2, KickoffTime: "2025-08-16T14:00:00Z"},
		{ID: 101, Event: 1, TeamH: 3, TeamA: 1, KickoffTime: "2025-08-17T15:30:00Z"},
		{ID: 102, Event: 2, TeamH: 2, TeamA: 3, KickoffTime: "2025-08-23T14:00:00Z"},
	}

	rows := BuildFixtureTable(fixtures, testBootstrap(), "2025-2026")
	if len(rows) != 6 {
		t.Fatalf("expected 2x input rows: got=%d want=6", len(rows))
	}
}

func TestPerspectiveRows_PairingAndDifficulty(t *testing.T) {
	t.Parallel()

	raw := fplapi.Fixture{
		ID:              100,
		Event:           1,
		TeamH:           1,
		TeamA:           2,
		TeamHDifficulty: 2,
		TeamADifficulty: 4,
		KickoffTime:     "2025-08-16T14:00:00Z",
		Finished:        true,
		TeamHScore:      intPtr(3),
		TeamAScore:      intPtr(1),
	}

	away, home := perspectiveRows(raw, testBootstrap().TeamByID(), "2025-2026")

	if away.TeamID != 2 || away.OpponentTeamID != 1 || away.WasHome {
		t.Fatalf("away row must carry the away team perspective, got team=%d opponent=%d was_home=%v",
			away.TeamID, away.OpponentTeamID, away.WasHome)
	}
	if home.TeamID != 1 || home.OpponentTeamID != 2 || !home.WasHome {
		t.Fatalf("home row must carry the home team perspective, got team=%d opponent=%d was_home=%v",
			home.TeamID, home.OpponentTeamID, home.WasHome)
	}
	if away.FixtureDifficulty != 4 || home.FixtureDifficulty != 2 {
		t.Fatalf("difficulty must follow perspective: away=%d home=%d", away.FixtureDifficulty, home.FixtureDifficulty)
	}
	if away.TeamName != "Chelsea" || away.OpponentTeamName != "Arsenal" {
		t.Fatalf("unexpected away names: %q vs %q", away.TeamName, away.OpponentTeamName)
	}

	if away.TeamHScore == nil || home.TeamHScore == nil || *away.TeamHScore != *home.TeamHScore {
		t.Fatalf("team_h_score must be identical across the pair")
	}
	if away.TeamAScore == nil || home.TeamAScore == nil || *away.TeamAScore != *home.TeamAScore {
		t.Fatalf("team_a_score must be identical across the pair")
	}
}

func TestPerspectiveRows_UnknownTeamLeavesNameUnset(t *testing.T) {
	t.Parallel()

	raw := fplapi.Fixture{ID: 100, Event: 1, TeamH: 1, TeamA: 42}
	away, home := perspectiveRows(raw, testBootstrap().TeamByID(), "2025-2026")

	if away.TeamName != "" {
		t.Fatalf("expected empty name for unknown team, got=%q", away.TeamName)
	}
	if home.OpponentTeamName != "" {
		t.Fatalf("expected empty opponent name for unknown team, got=%q", home.OpponentTeamName)
	}
}

func TestBuildFixtureTable_DaysRest(t *testing.T) {
	t.Parallel()

	fixtures := []fplapi.Fixture{
		{ID: 100, Event: 1, TeamH: 1, TeamA: 2, KickoffTime: "2025-08-16T14:00:00Z"},
		{ID: 101, Event: 2, TeamH: 1, TeamA: 3, KickoffTime: "2025-08-23T14:00:00Z"},
	}

	rows := BuildFixtureTable(fixtures, testBootstrap(), "2025-2026")

	var team1 []float64
	for _, row := range rows {
		if row.TeamID == 1 {
			team1 = append(team1, row.DaysRest)
		}
	}
	if len(team1) != 2 {
		t.Fatalf("expected two rows for team 1, got=%d", len(team1))
	}
	if team1[0] != 0 {
		t.Fatalf("first fixture days_rest: got=%v want=0", team1[0])
	}
	if team1[1] != 7 {
		t.Fatalf("second fixture days_rest: got=%v want=7", team1[1])
	}
}

func TestBuildFixtureTable_UnparseableKickoff(t *testing.T) {
	t.Parallel()

	fixtures := []fplapi.Fixture{
		{ID: 100, Event: 1, TeamH: 1, TeamA: 2, KickoffTime: "not-a-timestamp"},
		{ID: 101, Event: 2, TeamH: 1, TeamA: 3, KickoffTime: "2025-08-23T14:00:00Z"},
	}

	rows := BuildFixtureTable(fixtures, testBootstrap(), "2025-2026")
	for _, row := range rows {
		if row.MatchID == 100 && row.KickoffTime != nil {
			t.Fatalf("unparseable kickoff must become nil")
		}
		if row.DaysRest != 0 {
			t.Fatalf("days_rest must be 0 around unknown kickoffs, got=%v for match=%d team=%d",
				row.DaysRest, row.MatchID, row.TeamID)
		}
	}
}

func TestBuildFixtureTable_DoubleGameweekFlag(t *testing.T) {
	t.Parallel()

	fixtures := []fplapi.Fixture{
		// Team 1 plays twice in gameweek 1, once in gameweek 2.
		{ID: 100, Event: 1, TeamH: 1, TeamA: 2, KickoffTime: "2025-08-16T14:00:00Z"},
		{ID: 101, Event: 1, TeamH: 3, TeamA: 1, KickoffTime: "2025-08-18T18:00:00Z"},
		{ID: 102, Event: 2, TeamH: 1, TeamA: 3, KickoffTime: "2025-08-23T14:00:00Z"},
	}

	rows := BuildFixtureTable(fixtures, testBootstrap(), "2025-2026")
	for _, row := range rows {
		isTeam1DoubleGW := row.TeamID == 1 && row.Gameweek == 1
		if row.IsDoubleGW != isTeam1DoubleGW {
			t.Fatalf("is_double_gw mismatch for team=%d gameweek=%d: got=%v want=%v",
				row.TeamID, row.Gameweek, row.IsDoubleGW, isTeam1DoubleGW)
		}
	}
}

func TestBuildFixtureTable_OrderedByTeamGameweekKickoff(t *testing.T) {
	t.Parallel()

	fixtures := []fplapi.Fixture{
		{ID: 102, Event: 2, TeamH: 2, TeamA: 1, KickoffTime: "2025-08-23T14:00:00Z"},
		{ID: 100, Event: 1, TeamH: 1, TeamA: 2, KickoffTime: "2025-08-16T14:00:00Z"},
	}

	rows := BuildFixtureTable(fixtures, testBootstrap(), "2025-2026")
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.TeamID > cur.TeamID {
			t.Fatalf("rows not ordered by team_id at index %d", i)
		}
		if prev.TeamID == cur.TeamID && prev.Gameweek > cur.Gameweek {
			t.Fatalf("rows not ordered by gameweek at index %d", i)
		}
	}
	if rows[0].TeamID != 1 || rows[0].Gameweek != 1 {
		t.Fatalf("expected team 1 gameweek 1 first, got team=%d gameweek=%d", rows[0].TeamID, rows[0].Gameweek)
	}
}

func TestParseKickoff(t *testing.T) {
	t.Parallel()

	if got := parseKickoff(""); got != nil {
		t.Fatalf("empty kickoff: got=%v want=nil", got)
	}
	if got := parseKickoff("garbage"); got != nil {
		t.Fatalf("garbage kickoff: got=%v want=nil", got)
	}
	got := parseKickoff("2025-08-16T14:00:00Z")
	if got == nil || !got.Equal(time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected kickoff: got=%v", got)
	}
}
