package usecase

import (
	"sort"
	"time"

	"github.com/fpl-analytics/fpl-pipeline/external/fplapi"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/fixture"
)

// BuildFixtureTable converts raw fixtures into the doubled fixture table:
// one row per team perspective, annotated with rest days and double
// gameweek flags. An empty fixture list yields an empty table.
func BuildFixtureTable(fixtures []fplapi.Fixture, bootstrap fplapi.Bootstrap, season string) []fixture.Row {
	if len(fixtures) == 0 {
		return nil
	}

	teams := bootstrap.TeamByID()
	rows := make([]fixture.Row, 0, len(fixtures)*2)
	for _, raw := range fixtures {
		away, home := perspectiveRows(raw, teams, season)
		rows = append(rows, away, home)
	}

	sort.SliceStable(rows, func(i, j int) bool { return fixture.Less(rows[i], rows[j]) })
	applyDaysRest(rows)
	applyDoubleGameweeks(rows)

	return rows
}

// perspectiveRows splits one raw fixture into its away-team and home-team
// rows. The away row comes first and reads team_id=team_a; downstream joins
// depend on exactly this pairing.
func perspectiveRows(raw fplapi.Fixture, teams map[int]fplapi.Team, season string) (away, home fixture.Row) {
	kickoff := parseKickoff(raw.KickoffTime)

	away = fixture.Row{
		MatchID:           raw.ID,
		Season:            season,
		Gameweek:          raw.Event,
		TeamID:            raw.TeamA,
		OpponentTeamID:    raw.TeamH,
		WasHome:           false,
		FixtureDifficulty: raw.TeamADifficulty,
		KickoffTime:       kickoff,
		Finished:          raw.Finished,
		TeamAScore:        copyInt(raw.TeamAScore),
		TeamHScore:        copyInt(raw.TeamHScore),
	}
	if t, ok := teams[raw.TeamA]; ok {
		away.TeamName = t.Name
	}
	if t, ok := teams[raw.TeamH]; ok {
		away.OpponentTeamName = t.Name
	}

	home = fixture.Row{
		MatchID:           raw.ID,
		Season:            season,
		Gameweek:          raw.Event,
		TeamID:            raw.TeamH,
		OpponentTeamID:    raw.TeamA,
		WasHome:           true,
		FixtureDifficulty: raw.TeamHDifficulty,
		KickoffTime:       kickoff,
		Finished:          raw.Finished,
		TeamAScore:        copyInt(raw.TeamAScore),
		TeamHScore:        copyInt(raw.TeamHScore),
	}
	if t, ok := teams[raw.TeamH]; ok {
		home.TeamName = t.Name
	}
	if t, ok := teams[raw.TeamA]; ok {
		home.OpponentTeamName = t.Name
	}

	return away, home
}

// applyDaysRest sets each row's gap in days since that team's previous row.
// Rows must already be ordered by (team_id, gameweek, kickoff_time). A
// team's first row, and any row where either kickoff is unknown, gets 0.
func applyDaysRest(rows []fixture.Row) {
	var prevTeam int
	var prevKickoff *time.Time
	for i := range rows {
		row := &rows[i]
		switch {
		case i == 0 || row.TeamID != prevTeam:
			row.DaysRest = 0
		case row.KickoffTime == nil || prevKickoff == nil:
			row.DaysRest = 0
		default:
			row.DaysRest = row.KickoffTime.Sub(*prevKickoff).Hours() / 24
		}
		prevTeam = row.TeamID
		prevKickoff = row.KickoffTime
	}
}

func applyDoubleGameweeks(rows []fixture.Row) {
	type teamGameweek struct {
		teamID   int
		gameweek int
	}
	counts := make(map[teamGameweek]int, len(rows))
	for _, row := range rows {
		counts[teamGameweek{row.TeamID, row.Gameweek}]++
	}
	for i := range rows {
		rows[i].IsDoubleGW = counts[teamGameweek{rows[i].TeamID, rows[i].Gameweek}] > 1
	}
}

// parseKickoff parses an RFC3339 kickoff timestamp. Unparseable or empty
// values become nil rather than an error.
func parseKickoff(value string) *time.Time {
	if value == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	ts = ts.UTC()
	return &ts
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
