package usecase

import (
	"sort"

	"github.com/fpl-analytics/fpl-pipeline/external/fplapi"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/fixture"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/playerstats"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/teamstats"
)

// fixtureJoinKey matches a team row to its perspective row in the fixture
// table.
type fixtureJoinKey struct {
	MatchID        int
	TeamID         int
	OpponentTeamID int
	WasHome        bool
}

// BuildTeamMatchStats aggregates player rows to team level per match and
// reconciles goals against authoritative fixture scores: where the fixture
// carries a score for the row's perspective, it wins over the aggregate.
// Player rows with no team attribution (player missing from bootstrap) are
// excluded from grouping. An empty player table yields an empty output.
func BuildTeamMatchStats(playerRows []playerstats.Row, fixtureRows []fixture.Row, bootstrap fplapi.Bootstrap) []teamstats.Row {
	if len(playerRows) == 0 {
		return nil
	}

	groups := make(map[teamstats.GroupKey]*teamstats.Row, len(playerRows)/8+1)
	for _, p := range playerRows {
		if p.TeamID == nil {
			continue
		}
		key := teamstats.GroupKey{
			TeamID:         *p.TeamID,
			Season:         p.Season,
			Gameweek:       p.Gameweek,
			MatchID:        p.MatchID,
			OpponentTeamID: p.OpponentTeamID,
			WasHome:        p.WasHome,
		}
		agg, ok := groups[key]
		if !ok {
			agg = &teamstats.Row{
				TeamID:         key.TeamID,
				Season:         key.Season,
				Gameweek:       key.Gameweek,
				MatchID:        key.MatchID,
				OpponentTeamID: key.OpponentTeamID,
				WasHome:        key.WasHome,
			}
			groups[key] = agg
		}

		agg.TeamGoals += p.GoalsScored
		agg.Assists += p.Assists
		agg.YellowCards += p.YellowCards
		agg.RedCards += p.RedCards
		agg.TotalPoints += p.TotalPoints
		agg.BPS += p.BPS
		// Clean sheets and goals conceded are team-wide facts duplicated on
		// every player row, so max is the idempotent reduction.
		if p.CleanSheets > agg.TeamCleanSheet {
			agg.TeamCleanSheet = p.CleanSheets
		}
		if p.GoalsConceded > agg.TeamGoalsConceded {
			agg.TeamGoalsConceded = p.GoalsConceded
		}
	}

	scores := make(map[fixtureJoinKey]fixture.Row, len(fixtureRows))
	for _, f := range fixtureRows {
		scores[fixtureJoinKey{f.MatchID, f.TeamID, f.OpponentTeamID, f.WasHome}] = f
	}
	teams := bootstrap.TeamByID()

	out := make([]teamstats.Row, 0, len(groups))
	for key, agg := range groups {
		if f, ok := scores[fixtureJoinKey{key.MatchID, key.TeamID, key.OpponentTeamID, key.WasHome}]; ok {
			reconcileScores(agg, f)
		}
		if t, ok := teams[agg.TeamID]; ok {
			agg.TeamName = t.Name
		}
		if t, ok := teams[agg.OpponentTeamID]; ok {
			agg.OpponentTeamName = t.Name
		}
		out = append(out, *agg)
	}

	sort.SliceStable(out, func(i, j int) bool { return lessGroupKey(out[i].Key(), out[j].Key()) })

	return out
}

// reconcileScores applies the precedence rule: a present fixture score for
// the row's perspective overwrites the aggregate, an absent one leaves it.
func reconcileScores(agg *teamstats.Row, f fixture.Row) {
	scored, conceded := f.TeamAScore, f.TeamHScore
	if agg.WasHome {
		scored, conceded = f.TeamHScore, f.TeamAScore
	}
	if scored != nil {
		agg.TeamGoals = *scored
	}
	if conceded != nil {
		agg.TeamGoalsConceded = *conceded
	}
}

func lessGroupKey(a, b teamstats.GroupKey) bool {
	if a.TeamID != b.TeamID {
		return a.TeamID < b.TeamID
	}
	if a.Season != b.Season {
		return a.Season < b.Season
	}
	if a.Gameweek != b.Gameweek {
		return a.Gameweek < b.Gameweek
	}
	if a.MatchID != b.MatchID {
		return a.MatchID < b.MatchID
	}
	if a.OpponentTeamID != b.OpponentTeamID {
		return a.OpponentTeamID < b.OpponentTeamID
	}
	return !a.WasHome && b.WasHome
}
