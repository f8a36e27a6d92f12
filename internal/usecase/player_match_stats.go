package usecase

import (
	"sort"

	"github.com/fpl-analytics/fpl-pipeline/external/fplapi"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/playerstats"
)

// BuildPlayerMatchStats flattens per-player match histories into the
// long-format player stats table, one row per (player, past match).
// Numeric fields the upstream payload omits decode to zero; element_type
// and team_id attach only when the player exists in the bootstrap roster.
func BuildPlayerMatchStats(bootstrap fplapi.Bootstrap, players []fplapi.PlayerHistory, season string) []playerstats.Row {
	if len(players) == 0 {
		return nil
	}

	elements := bootstrap.ElementByID()
	rows := make([]playerstats.Row, 0, len(players)*32)
	for _, entry := range players {
		for _, match := range entry.Data.History {
			row := playerstats.Row{
				PlayerID:         entry.PlayerID,
				Season:           season,
				Gameweek:         match.Round,
				MatchID:          match.Fixture,
				OpponentTeamID:   match.OpponentTeam,
				WasHome:          match.WasHome,
				Minutes:          match.Minutes,
				TotalPoints:      match.TotalPoints,
				GoalsScored:      match.GoalsScored,
				Assists:          match.Assists,
				CleanSheets:      match.CleanSheets,
				GoalsConceded:    match.GoalsConceded,
				OwnGoals:         match.OwnGoals,
				PenaltiesSaved:   match.PenaltiesSaved,
				PenaltiesMissed:  match.PenaltiesMissed,
				YellowCards:      match.YellowCards,
				RedCards:         match.RedCards,
				Saves:            match.Saves,
				Bonus:            match.Bonus,
				BPS:              match.BPS,
				Influence:        match.Influence.Float64(),
				Creativity:       match.Creativity.Float64(),
				Threat:           match.Threat.Float64(),
				ICTIndex:         match.ICTIndex.Float64(),
				Value:            match.Value,
				TransfersBalance: match.TransfersBalance,
				Selected:         match.Selected,
				TransfersIn:      match.TransfersIn,
				TransfersOut:     match.TransfersOut,
			}
			if info, ok := elements[entry.PlayerID]; ok {
				elementType := info.ElementType
				teamID := info.Team
				row.ElementType = &elementType
				row.TeamID = &teamID
			}
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PlayerID != rows[j].PlayerID {
			return rows[i].PlayerID < rows[j].PlayerID
		}
		if rows[i].Season != rows[j].Season {
			return rows[i].Season < rows[j].Season
		}
		return rows[i].Gameweek < rows[j].Gameweek
	})

	return rows
}
