package teamstats

// GroupKey identifies one team's side of one match. Player rows roll up
// into team rows under this key.
type GroupKey struct {
	TeamID         int
	Season         string
	Gameweek       int
	MatchID        int
	OpponentTeamID int
	WasHome        bool
}

// Row is one (team, match) entry in the team match stats table. TeamGoals
// and TeamGoalsConceded carry fixture-authoritative scores where available,
// otherwise the aggregate of the player rows.
type Row struct {
	TeamID            int    `json:"team_id" parquet:"team_id"`
	Season            string `json:"season" parquet:"season"`
	Gameweek          int    `json:"gameweek" parquet:"gameweek"`
	MatchID           int    `json:"match_id" parquet:"match_id"`
	OpponentTeamID    int    `json:"opponent_team_id" parquet:"opponent_team_id"`
	WasHome           bool   `json:"was_home" parquet:"was_home"`
	TeamGoals         int    `json:"team_goals" parquet:"team_goals"`
	Assists           int    `json:"assists" parquet:"assists"`
	TeamCleanSheet    int    `json:"team_clean_sheet" parquet:"team_clean_sheet"`
	TeamGoalsConceded int    `json:"team_goals_conceded" parquet:"team_goals_conceded"`
	YellowCards       int    `json:"yellow_cards" parquet:"yellow_cards"`
	RedCards          int    `json:"red_cards" parquet:"red_cards"`
	TotalPoints       int    `json:"total_points" parquet:"total_points"`
	BPS               int    `json:"bps" parquet:"bps"`
	TeamName          string `json:"team_name" parquet:"team_name"`
	OpponentTeamName  string `json:"opponent_team_name" parquet:"opponent_team_name"`
}

// Key returns the group key of an already-built row.
func (r Row) Key() GroupKey {
	return GroupKey{
		TeamID:         r.TeamID,
		Season:         r.Season,
		Gameweek:       r.Gameweek,
		MatchID:        r.MatchID,
		OpponentTeamID: r.OpponentTeamID,
		WasHome:        r.WasHome,
	}
}
