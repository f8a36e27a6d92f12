package fixture

import "time"

// Row is one team-perspective view of a scheduled match. Every raw fixture
// from the upstream API produces exactly two rows, one per side.
type Row struct {
	MatchID           int        `json:"match_id" parquet:"match_id"`
	Season            string     `json:"season" parquet:"season"`
	Gameweek          int        `json:"gameweek" parquet:"gameweek"`
	TeamID            int        `json:"team_id" parquet:"team_id"`
	OpponentTeamID    int        `json:"opponent_team_id" parquet:"opponent_team_id"`
	WasHome           bool       `json:"was_home" parquet:"was_home"`
	FixtureDifficulty int        `json:"fixture_difficulty" parquet:"fixture_difficulty"`
	KickoffTime       *time.Time `json:"kickoff_time" parquet:"kickoff_time,optional"`
	Finished          bool       `json:"finished" parquet:"finished"`
	TeamAScore        *int       `json:"team_a_score" parquet:"team_a_score,optional"`
	TeamHScore        *int       `json:"team_h_score" parquet:"team_h_score,optional"`
	TeamName          string     `json:"team_name" parquet:"team_name"`
	OpponentTeamName  string     `json:"opponent_team_name" parquet:"opponent_team_name"`
	DaysRest          float64    `json:"days_rest" parquet:"days_rest"`
	IsDoubleGW        bool       `json:"is_double_gw" parquet:"is_double_gw"`
}

// Less orders rows by (team_id, gameweek, kickoff_time), the order the
// rest-day computation walks. Nil kickoffs sort after timestamped rows
// within a gameweek.
func Less(a, b Row) bool {
	if a.TeamID != b.TeamID {
		return a.TeamID < b.TeamID
	}
	if a.Gameweek != b.Gameweek {
		return a.Gameweek < b.Gameweek
	}
	switch {
	case a.KickoffTime == nil:
		return false
	case b.KickoffTime == nil:
		return true
	default:
		return a.KickoffTime.Before(*b.KickoffTime)
	}
}
