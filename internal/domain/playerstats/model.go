package playerstats

// Row is one (player, historical match) entry in the long-format player
// match stats table. Counting fields default to zero when the upstream
// history entry omits them. ElementType and TeamID stay nil when the player
// is missing from the bootstrap element lookup.
type Row struct {
	PlayerID         int     `json:"player_id" parquet:"player_id"`
	Season           string  `json:"season" parquet:"season"`
	Gameweek         int     `json:"gameweek" parquet:"gameweek"`
	MatchID          int     `json:"match_id" parquet:"match_id"`
	OpponentTeamID   int     `json:"opponent_team_id" parquet:"opponent_team_id"`
	WasHome          bool    `json:"was_home" parquet:"was_home"`
	Minutes          int     `json:"minutes" parquet:"minutes"`
	TotalPoints      int     `json:"total_points" parquet:"total_points"`
	GoalsScored      int     `json:"goals_scored" parquet:"goals_scored"`
	Assists          int     `json:"assists" parquet:"assists"`
	CleanSheets      int     `json:"clean_sheets" parquet:"clean_sheets"`
	GoalsConceded    int     `json:"goals_conceded" parquet:"goals_conceded"`
	OwnGoals         int     `json:"own_goals" parquet:"own_goals"`
	PenaltiesSaved   int     `json:"penalties_saved" parquet:"penalties_saved"`
	PenaltiesMissed  int     `json:"penalties_missed" parquet:"penalties_missed"`
	YellowCards      int     `json:"yellow_cards" parquet:"yellow_cards"`
	RedCards         int     `json:"red_cards" parquet:"red_cards"`
	Saves            int     `json:"saves" parquet:"saves"`
	Bonus            int     `json:"bonus" parquet:"bonus"`
	BPS              int     `json:"bps" parquet:"bps"`
	Influence        float64 `json:"influence" parquet:"influence"`
	Creativity       float64 `json:"creativity" parquet:"creativity"`
	Threat           float64 `json:"threat" parquet:"threat"`
	ICTIndex         float64 `json:"ict_index" parquet:"ict_index"`
	Value            int     `json:"value" parquet:"value"`
	TransfersBalance int     `json:"transfers_balance" parquet:"transfers_balance"`
	Selected         int     `json:"selected" parquet:"selected"`
	TransfersIn      int     `json:"transfers_in" parquet:"transfers_in"`
	TransfersOut     int     `json:"transfers_out" parquet:"transfers_out"`
	ElementType      *int    `json:"element_type" parquet:"element_type,optional"`
	TeamID           *int    `json:"team_id" parquet:"team_id,optional"`
}
