package fplapi

import (
	"bytes"
	"strconv"

	sonic "github.com/bytedance/sonic"
)

// Bootstrap is the bootstrap-static payload: the season snapshot of events,
// teams, players and position types.
type Bootstrap struct {
	Events       []Event       `json:"events"`
	Teams        []Team        `json:"teams"`
	Elements     []Element     `json:"elements"`
	ElementTypes []ElementType `json:"element_types"`
	TotalPlayers int           `json:"total_players"`
}

// TeamByID builds an id keyed team lookup.
func (b Bootstrap) TeamByID() map[int]Team {
	out := make(map[int]Team, len(b.Teams))
	for _, t := range b.Teams {
		out[t.ID] = t
	}
	return out
}

// ElementByID builds an id keyed player lookup.
func (b Bootstrap) ElementByID() map[int]Element {
	out := make(map[int]Element, len(b.Elements))
	for _, e := range b.Elements {
		out[e.ID] = e
	}
	return out
}

type Event struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DeadlineTime string `json:"deadline_time"`
	Finished     bool   `json:"finished"`
	IsCurrent    bool   `json:"is_current"`
}

type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type Element struct {
	ID          int    `json:"id"`
	WebName     string `json:"web_name"`
	ElementType int    `json:"element_type"`
	Team        int    `json:"team"`
	NowCost     int    `json:"now_cost"`
}

type ElementType struct {
	ID                int    `json:"id"`
	SingularNameShort string `json:"singular_name_short"`
}

// Fixture is one raw scheduled match. Score fields stay nil until the match
// finishes; Event decodes to zero when the fixture has no gameweek yet.
type Fixture struct {
	ID              int    `json:"id"`
	Event           int    `json:"event"`
	TeamH           int    `json:"team_h"`
	TeamA           int    `json:"team_a"`
	TeamHDifficulty int    `json:"team_h_difficulty"`
	TeamADifficulty int    `json:"team_a_difficulty"`
	KickoffTime     string `json:"kickoff_time"`
	Finished        bool   `json:"finished"`
	TeamHScore      *int   `json:"team_h_score"`
	TeamAScore      *int   `json:"team_a_score"`
}

// ElementSummary is the element-summary payload for one player.
type ElementSummary struct {
	History     []HistoryEntry `json:"history"`
	HistoryPast []PastSeason   `json:"history_past"`
}

// HistoryEntry is one past match of one player. The upstream API omits
// fields freely; zero values are the documented defaults.
type HistoryEntry struct {
	Element          int     `json:"element"`
	Fixture          int     `json:"fixture"`
	Round            int     `json:"round"`
	OpponentTeam     int     `json:"opponent_team"`
	WasHome          bool    `json:"was_home"`
	Minutes          int     `json:"minutes"`
	TotalPoints      int     `json:"total_points"`
	GoalsScored      int     `json:"goals_scored"`
	Assists          int     `json:"assists"`
	CleanSheets      int     `json:"clean_sheets"`
	GoalsConceded    int     `json:"goals_conceded"`
	OwnGoals         int     `json:"own_goals"`
	PenaltiesSaved   int     `json:"penalties_saved"`
	PenaltiesMissed  int     `json:"penalties_missed"`
	YellowCards      int     `json:"yellow_cards"`
	RedCards         int     `json:"red_cards"`
	Saves            int     `json:"saves"`
	Bonus            int     `json:"bonus"`
	BPS              int     `json:"bps"`
	Influence        Decimal `json:"influence"`
	Creativity       Decimal `json:"creativity"`
	Threat           Decimal `json:"threat"`
	ICTIndex         Decimal `json:"ict_index"`
	Value            int     `json:"value"`
	TransfersBalance int     `json:"transfers_balance"`
	Selected         int     `json:"selected"`
	TransfersIn      int     `json:"transfers_in"`
	TransfersOut     int     `json:"transfers_out"`
}

type PastSeason struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Minutes     int    `json:"minutes"`
}

// PlayerHistory pairs a player id with its fetched element-summary payload.
type PlayerHistory struct {
	PlayerID int            `json:"player_id"`
	Data     ElementSummary `json:"data"`
}

// EventLive is the live points payload for one gameweek.
type EventLive struct {
	Elements []LiveElement `json:"elements"`
}

type LiveElement struct {
	ID    int       `json:"id"`
	Stats LiveStats `json:"stats"`
}

type LiveStats struct {
	Minutes     int `json:"minutes"`
	TotalPoints int `json:"total_points"`
	Bonus       int `json:"bonus"`
	BPS         int `json:"bps"`
}

// Decimal tolerates the API's habit of sending numeric ratings as strings
// ("12.4"). Bare numbers decode too; null, empty and garbage collapse to 0.
type Decimal float64

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			*d = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*d = 0
			return nil
		}
		*d = Decimal(v)
		return nil
	}
	var v float64
	if err := sonic.Unmarshal(data, &v); err != nil {
		*d = 0
		return nil
	}
	*d = Decimal(v)
	return nil
}

func (d Decimal) Float64() float64 { return float64(d) }
