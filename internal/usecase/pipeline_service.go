package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fpl-analytics/fpl-pipeline/external/fplapi"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/fixture"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/playerstats"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/teamstats"
	"github.com/fpl-analytics/fpl-pipeline/internal/platform/logging"
)

type pipelineClient interface {
	FetchBootstrap(ctx context.Context) (fplapi.Bootstrap, error)
	FetchFixtures(ctx context.Context, event int) ([]fplapi.Fixture, error)
	FetchAllPlayerDetails(ctx context.Context, maxPlayers int) ([]fplapi.PlayerHistory, error)
}

type tableStore interface {
	SaveJSON(ctx context.Context, path string, v any) error
	SaveFixtureRows(ctx context.Context, dir, name string, rows []fixture.Row) (string, error)
	SavePlayerStatRows(ctx context.Context, dir, name string, rows []playerstats.Row) (string, error)
	SaveTeamStatRows(ctx context.Context, dir, name string, rows []teamstats.Row) (string, error)
}

// PipelineService drives one ingestion run: fetch raw payloads, build the
// three derived tables, persist everything non-empty.
type PipelineService struct {
	client pipelineClient
	store  tableStore
	logger *logging.Logger
}

func NewPipelineService(client pipelineClient, store tableStore, logger *logging.Logger) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PipelineService{
		client: client,
		store:  store,
		logger: logger,
	}
}

// RunInput carries the per-run options of the pipeline.
type RunInput struct {
	Season  string
	DataDir string
	// Gameweek restricts the fixtures fetch; 0 fetches the whole season.
	Gameweek int
	// FetchAllPlayers enables the slow one-request-per-player history fetch.
	FetchAllPlayers bool
	// MaxPlayers caps the player fetch when > 0.
	MaxPlayers int
}

// Run executes the pipeline. Player-dependent stages are skipped with a
// warning when player data was not fetched; any other failure aborts.
func (s *PipelineService) Run(ctx context.Context, in RunInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run")
	defer span.End()

	season := strings.TrimSpace(in.Season)
	if season == "" {
		return fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	rawDir := filepath.Join(in.DataDir, "raw")

	s.logger.InfoContext(ctx, "starting data ingestion pipeline", "season", season, "data_dir", in.DataDir)

	s.logger.InfoContext(ctx, "[1/4] fetching bootstrap-static data")
	bootstrap, err := s.client.FetchBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("fetch bootstrap-static: %w", err)
	}
	bootstrapPath := filepath.Join(rawDir, fmt.Sprintf("bootstrap-static_%s.json", season))
	if err := s.store.SaveJSON(ctx, bootstrapPath, bootstrap); err != nil {
		return fmt.Errorf("save bootstrap-static: %w", err)
	}
	s.logger.InfoContext(ctx, "saved bootstrap-static data",
		"path", bootstrapPath,
		"players", len(bootstrap.Elements),
		"teams", len(bootstrap.Teams),
		"gameweeks", len(bootstrap.Events),
	)

	s.logger.InfoContext(ctx, "[2/4] fetching fixtures data", "gameweek", in.Gameweek)
	fixtures, err := s.client.FetchFixtures(ctx, in.Gameweek)
	if err != nil {
		return fmt.Errorf("fetch fixtures: %w", err)
	}
	fixturesPath := filepath.Join(rawDir, fmt.Sprintf("fixtures_%s.json", season))
	if err := s.store.SaveJSON(ctx, fixturesPath, fixtures); err != nil {
		return fmt.Errorf("save fixtures: %w", err)
	}
	s.logger.InfoContext(ctx, "saved fixtures data", "path", fixturesPath, "fixtures", len(fixtures))

	var playerData []fplapi.PlayerHistory
	if in.FetchAllPlayers {
		s.logger.InfoContext(ctx, "[3/4] fetching detailed data for all players, this may take a while", "max_players", in.MaxPlayers)
		playerData, err = s.client.FetchAllPlayerDetails(ctx, in.MaxPlayers)
		if err != nil {
			return fmt.Errorf("fetch all player details: %w", err)
		}
		playersPath := filepath.Join(rawDir, fmt.Sprintf("all_players_data_%s.json", season))
		payload := struct {
			Players []fplapi.PlayerHistory `json:"players"`
		}{Players: playerData}
		if err := s.store.SaveJSON(ctx, playersPath, payload); err != nil {
			return fmt.Errorf("save player data: %w", err)
		}
		s.logger.InfoContext(ctx, "saved player data", "path", playersPath, "players", len(playerData))
	} else {
		s.logger.InfoContext(ctx, "[3/4] skipping detailed player data fetch, enable with --fetch-all-players")
	}

	s.logger.InfoContext(ctx, "[4/4] transforming data into structured tables")

	var fixtureRows []fixture.Row
	if len(fixtures) > 0 {
		fixtureRows = BuildFixtureTable(fixtures, bootstrap, season)
		path, err := s.store.SaveFixtureRows(ctx, rawDir, "fixtures_"+season, fixtureRows)
		if err != nil {
			return fmt.Errorf("save fixtures table: %w", err)
		}
		s.logger.InfoContext(ctx, "created fixtures table", "rows", len(fixtureRows), "path", path)
	}

	if len(playerData) > 0 {
		playerRows := BuildPlayerMatchStats(bootstrap, playerData, season)
		if len(playerRows) > 0 {
			path, err := s.store.SavePlayerStatRows(ctx, rawDir, "player_match_stats_raw_"+season, playerRows)
			if err != nil {
				return fmt.Errorf("save player match stats table: %w", err)
			}
			s.logger.InfoContext(ctx, "created player_match_stats_raw table", "rows", len(playerRows), "path", path)
		}

		if len(playerRows) > 0 && len(fixtureRows) > 0 {
			teamRows := BuildTeamMatchStats(playerRows, fixtureRows, bootstrap)
			if len(teamRows) > 0 {
				path, err := s.store.SaveTeamStatRows(ctx, rawDir, "team_match_stats_"+season, teamRows)
				if err != nil {
					return fmt.Errorf("save team match stats table: %w", err)
				}
				s.logger.InfoContext(ctx, "created team_match_stats table", "rows", len(teamRows), "path", path)
			}
		}
	} else {
		s.logger.WarnContext(ctx, "skipping player_match_stats_raw, no player data fetched")
		s.logger.WarnContext(ctx, "skipping team_match_stats, requires player data")
	}

	s.logger.InfoContext(ctx, "data ingestion pipeline completed", "season", season)
	return nil
}
