// Package filestore persists derived tables and raw JSON payloads to the
// local filesystem. Tables go out as parquet, csv or json records depending
// on the configured format; parent directories are created on demand.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/parquet-go/parquet-go"

	"github.com/fpl-analytics/fpl-pipeline/internal/domain/fixture"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/playerstats"
	"github.com/fpl-analytics/fpl-pipeline/internal/domain/teamstats"
)

type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
)

// ErrUnsupportedFormat marks a configuration error; callers treat it as
// fatal rather than recoverable.
var ErrUnsupportedFormat = errors.New("unsupported table format")

func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "parquet":
		return FormatParquet, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, v)
	}
}

func (f Format) Ext() string {
	return string(f)
}

// Store writes tables in one fixed format chosen at construction.
type Store struct {
	format Format
}

func New(format Format) (*Store, error) {
	parsed, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	return &Store{format: parsed}, nil
}

func (s *Store) Format() Format {
	return s.format
}

func (s *Store) SaveFixtureRows(ctx context.Context, dir, name string, rows []fixture.Row) (string, error) {
	return writeTable(ctx, s.format, dir, name, rows)
}

func (s *Store) SavePlayerStatRows(ctx context.Context, dir, name string, rows []playerstats.Row) (string, error) {
	return writeTable(ctx, s.format, dir, name, rows)
}

func (s *Store) SaveTeamStatRows(ctx context.Context, dir, name string, rows []teamstats.Row) (string, error) {
	return writeTable(ctx, s.format, dir, name, rows)
}

// SaveJSON writes v as indented JSON, creating parent directories.
func (s *Store) SaveJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeTable[T any](ctx context.Context, format Format, dir, name string, rows []T) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name+"."+format.Ext())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create dir for %s: %w", path, err)
	}

	switch format {
	case FormatParquet:
		if err := parquet.WriteFile(path, rows); err != nil {
			return "", fmt.Errorf("write parquet %s: %w", path, err)
		}
	case FormatCSV:
		if err := writeCSVFile(path, rows); err != nil {
			return "", err
		}
	case FormatJSON:
		data, err := sonic.MarshalIndent(rows, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return path, nil
}
