// Package store keeps analysis results in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spigell/resume-analyzer/internal/analyzer"
)

const memoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	email              TEXT NOT NULL DEFAULT '',
	phone              TEXT NOT NULL DEFAULT '',
	score              INTEGER NOT NULL DEFAULT 0,
	created_at         TEXT NOT NULL,
	page_count         INTEGER NOT NULL DEFAULT 0,
	domain             TEXT NOT NULL DEFAULT '',
	tier               TEXT NOT NULL DEFAULT '',
	skills             TEXT NOT NULL DEFAULT '[]',
	recommended_skills TEXT NOT NULL DEFAULT '[]',
	source_file        TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS analyses_created_at ON analyses (created_at);
`

// Record is one stored analysis.
type Record struct {
	ID                uuid.UUID `json:"id" yaml:"id"`
	Name              string    `json:"name" yaml:"name"`
	Email             string    `json:"email" yaml:"email"`
	Phone             string    `json:"phone" yaml:"phone"`
	Score             int       `json:"score" yaml:"score"`
	CreatedAt         time.Time `json:"created_at" yaml:"created_at"`
	PageCount         int       `json:"page_count" yaml:"page_count"`
	Domain            string    `json:"domain" yaml:"domain"`
	Tier              string    `json:"tier" yaml:"tier"`
	Skills            []string  `json:"skills" yaml:"skills"`
	RecommendedSkills []string  `json:"recommended_skills" yaml:"recommended_skills"`
	SourceFile        string    `json:"source_file" yaml:"source_file"`
}

// RecordFromResult flattens a pipeline result into a Record without an ID.
func RecordFromResult(result *analyzer.Result) Record {
	return Record{
		Name:              result.Profile.Name,
		Email:             result.Profile.Email,
		Phone:             result.Profile.Phone,
		Score:             result.Score.Total,
		PageCount:         result.Profile.PageCount,
		Domain:            string(result.Prediction.Domain),
		Tier:              string(result.Prediction.ExperienceTier),
		Skills:            result.Profile.Skills,
		RecommendedSkills: result.Prediction.RecommendedSkills,
		SourceFile:        result.Source,
	}
}

// Store is a handle on the analyses database. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens or creates the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	if path == memoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	logger.Debug("store opened", zap.String("path", path))

	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts rec, assigning an ID and a creation time when missing, and
// returns the stored record.
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	skills, err := encodeList(rec.Skills)
	if err != nil {
		return Record{}, err
	}
	recommended, err := encodeList(rec.RecommendedSkills)
	if err != nil {
		return Record{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses
			(id, name, email, phone, score, created_at, page_count, domain, tier, skills, recommended_skills, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID.String(), rec.Name, rec.Email, rec.Phone, rec.Score, rec.CreatedAt.Format(time.RFC3339Nano),
		rec.PageCount, rec.Domain, rec.Tier, skills, recommended, rec.SourceFile)
	if err != nil {
		return Record{}, fmt.Errorf("store: insert analysis: %w", err)
	}

	s.logger.Debug("analysis saved", zap.String("id", rec.ID.String()), zap.String("source_file", rec.SourceFile))

	return rec, nil
}

// List returns every stored analysis, oldest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone, score, created_at, page_count, domain, tier, skills, recommended_skills, source_file
		FROM analyses
		ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("store: list analyses: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			rec                 Record
			id, created         string
			skills, recommended string
		)
		if err := rows.Scan(&id, &rec.Name, &rec.Email, &rec.Phone, &rec.Score, &created, &rec.PageCount,
			&rec.Domain, &rec.Tier, &skills, &recommended, &rec.SourceFile); err != nil {
			return nil, fmt.Errorf("store: scan analysis: %w", err)
		}

		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("store: analysis id %q: %w", id, err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("store: analysis %s created_at: %w", id, err)
		}
		if rec.Skills, err = decodeList(skills); err != nil {
			return nil, fmt.Errorf("store: analysis %s skills: %w", id, err)
		}
		if rec.RecommendedSkills, err = decodeList(recommended); err != nil {
			return nil, fmt.Errorf("store: analysis %s recommended skills: %w", id, err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list analyses: %w", err)
	}

	return records, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("store: encode list: %w", err)
	}
	return string(raw), nil
}

func decodeList(raw string) ([]string, error) {
	items := []string{}
	if raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}
