package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/pgtuner/workload-advisor/pkg/models"
)

//go:embed migrations/*.sql
var postgresFS embed.FS

// PostgresStore implements Store interface using PostgreSQL
type PostgresStore struct {
	db  *sql.DB
	dsn string
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{
		db:  db,
		dsn: dsn,
	}

	// Run migrations
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs database migrations
func (s *PostgresStore) migrate() error {
	schema, err := postgresFS.ReadFile("migrations/001_postgres_schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// SaveAnalysis saves one analysis run.
func (s *PostgresStore) SaveAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	recommendations, err := json.Marshal(rec.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}

	query := `
		INSERT INTO analyses (
			id, mode, report_path, timeline_path, timeline_points,
			duration_seconds, total_transactions, tps,
			avg_latency_ms, p50_latency_ms, p95_latency_ms, p99_latency_ms,
			errors, recommendations, summary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = s.db.ExecContext(ctx, query,
		rec.ID, rec.Mode, rec.ReportPath, rec.TimelinePath, rec.TimelinePoints,
		rec.Metrics.DurationSeconds, rec.Metrics.TotalTransactions, rec.Metrics.TPS,
		rec.Metrics.AvgLatencyMs, rec.Metrics.P50LatencyMs,
		rec.Metrics.P95LatencyMs, rec.Metrics.P99LatencyMs,
		rec.Metrics.Errors, recommendations, rec.Summary, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// GetAnalysis retrieves one stored analysis by ID.
func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	query := `
		SELECT id, mode, report_path, timeline_path, timeline_points,
		       duration_seconds, total_transactions, tps,
		       avg_latency_ms, p50_latency_ms, p95_latency_ms, p99_latency_ms,
		       errors, recommendations, summary, created_at
		FROM analyses
		WHERE id = $1
	`

	rec, err := scanAnalysis(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return rec, nil
}

// ListAnalyses returns the most recent analyses, newest first. An empty
// mode matches every mode.
func (s *PostgresStore) ListAnalyses(ctx context.Context, mode string, limit int) ([]*models.AnalysisRecord, error) {
	query := `
		SELECT id, mode, report_path, timeline_path, timeline_points,
		       duration_seconds, total_transactions, tps,
		       avg_latency_ms, p50_latency_ms, p95_latency_ms, p99_latency_ms,
		       errors, recommendations, summary, created_at
		FROM analyses
		WHERE ($1 = '' OR mode = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []*models.AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	var recommendations []byte

	err := row.Scan(
		&rec.ID, &rec.Mode, &rec.ReportPath, &rec.TimelinePath, &rec.TimelinePoints,
		&rec.Metrics.DurationSeconds, &rec.Metrics.TotalTransactions, &rec.Metrics.TPS,
		&rec.Metrics.AvgLatencyMs, &rec.Metrics.P50LatencyMs,
		&rec.Metrics.P95LatencyMs, &rec.Metrics.P99LatencyMs,
		&rec.Metrics.Errors, &recommendations, &rec.Summary, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Metrics.Mode = rec.Mode

	if err := json.Unmarshal(recommendations, &rec.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	return &rec, nil
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
