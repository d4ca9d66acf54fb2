package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Store wraps the Postgres connection used for users and form submissions.
// Content itself never touches the database; it lives in the in-memory
// catalog.
type Store struct {
	DB *sql.DB
}

// Submission statuses.
const (
	SubmissionStatusNew  = "new"
	SubmissionStatusRead = "read"
)

// Submission is a persisted contact/briefing form entry.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	SourceIP  string    `json:"source_ip,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// New constructs the Store from DATABASE_URL or POSTGRES_* env vars.
func New(ctx context.Context) (*Store, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := getenvDefault("POSTGRES_HOST", "localhost")
		port := getenvDefault("POSTGRES_PORT", "5432")
		user := os.Getenv("POSTGRES_USER")
		pass := os.Getenv("POSTGRES_PASSWORD")
		db := os.Getenv("POSTGRES_DB")
		ssl := getenvDefault("POSTGRES_SSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, ssl)
	}
	return NewWithDSN(ctx, dsn)
}

// NewWithDSN constructs the Store using an explicit Postgres DSN.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

// User operations
func (s *Store) CreateUser(ctx context.Context, email, hash string) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES ($1,$2)`, email, hash)
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (id string, hash string, err error) {
	err = s.DB.QueryRowContext(ctx, `SELECT id, password_hash FROM users WHERE email=$1`, email).Scan(&id, &hash)
	return
}

// Submission operations
func (s *Store) CreateSubmission(ctx context.Context, sub Submission) (string, error) {
	var id string
	err := s.DB.QueryRowContext(ctx, `
INSERT INTO submissions (name, email, company, subject, message, source_ip, status)
VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		sub.Name, sub.Email, sub.Company, sub.Subject, sub.Message, sub.SourceIP, SubmissionStatusNew).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}
	return id, nil
}

// ListSubmissions returns submissions newest-first. status filters when
// non-empty; limit <= 0 falls back to 100.
func (s *Store) ListSubmissions(ctx context.Context, status string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, name, email, company, subject, message, source_ip, status, created_at
FROM submissions`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Company, &sub.Subject, &sub.Message, &sub.SourceIP, &sub.Status, &sub.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// MarkSubmissionRead flips a submission to the read status.
func (s *Store) MarkSubmissionRead(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE submissions SET status=$1 WHERE id=$2`, SubmissionStatusRead, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
