package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return &Store{DB: db}, mock
}

func TestCreateSubmissionReturnsID(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("INSERT INTO submissions").
		WithArgs("Ada", "ada@example.com", "", "Subject", "Body", "10.0.0.1", SubmissionStatusNew).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sub-9"))

	id, err := s.CreateSubmission(context.Background(), Submission{
		Name: "Ada", Email: "ada@example.com", Subject: "Subject", Message: "Body", SourceIP: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	if id != "sub-9" {
		t.Fatalf("id: %q", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListSubmissionsWithoutStatusFilter(t *testing.T) {
	s, mock := newMockStore(t)
	rows := sqlmock.NewRows([]string{"id", "name", "email", "company", "subject", "message", "source_ip", "status", "created_at"}).
		AddRow("s1", "A", "a@example.com", "", "x", "y", "", "read", time.Now())
	mock.ExpectQuery("SELECT id, name, email, company, subject, message, source_ip, status, created_at").
		WillReturnRows(rows)

	subs, err := s.ListSubmissions(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if len(subs) != 1 || subs[0].Status != "read" {
		t.Fatalf("unexpected result: %+v", subs)
	}
}

func TestMarkSubmissionReadReportsMissingRow(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("UPDATE submissions SET status").
		WithArgs(SubmissionStatusRead, "nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.MarkSubmissionRead(context.Background(), "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestCreateAndFetchUser(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("admin@thetrustgroup.com", "hash").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT id, password_hash FROM users").
		WithArgs("admin@thetrustgroup.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow("u1", "hash"))

	if err := s.CreateUser(context.Background(), "admin@thetrustgroup.com", "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	id, hash, err := s.GetUserByEmail(context.Background(), "admin@thetrustgroup.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if id != "u1" || hash != "hash" {
		t.Fatalf("got %q %q", id, hash)
	}
}
