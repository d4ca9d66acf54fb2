package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/thetrustgroup/trustsite/internal/store"
)

func TestContactSubmitStoresSanitizedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO submissions").
		WithArgs("Ada Lovelace", "ada@example.com", "Analytical Engines Ltd", "Replatform brief", "We need help.", sqlmock.AnyArg(), store.SubmissionStatusNew).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sub-1"))

	h := &ContactHandler{Store: &store.Store{DB: db}}
	rec, err := postJSON(t, "/api/contact", `{
		"name": "<b>Ada Lovelace</b>",
		"email": "ada@example.com",
		"company": "Analytical Engines Ltd",
		"subject": "Replatform brief",
		"message": "We need help."
	}`, h.submit)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body.String())
	}
	var res IDResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.ID != "sub-1" {
		t.Fatalf("id: %q", res.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestContactRejectsInvalidEmail(t *testing.T) {
	h := &ContactHandler{}
	_, err := postJSON(t, "/api/contact", `{"name":"A","email":"not-an-email","message":"hi"}`, h.submit)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestContactRejectsMissingMessage(t *testing.T) {
	h := &ContactHandler{}
	_, err := postJSON(t, "/api/contact", `{"name":"A","email":"a@example.com","message":"<p></p>"}`, h.submit)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for markup-only message, got %v", err)
	}
}

func TestContactRateLimited(t *testing.T) {
	h := &ContactHandler{Limiter: &fakeLimiter{allow: false}}
	_, err := postJSON(t, "/api/contact", `{"name":"A","email":"a@example.com","message":"hi"}`, h.submit)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}
