package kv

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupPostgresMock(t *testing.T) (*Postgres, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	store := NewPostgres(db)
	cleanup := func() { db.Close() }
	return store, mock, cleanup
}

func TestPostgres_Get(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM namespaces WHERE name = $1`)).
		WithArgs("customer-storage").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`{"customers":[]}`)))

	got, err := store.Get(context.Background(), "customer-storage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"customers":[]}` {
		t.Errorf("unexpected payload: %s", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgres_GetAbsent(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM namespaces WHERE name = $1`)).
		WithArgs("message-storage").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "message-storage")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgres_Set(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO namespaces (name, payload) VALUES ($1, $2)`)).
		WithArgs("task-storage", []byte(`{"tasks":[]}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Set(context.Background(), "task-storage", []byte(`{"tasks":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgres_SetError(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO namespaces (name, payload) VALUES ($1, $2)`)).
		WithArgs("task-storage", []byte("x")).
		WillReturnError(errors.New("connection lost"))

	if err := store.Set(context.Background(), "task-storage", []byte("x")); err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgres_Remove(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM namespaces WHERE name = $1`)).
		WithArgs("auth-storage").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Remove(context.Background(), "auth-storage"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
