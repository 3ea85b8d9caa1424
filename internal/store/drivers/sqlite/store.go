package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/opencouncil/deskd/internal/domain"
	"github.com/opencouncil/deskd/internal/store"

	_ "modernc.org/sqlite"
)

// queryer is the common subset of *sql.DB and *sql.Tx the repos need, so the
// same repo code serves both transactional and plain access.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// An in-memory database exists per connection, so the pool must stay at
	// one or each connection sees a different empty database.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling
// commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Rollback is a no-op after a successful commit.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users           { return &usersRepo{q: s.db} }
func (s *Store) Complaints() store.Complaints { return &complaintsRepo{q: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint translates a sqlite UNIQUE violation into the store sentinel.
// modernc.org/sqlite surfaces constraint failures as plain errors, so string
// matching is the only portable hook.
func mapConstraint(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u       domain.User
		role    string
		contact sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role,
		&contact, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.ContactInfo = mapNullStringPtr(contact)
	return u, nil
}

func scanComplaint(row interface{ Scan(...any) error }) (domain.Complaint, error) {
	var (
		c      domain.Complaint
		staff  sql.NullString
		status string
		notes  sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.UserID, &staff, &c.Title, &c.Description, &c.Category,
		&status, &notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Complaint{}, err
	}
	c.StaffID = mapNullStringPtr(staff)
	c.Status = domain.Status(status)
	c.ResolutionNotes = mapNullStringPtr(notes)
	return c, nil
}

func nowUTC() time.Time { return time.Now().UTC() }
