package store

import (
	"context"

	"errors"

	"github.com/opencouncil/deskd/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. It exposes sub-repositories to keep
// concerns tidy and testable.
type Store interface {
	Users() Users
	Complaints() Complaints

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Prefer this
	// over Tx for multi-step operations that must be atomic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and duplicate-email checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate email maps to ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ListUsersByRole returns users holding the given role, newest first.
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

type Complaints interface {
	// CreateComplaint inserts a new complaint (id is ULID).
	CreateComplaint(ctx context.Context, c domain.Complaint) error

	// GetComplaintByID returns a complaint by id.
	GetComplaintByID(ctx context.Context, id string) (domain.Complaint, error)

	// ListComplaints returns every complaint, newest first.
	ListComplaints(ctx context.Context) ([]domain.Complaint, error)

	// ListComplaintsByUser returns complaints filed by a user, newest first.
	ListComplaintsByUser(ctx context.Context, userID string) ([]domain.Complaint, error)

	// ListComplaintsByStaff returns complaints assigned to a staff member,
	// newest first.
	ListComplaintsByStaff(ctx context.Context, staffID string) ([]domain.Complaint, error)

	// ListUnassignedComplaints returns complaints with no staff member,
	// newest first.
	ListUnassignedComplaints(ctx context.Context) ([]domain.Complaint, error)

	// UpdateComplaintStatus sets the status (and optional resolution notes)
	// and bumps updated_at.
	UpdateComplaintStatus(ctx context.Context, id string, status domain.Status, notes *string) error

	// AssignComplaint sets the staff member, moves the complaint to
	// "assigned" and bumps updated_at.
	AssignComplaint(ctx context.Context, id, staffID string) error

	// CountByStatus returns the statistics overview.
	CountByStatus(ctx context.Context) (domain.StatusCounts, error)

	// CountByCategory returns per-category complaint counts.
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
}
