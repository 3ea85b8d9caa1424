package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opencouncil/deskd/internal/domain"
	"github.com/opencouncil/deskd/internal/store"
	"github.com/opencouncil/deskd/pkg/idx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

// ErrNotStaff reports an assignment attempt to a user who holds neither the
// staff nor the admin role.
var ErrNotStaff = errors.New("assignee is not a staff member")

type ComplaintService struct {
	Store store.Store
}

// File creates a new complaint for the given citizen. New complaints always
// start open and unassigned.
func (s *ComplaintService) File(
	ctx context.Context,
	userID, title, description, category string,
) (domain.Complaint, error) {
	log := slogx.FromContext(ctx)

	complaint := domain.Complaint{
		ID:          idx.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		Status:      domain.StatusOpen,
	}

	if err := s.Store.Complaints().CreateComplaint(ctx, complaint); err != nil {
		return domain.Complaint{}, fmt.Errorf("create complaint: %w", err)
	}

	created, err := s.Store.Complaints().GetComplaintByID(ctx, complaint.ID)
	if err != nil {
		return domain.Complaint{}, fmt.Errorf("reload created complaint: %w", err)
	}

	log.Info("complaint filed",
		slog.String("complaint_id", created.ID),
		slog.String("category", created.Category),
	)
	return created, nil
}

// Get returns a complaint by id.
func (s *ComplaintService) Get(ctx context.Context, id string) (domain.Complaint, error) {
	return s.Store.Complaints().GetComplaintByID(ctx, id)
}

// ListAll returns every complaint, newest first. Admin surface.
func (s *ComplaintService) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return s.Store.Complaints().ListComplaints(ctx)
}

// ListMine returns complaints filed by the given user.
func (s *ComplaintService) ListMine(ctx context.Context, userID string) ([]domain.Complaint, error) {
	return s.Store.Complaints().ListComplaintsByUser(ctx, userID)
}

// ListAssigned returns complaints assigned to the given staff member.
func (s *ComplaintService) ListAssigned(ctx context.Context, staffID string) ([]domain.Complaint, error) {
	return s.Store.Complaints().ListComplaintsByStaff(ctx, staffID)
}

// ListUnassigned returns complaints no staff member has picked up yet.
func (s *ComplaintService) ListUnassigned(ctx context.Context) ([]domain.Complaint, error) {
	return s.Store.Complaints().ListUnassignedComplaints(ctx)
}

// UpdateStatus moves a complaint to a new lifecycle status, optionally
// recording resolution notes.
func (s *ComplaintService) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.Status,
	notes *string,
) (domain.Complaint, error) {
	log := slogx.FromContext(ctx)

	if err := s.Store.Complaints().UpdateComplaintStatus(ctx, id, status, notes); err != nil {
		return domain.Complaint{}, err
	}

	updated, err := s.Store.Complaints().GetComplaintByID(ctx, id)
	if err != nil {
		return domain.Complaint{}, fmt.Errorf("reload complaint: %w", err)
	}

	log.Info("complaint status updated",
		slog.String("complaint_id", id),
		slog.String("status", status.String()),
	)
	return updated, nil
}

// Assign hands a complaint to a staff member (or an admin taking it
// themselves) and moves it to "assigned". The assignee check and the update
// run in one transaction so a concurrent role change can't slip an
// unqualified assignee through.
func (s *ComplaintService) Assign(ctx context.Context, id, staffID string) (domain.Complaint, error) {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		assignee, err := tx.Users().GetUserByID(ctx, staffID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotStaff
			}
			return fmt.Errorf("lookup assignee: %w", err)
		}
		if assignee.Role != domain.RoleStaff && assignee.Role != domain.RoleAdmin {
			return ErrNotStaff
		}

		return tx.Complaints().AssignComplaint(ctx, id, staffID)
	})
	if err != nil {
		return domain.Complaint{}, err
	}

	assigned, err := s.Store.Complaints().GetComplaintByID(ctx, id)
	if err != nil {
		return domain.Complaint{}, fmt.Errorf("reload complaint: %w", err)
	}

	log.Info("complaint assigned",
		slog.String("complaint_id", id),
		slog.String("staff_id", staffID),
	)
	return assigned, nil
}

// Statistics returns the per-status overview.
func (s *ComplaintService) Statistics(ctx context.Context) (domain.StatusCounts, error) {
	return s.Store.Complaints().CountByStatus(ctx)
}

// CategoryStatistics returns per-category complaint counts.
func (s *ComplaintService) CategoryStatistics(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.Store.Complaints().CountByCategory(ctx)
}
