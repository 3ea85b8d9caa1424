package sqlite

import (
	"context"
	"database/sql"

	"github.com/opencouncil/deskd/internal/domain"
	"github.com/opencouncil/deskd/internal/store"
)

type complaintsRepo struct {
	q queryer
}

const complaintColumns = `id, user_id, staff_id, title, description, category, status, resolution_notes, created_at, updated_at`

func (r *complaintsRepo) CreateComplaint(ctx context.Context, c domain.Complaint) error {
	now := nowUTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO complaints (id, user_id, staff_id, title, description, category, status, resolution_notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, mapOptionalString(c.StaffID), c.Title, c.Description,
		c.Category, c.Status.String(), mapOptionalString(c.ResolutionNotes), now, now,
	)
	return mapConstraint(err)
}

func (r *complaintsRepo) GetComplaintByID(ctx context.Context, id string) (domain.Complaint, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE id = ?`, id)

	c, err := scanComplaint(row)
	if err != nil {
		return domain.Complaint{}, mapNotFound(err)
	}
	return c, nil
}

func (r *complaintsRepo) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	return r.list(ctx,
		`SELECT `+complaintColumns+` FROM complaints ORDER BY created_at DESC, id DESC`)
}

func (r *complaintsRepo) ListComplaintsByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	return r.list(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
}

func (r *complaintsRepo) ListComplaintsByStaff(ctx context.Context, staffID string) ([]domain.Complaint, error) {
	return r.list(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE staff_id = ? ORDER BY created_at DESC, id DESC`,
		staffID)
}

func (r *complaintsRepo) ListUnassignedComplaints(ctx context.Context) ([]domain.Complaint, error) {
	return r.list(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE staff_id IS NULL ORDER BY created_at DESC, id DESC`)
}

func (r *complaintsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Complaint, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []domain.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (r *complaintsRepo) UpdateComplaintStatus(ctx context.Context, id string, status domain.Status, notes *string) error {
	var (
		res sql.Result
		err error
	)
	if notes != nil {
		res, err = r.q.ExecContext(ctx,
			`UPDATE complaints SET status = ?, resolution_notes = ?, updated_at = ? WHERE id = ?`,
			status.String(), *notes, nowUTC(), id)
	} else {
		res, err = r.q.ExecContext(ctx,
			`UPDATE complaints SET status = ?, updated_at = ? WHERE id = ?`,
			status.String(), nowUTC(), id)
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *complaintsRepo) AssignComplaint(ctx context.Context, id, staffID string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE complaints SET staff_id = ?, status = ?, updated_at = ? WHERE id = ?`,
		staffID, domain.StatusAssigned.String(), nowUTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *complaintsRepo) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'open' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'assigned' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'in-progress' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'resolved' THEN 1 ELSE 0 END), 0)
		FROM complaints`)

	var counts domain.StatusCounts
	err := row.Scan(&counts.Total, &counts.Open, &counts.Assigned, &counts.InProgress, &counts.Resolved)
	if err != nil {
		return domain.StatusCounts{}, err
	}
	return counts, nil
}

func (r *complaintsRepo) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM complaints GROUP BY category ORDER BY COUNT(*) DESC, category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.CategoryCount
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// requireRow maps a zero-row UPDATE onto ErrNotFound so callers don't need
// to pre-fetch just to distinguish "missing" from "updated".
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
