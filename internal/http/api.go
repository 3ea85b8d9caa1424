package http

import (
	"time"

	"github.com/opencouncil/deskd/internal/domain"
)

// Request/response bodies for the REST surface. Tokens are opaque to
// clients; everything else is plain JSON.

type registerRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role,omitempty"`
	ContactInfo *string `json:"contact_info,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	ContactInfo *string    `json:"contact_info,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type statusUpdateRequest struct {
	Status          string  `json:"status"`
	ResolutionNotes *string `json:"resolution_notes,omitempty"`
}

type assignRequest struct {
	StaffID string `json:"staff_id"`
}

type complaintResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	StaffID         *string   `json:"staff_id,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	ResolutionNotes *string   `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type statisticsResponse struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	Assigned   int64 `json:"assigned"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}

type categoryCountResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// toUserSummary renders the short form used by register/login responses.
func toUserSummary(u domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role.String(),
	}
}

// toUserProfile renders the full form used by profile and admin listings.
func toUserProfile(u domain.User) userResponse {
	created := u.CreatedAt
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role.String(),
		ContactInfo: u.ContactInfo,
		CreatedAt:   &created,
	}
}

func toComplaintResponse(c domain.Complaint) complaintResponse {
	return complaintResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		StaffID:         c.StaffID,
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		Status:          c.Status.String(),
		ResolutionNotes: c.ResolutionNotes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toComplaintList(complaints []domain.Complaint) []complaintResponse {
	out := make([]complaintResponse, 0, len(complaints))
	for _, c := range complaints {
		out = append(out, toComplaintResponse(c))
	}
	return out
}
