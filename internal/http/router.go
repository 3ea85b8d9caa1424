package http

import (
	"net/http"
	"time"

	"github.com/opencouncil/deskd/internal/service"
	"github.com/opencouncil/deskd/internal/store"
	"github.com/opencouncil/deskd/pkg/httpx"
	"github.com/opencouncil/deskd/pkg/jwtx"
)

// Router wires the HTTP surface: public auth endpoints, authenticated
// complaint and profile routes, admin-only management routes, and the
// health probes.
type Router struct {
	Store    store.Store
	Verifier jwtx.Verifier

	AuthService      *service.AuthService
	UserService      *service.UserService
	ComplaintService *service.ComplaintService

	StartTime time.Time
	Version   string
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	register := &RegisterHandler{AuthService: rt.AuthService}
	login := &LoginHandler{AuthService: rt.AuthService}
	profile := &ProfileHandler{AuthService: rt.AuthService}
	complaints := &ComplaintsHandler{ComplaintService: rt.ComplaintService}
	users := &UsersHandler{UserService: rt.UserService}
	stats := &StatisticsHandler{ComplaintService: rt.ComplaintService}

	authn := httpx.AuthnMiddleware(rt.Verifier)
	staffOnly := httpx.RequireAnyRole("staff", "admin")
	adminOnly := httpx.RequireAnyRole("admin")

	// Separate buckets so a burst of registrations cannot lock out logins.
	registerLimit := httpx.RateLimitByIP(httpx.StrictLimit)
	loginLimit := httpx.RateLimitByIP(httpx.StrictLimit)
	lenientUser := httpx.RateLimitByUser(httpx.LenientLimit)

	authed := func(h http.Handler, mws ...httpx.Middleware) http.Handler {
		chain := append([]httpx.Middleware{authn, lenientUser}, mws...)
		return httpx.Chain(h, chain...)
	}

	// Public.
	mux.Handle("POST /register", httpx.Chain(register, registerLimit))
	mux.Handle("POST /login", httpx.Chain(login, loginLimit))
	mux.HandleFunc("GET /livez", LivezHandler(rt.StartTime, rt.Version))
	mux.HandleFunc("GET /readyz", ReadyzHandler(rt.StartTime, rt.Version, rt.Store))

	// Any authenticated role.
	mux.Handle("GET /profile", authed(profile))
	mux.Handle("POST /complaints", authed(http.HandlerFunc(complaints.HandleCreate)))
	mux.Handle("GET /complaints/my-complaints", authed(http.HandlerFunc(complaints.HandleListMine)))
	mux.Handle("GET /complaints/staff-assigned", authed(http.HandlerFunc(complaints.HandleListAssigned)))
	mux.Handle("GET /complaints/unassigned/available", authed(http.HandlerFunc(complaints.HandleListUnassigned)))
	mux.Handle("GET /complaints/{id}", authed(http.HandlerFunc(complaints.HandleGet)))

	// Staff and admin.
	mux.Handle("PUT /complaints/{id}/status", authed(http.HandlerFunc(complaints.HandleUpdateStatus), staffOnly))

	// Admin.
	mux.Handle("GET /complaints", authed(http.HandlerFunc(complaints.HandleListAll), adminOnly))
	mux.Handle("GET /complaints/statistics/overview", authed(http.HandlerFunc(stats.HandleOverview), adminOnly))
	mux.Handle("GET /complaints/statistics/categories", authed(http.HandlerFunc(stats.HandleCategories), adminOnly))
	mux.Handle("PUT /complaints/{id}/assign", authed(http.HandlerFunc(complaints.HandleAssign), adminOnly))
	mux.Handle("GET /users", authed(http.HandlerFunc(users.HandleList), adminOnly))
	mux.Handle("GET /users/staff", authed(http.HandlerFunc(users.HandleListStaff), adminOnly))

	return mux
}
