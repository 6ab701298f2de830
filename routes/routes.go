package routes

import (
	"encoding/json"
	"net/http"

	"gcghub/handlers"
	"gcghub/middlewares"
)

// Handlers groups every request handler the router wires up.
type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Year       *handlers.YearHandler
	Aspect     *handlers.AspectHandler
	Checklist  *handlers.ChecklistHandler
	OrgUnit    *handlers.OrgUnitHandler
	Assignment *handlers.AssignmentHandler
	File       *handlers.FileHandler
}

// Setup builds the full route table. Every /api route except login and the
// password helpers runs behind the JWT middleware; mutating routes on shared
// reference data additionally require the ADMIN role.
func Setup(h Handlers, jwtSecret string, users middlewares.UserLoader, corsOrigin string) http.Handler {
	mux := http.NewServeMux()

	jwt := middlewares.JWTMiddleware(jwtSecret, users)
	protected := func(fn http.HandlerFunc) http.Handler {
		return jwt(fn)
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return jwt(middlewares.AdminMiddleware(fn))
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"name":    "GCG Hub API",
			"version": "1.0.0",
		})
	})

	// Auth
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/validate-password", h.Auth.ValidatePassword)
	mux.HandleFunc("GET /api/auth/generate-password", h.Auth.GeneratePassword)
	mux.Handle("POST /api/auth/register", admin(h.Auth.Register))
	mux.Handle("GET /api/auth/me", protected(h.Auth.Me))
	mux.Handle("POST /api/auth/change-password", protected(h.Auth.ChangePassword))

	// Users
	mux.Handle("GET /api/users", admin(h.User.List))
	mux.Handle("GET /api/users/profile/me", protected(h.User.Profile))
	mux.Handle("PUT /api/users/profile/me", protected(h.User.UpdateProfile))
	mux.Handle("GET /api/users/{id}", protected(h.User.GetByID))
	mux.Handle("PUT /api/users/{id}", protected(h.User.Update))
	mux.Handle("DELETE /api/users/{id}", admin(h.User.Delete))

	// Book years
	mux.Handle("GET /api/years", protected(h.Year.List))
	mux.Handle("GET /api/years/{year}", protected(h.Year.GetByYear))
	mux.Handle("GET /api/years/{year}/stats", protected(h.Year.Stats))
	mux.Handle("POST /api/years", admin(h.Year.Create))
	mux.Handle("PUT /api/years/{year}", admin(h.Year.Update))
	mux.Handle("DELETE /api/years/{year}", admin(h.Year.Delete))

	// Aspects
	mux.Handle("GET /api/aspects", protected(h.Aspect.List))
	mux.Handle("GET /api/aspects/{id}", protected(h.Aspect.GetByID))
	mux.Handle("GET /api/aspects/{id}/checklist", protected(h.Aspect.Checklist))
	mux.Handle("POST /api/aspects", admin(h.Aspect.Create))
	mux.Handle("PUT /api/aspects/{id}", admin(h.Aspect.Update))
	mux.Handle("DELETE /api/aspects/{id}", admin(h.Aspect.Delete))

	// Checklist items
	mux.Handle("GET /api/checklist", protected(h.Checklist.List))
	mux.Handle("GET /api/checklist/{id}", protected(h.Checklist.GetByID))
	mux.Handle("GET /api/checklist/{id}/status", protected(h.Checklist.Status))
	mux.Handle("POST /api/checklist", admin(h.Checklist.Create))
	mux.Handle("PUT /api/checklist/{id}", admin(h.Checklist.Update))
	mux.Handle("DELETE /api/checklist/{id}", admin(h.Checklist.Delete))

	// Organizational units
	mux.Handle("GET /api/units", protected(h.OrgUnit.List))
	mux.Handle("GET /api/units/stats", protected(h.OrgUnit.Stats))
	mux.Handle("GET /api/units/{id}", protected(h.OrgUnit.GetByID))
	mux.Handle("GET /api/units/{id}/assignments", protected(h.OrgUnit.Assignments))
	mux.Handle("POST /api/units", admin(h.OrgUnit.Create))
	mux.Handle("PUT /api/units/{id}", admin(h.OrgUnit.Update))
	mux.Handle("DELETE /api/units/{id}", admin(h.OrgUnit.Delete))

	// Assignments
	mux.Handle("GET /api/assignments", protected(h.Assignment.List))
	mux.Handle("GET /api/assignments/stats", protected(h.Assignment.Stats))
	mux.Handle("GET /api/assignments/{id}", protected(h.Assignment.GetByID))
	mux.Handle("POST /api/assignments", admin(h.Assignment.Create))
	mux.Handle("PUT /api/assignments/{id}", admin(h.Assignment.Update))
	mux.Handle("PATCH /api/assignments/{id}/status", protected(h.Assignment.UpdateStatus))
	mux.Handle("DELETE /api/assignments/{id}", admin(h.Assignment.Delete))

	// Files
	mux.Handle("GET /api/files", protected(h.File.List))
	mux.Handle("GET /api/files/stats", protected(h.File.Stats))
	mux.Handle("GET /api/files/{id}", protected(h.File.GetByID))
	mux.Handle("GET /api/files/{id}/download", protected(h.File.Download))
	mux.Handle("POST /api/files", protected(h.File.Upload))
	mux.Handle("DELETE /api/files/{id}", protected(h.File.Delete))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Route not found"})
	})

	return middlewares.CORSMiddleware(corsOrigin)(mux)
}
