/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address behind a proxy
  3. Logger:     logrus request logging (middleware.go)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for the dashboard

ROUTE GROUPS:
  /api/calendar/*    Date engine
  /api/payroll/*     GOSI payroll
  /api/eos/*         End-of-service award
  /api/workhours/*   Shift end time
  /api/holidays/*    Company holiday calendar
  /api/health        Liveness + store ping

SECURITY NOTE:
  No authentication middleware. The calculators hold no personal data; the
  holiday and weekend settings are the only writes.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
}

// pinger is implemented by stores backed by a database connection.
type pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Calendar routes
		r.Route("/calendar", func(r chi.Router) {
			r.Post("/diff", h.DateDiff)
			r.Post("/working-days", h.WorkingDays)
			r.Post("/add-working-days", h.AddWorkingDays)
			r.Get("/month", h.Month)
			r.Get("/weekend", h.GetWeekend)
			r.Put("/weekend", h.PutWeekend)
			r.Get("/workbook", h.Workbook)
		})

		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/", h.Payroll)
			r.Get("/profiles", h.ListProfiles)
			r.Post("/payslip", h.Payslip)
		})

		// End-of-service routes
		r.Route("/eos", func(r chi.Router) {
			r.Post("/", h.EOS)
			r.Post("/statement", h.EOSStatement)
		})

		// Work-hours routes
		r.Route("/workhours", func(r chi.Router) {
			r.Post("/end-time", h.ShiftEndTime)
			r.Get("/now", h.Now)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Post("/defaults", h.AddDefaultHolidays)
			r.Delete("/{id}", h.DeleteHoliday)
		})
	})

	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		log.WithFields(log.Fields{"method": method, "path": route}).Debug("registered path")
		return nil
	})

	return r
}

// Health reports liveness and, when the store supports it, database reachability.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.Store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			log.WithContext(r.Context()).WithError(err).Warn("store ping failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
