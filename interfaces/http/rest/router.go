package rest

import (
	"net/http"
	"time"

	"github.com/Kian-Chen/DSADesign/application/services"
	"github.com/Kian-Chen/DSADesign/interfaces/http/rest/handlers"
	"github.com/Kian-Chen/DSADesign/interfaces/http/rest/middleware"
	"github.com/Kian-Chen/DSADesign/pkg/common"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options toggles the optional parts of the router
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	// Metrics is nil when metrics are disabled
	Metrics        middleware.HTTPRecorder
	MetricsHandler http.Handler
	// RateLimiter is nil when mutations are not limited
	RateLimiter middleware.Limiter
	RetryAfter  time.Duration
	Debug       bool
}

// Router creates and configures the HTTP router
type Router struct {
	lists   *services.ListService
	social  *services.SocialService
	options Options
	logger  *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	lists *services.ListService,
	social *services.SocialService,
	options Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		lists:   lists,
		social:  social,
		options: options,
		logger:  logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.options.Debug)
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	if rt.options.Metrics != nil {
		router.Use(middleware.Metrics(rt.options.Metrics))
	}
	router.Use(errorHandler.Middleware)

	if rt.options.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.options.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.options.MetricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", rt.options.MetricsHandler)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(requestIDHeader)
		if rt.options.RateLimiter != nil {
			r.Use(middleware.RateLimit(rt.options.RateLimiter, rt.options.RetryAfter, func(w http.ResponseWriter, r *http.Request) {
				errorHandler.Handle(w, r, pkgerrors.NewRateLimitedError("rate limit exceeded"))
			}))
		}

		r.Route("/lists", func(r chi.Router) {
			listHandler := handlers.NewListHandler(rt.lists, errorHandler, rt.logger)
			r.Post("/", listHandler.CreateList)
			r.Get("/", listHandler.ListLists)
			r.Get("/{listID}", listHandler.GetList)
			r.Delete("/{listID}", listHandler.DeleteList)
			r.Post("/{listID}/insert", listHandler.Insert)
			r.Get("/{listID}/find", listHandler.Find)
			r.Post("/{listID}/remove", listHandler.Remove)
			r.Get("/{listID}/diagram", listHandler.Diagram)
		})

		socialHandler := handlers.NewSocialHandler(rt.social, errorHandler, rt.logger)
		r.Route("/users", func(r chi.Router) {
			r.Get("/", socialHandler.ListUsers)
			r.Get("/{userID}", socialHandler.GetUser)
			r.Get("/{userID}/friends", socialHandler.GetFriends)
			r.Post("/{userID}/friends", socialHandler.AddFriend)
			r.Delete("/{userID}/friends/{friendID}", socialHandler.RemoveFriend)
			r.Get("/{userID}/recommendations", socialHandler.Recommendations)
			r.Get("/{userID}/graph", socialHandler.EgoGraph)
		})
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", socialHandler.ListGroups)
			r.Get("/{groupID}/members", socialHandler.GroupMembers)
		})
		r.Get("/graph", socialHandler.FullGraph)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready once the social graph has users to serve
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	users := len(rt.social.Users(req.Context()))
	status := http.StatusOK
	state := "ready"
	if users == 0 {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	common.RespondJSON(w, status, map[string]interface{}{
		"status": state,
		"users":  users,
		"lists":  len(rt.lists.IDs(req.Context())),
	})
}

// requestIDHeader exposes the chi request id to clients and to the error
// handler, which reads it from the request header
func requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimiddleware.GetReqID(r.Context()); id != "" {
			w.Header().Set("X-Request-ID", id)
			if r.Header.Get("X-Request-ID") == "" {
				r.Header.Set("X-Request-ID", id)
			}
		}
		next.ServeHTTP(w, r)
	})
}
