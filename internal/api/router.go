package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avenk/careerpath-be/internal/api/handlers"
	"github.com/avenk/careerpath-be/internal/auth"
	"github.com/avenk/careerpath-be/internal/realtime"
	"github.com/avenk/careerpath-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.Manager,
	hub *realtime.Hub,
	userService services.UserServiceProvider,
	assessmentService services.AssessmentServiceProvider,
	formService services.FormServiceProvider,
	reportService services.ReportServiceProvider,
	eventService services.EventServiceProvider,
	allowedOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the SPA frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
	formHandler := handlers.NewFormHandler(formService)
	reportHandler := handlers.NewReportHandler(reportService)
	eventHandler := handlers.NewEventHandler(eventService)
	realtimeHandler := handlers.NewRealtimeHandler(hub, tokens)

	requireAuth := tokens.Middleware()

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Websocket endpoint authenticates via query parameter.
		r.Get("/ws", realtimeHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/signin", authHandler.SignIn)
			r.Post("/signout", authHandler.SignOut)
		})

		r.Route("/survey", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/questions", assessmentHandler.Questions)
			r.Post("/submit", assessmentHandler.Submit)
		})

		r.With(requireAuth).Get("/assessment/results", assessmentHandler.Results)

		r.Route("/assessments", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", assessmentHandler.List)
			r.Post("/", assessmentHandler.Create)
			r.Put("/{id}", assessmentHandler.Update)
		})

		r.With(requireAuth).Post("/roadmap/generate", assessmentHandler.Roadmap)

		r.Route("/forms", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/education", formHandler.SubmitEducation)
			r.Get("/education", formHandler.GetEducation)
			r.Post("/job-application", formHandler.SubmitJobApplication)
			r.Get("/job-application", formHandler.GetJobApplication)
		})

		r.Route("/pdf", func(r chi.Router) {
			r.With(requireAuth).Post("/generate", reportHandler.Generate)
			// Public share-link lookup: possession of the identifier is the
			// only credential.
			r.Get("/{uniqueId}", reportHandler.GetByUniqueID)
		})

		r.With(requireAuth).Get("/admin/pdf-reports", reportHandler.List)
		r.With(requireAuth).Get("/events", eventHandler.GetRecent)
	})

	return r
}
