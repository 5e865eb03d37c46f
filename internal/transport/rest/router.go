package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"coursecraft/internal/service"
	"coursecraft/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	ProjectService  *service.ProjectService
	ArtifactService *service.ArtifactService
	LinkService     *service.LinkService
	ExchangeService *service.ExchangeService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	projectHandler := handler.NewProjectHandler(c.ProjectService)
	artifactHandler := handler.NewArtifactHandler(c.ArtifactService)
	linkHandler := handler.NewLinkHandler(c.LinkService)
	exchangeHandler := handler.NewExchangeHandler(c.ExchangeService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Projects
	v1.HandleFunc("/projects", projectHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/projects", projectHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}", projectHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}", projectHandler.Update).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}", projectHandler.Delete).Methods("DELETE", "OPTIONS")

	// Artifacts
	v1.HandleFunc("/projects/{projectId}/artifacts", artifactHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}/artifacts", artifactHandler.Save).Methods("POST", "OPTIONS")
	v1.HandleFunc("/artifacts/{artifactId}", artifactHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/artifacts/{artifactId}", artifactHandler.Delete).Methods("DELETE", "OPTIONS")

	// Links
	v1.HandleFunc("/projects/{projectId}/links", linkHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}/links", linkHandler.Save).Methods("POST", "OPTIONS")
	v1.HandleFunc("/links/{linkId}", linkHandler.Delete).Methods("DELETE", "OPTIONS")

	// CSV exchange with the external authoring tool
	v1.HandleFunc("/projects/{projectId}/questions/import", exchangeHandler.Import).Methods("POST", "OPTIONS")
	v1.HandleFunc("/projects/{projectId}/questions/export", exchangeHandler.Export).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, X-Author"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
