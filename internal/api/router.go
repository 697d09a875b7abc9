package api

import (
	"net/http"
	"time"

	"inventario/internal/api/handler"
	apimiddleware "inventario/internal/api/middleware"
	"inventario/internal/app/service"
	"inventario/internal/common/security"
	"inventario/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/redis/go-redis/v9"
)

func NewRouter(
	cfg *config.Config,
	tokens *security.TokenIssuer,
	rdb *redis.Client,
	authService *service.AuthService,
	recordService *service.RecordService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Only the allow-listed frontend origins get past here.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(apiRouter chi.Router) {
		authHandler := handler.NewAuthHandler(authService)

		// Auth routes (public, rate limited)
		apiRouter.Group(func(publicAuth chi.Router) {
			if rdb != nil {
				publicAuth.Use(apimiddleware.RateLimit(rdb, cfg.AuthRateLimit))
			}
			authHandler.RegisterPublicRoutes(publicAuth)
		})

		// Everything else sits behind the token gate.
		apiRouter.Group(func(protected chi.Router) {
			protected.Use(jwtauth.Verifier(tokens.JWTAuth())) // Verifies token, puts claims in context
			protected.Use(apimiddleware.Authenticator)

			authHandler.RegisterProtectedRoutes(protected)

			recordHandler := handler.NewRecordHandler(recordService, cfg.MaxUploadBytes)
			protected.Route("/records", recordHandler.RegisterRoutes)
		})
	})

	return r
}
