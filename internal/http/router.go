// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, bearer authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/bookclubapp/go-bookclub-backend/internal/auth"
	"github.com/bookclubapp/go-bookclub-backend/internal/config"
	"github.com/bookclubapp/go-bookclub-backend/internal/http/handlers"
	"github.com/bookclubapp/go-bookclub-backend/internal/http/middleware"
	"github.com/bookclubapp/go-bookclub-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (keyed by client IP; it runs before the per-group auth
//     middleware, so the identity-based key never applies here)
//  8. CORS and Security headers
//
// Bearer authentication is applied per route group, not globally: person
// registration, login, and the public book/review reads stay open.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, tokens *auth.TokenService, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"Authorization",
		},
		// The people listing filters by exact email; never log the value.
		MaskQueryParams: []string{
			"email",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// Compress responses; list pages are repetitive JSON and shrink well.
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter. Installed globally, ahead of the
	// per-group auth middleware, so buckets are keyed by client IP.
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db/token service
	authSvc := &services.AuthService{DB: db, Tokens: tokens}
	peopleSvc := &services.PeopleService{DB: db, BcryptCost: cfg.BcryptCost}
	booksSvc := &services.BooksService{DB: db}
	tagsSvc := &services.TagsService{DB: db}
	clubsSvc := &services.ClubsService{DB: db}
	membersSvc := &services.MembersService{DB: db}
	historySvc := &services.HistoryService{DB: db}
	chatsSvc := &services.ChatsService{DB: db}
	msgSvc := &services.MessagesService{DB: db}
	reviewsSvc := &services.ReviewsService{DB: db}

	h := handlers.New(authSvc, peopleSvc, booksSvc, tagsSvc, clubsSvc,
		membersSvc, historySvc, chatsSvc, msgSvc, reviewsSvc)

	requireAuth := middleware.RequireAuth(tokens)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Auth
		api.POST("/auth/login", h.Login)

		// People: registration and the directory are open; per-person
		// reads and mutations need a token.
		api.POST("/people", h.CreatePerson)
		api.GET("/people", h.ListPeople)
		people := api.Group("/people", requireAuth)
		{
			people.GET("/:id", h.GetPerson)
			people.PATCH("/:id", h.UpdatePerson)
			people.DELETE("/:id", h.DeletePerson)
		}

		// Books: the catalog is readable without a session.
		api.GET("/books", h.ListBooks)
		api.GET("/books/:id", h.GetBook)
		books := api.Group("/books", requireAuth)
		{
			books.POST("", h.CreateBook)
			books.PATCH("/:id", h.UpdateBook)
			books.DELETE("/:id", h.DeleteBook)
		}

		// Tags
		tags := api.Group("/tags", requireAuth)
		{
			tags.POST("", h.CreateTag)
			tags.GET("", h.ListTags)
			tags.GET("/search", h.SearchTags)
			tags.GET("/:id", h.GetTag)
			tags.DELETE("/:id", h.DeleteTag)
		}

		// Clubs
		clubs := api.Group("/clubs", requireAuth)
		{
			clubs.POST("", h.CreateClub)
			clubs.GET("", h.ListClubs)
			clubs.GET("/creator/:creator_id", h.ListClubsByCreator)
			clubs.GET("/current-book/:current_book_id", h.ListClubsByCurrentBook)
			clubs.GET("/:id", h.GetClub)
			clubs.PATCH("/:id", h.UpdateClub)
			clubs.DELETE("/:id", h.DeleteClub)
		}

		// Club memberships (pair-keyed)
		members := api.Group("/club-members", requireAuth)
		{
			members.POST("", h.AddMember)
			members.GET("", h.ListMembers)
			members.GET("/club/:club_id", h.ListMembersByClub)
			members.GET("/person/:person_id", h.ListMembersByPerson)
			members.GET("/:club_id/:person_id", h.GetMember)
			members.PATCH("/:club_id/:person_id", h.UpdateMember)
			members.DELETE("/:club_id/:person_id", h.RemoveMember)
		}

		// Reading history
		history := api.Group("/club-book-history", requireAuth)
		{
			history.POST("", h.CreateHistory)
			history.GET("", h.ListHistory)
			history.GET("/club/:club_id", h.ListHistoryByClub)
			history.GET("/book/:book_id", h.ListHistoryByBook)
			history.GET("/:id", h.GetHistory)
			history.PATCH("/:id", h.UpdateHistory)
			history.DELETE("/:id", h.DeleteHistory)
		}

		// Chats
		chats := api.Group("/chats", requireAuth)
		{
			chats.POST("", h.CreateChat)
			chats.GET("", h.ListChats)
			chats.GET("/club/:club_id", h.ListChatsByClub)
			chats.GET("/:id", h.GetChat)
			chats.PATCH("/:id", h.UpdateChat)
			chats.DELETE("/:id", h.DeleteChat)
		}

		// Messages
		messages := api.Group("/messages", requireAuth)
		{
			messages.POST("", h.CreateMessage)
			messages.GET("", h.ListMessages)
			messages.GET("/chat/:chat_id", h.ListMessagesByChat)
			messages.GET("/person/:person_id", h.ListMessagesByPerson)
			messages.GET("/:id", h.GetMessage)
			messages.PATCH("/:id", h.UpdateMessage)
			messages.DELETE("/:id", h.DeleteMessage)
		}

		// Reviews: reads are public so book pages can show ratings.
		api.GET("/reviews", h.ListReviews)
		api.GET("/reviews/book/:book_id", h.ListReviewsByBook)
		api.GET("/reviews/:id", h.GetReview)
		reviews := api.Group("/reviews", requireAuth)
		{
			reviews.POST("", h.CreateReview)
			reviews.PATCH("/:id", h.UpdateReview)
			reviews.DELETE("/:id", h.DeleteReview)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
