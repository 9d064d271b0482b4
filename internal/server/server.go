package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/auth"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/checkin"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/clase"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/config"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/gym"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/ledger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/logger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/member"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

// New builds every handler and registers the routes. notifier may be nil,
// in which case the waitlist pops without sending anything.
func New(cfg *config.Config, db *sqlx.DB, rdb *redis.Client, notifier ledger.Notifier, loc *time.Location) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := RegisterValidators(); err != nil {
		logger.Warn("validator setup failed", "error", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	gymService := gym.NewService(gym.NewRepository(db))
	memberService := member.NewService(member.NewRepository(db))
	ledgerService := ledger.NewService(ledger.NewRepository(db), notifier)

	h := handlers{
		user:    user.NewHandler(user.NewService(user.NewRepository(db), cfg.JWTSecret), user.CookieOptions{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure}),
		gym:     gym.NewHandler(gymService),
		member:  member.NewHandler(memberService),
		clase:   clase.NewHandler(clase.NewService(clase.NewRepository(db), ledgerService, loc)),
		ledger:  ledger.NewHandler(ledgerService),
		checkin: checkin.NewHandler(checkin.NewService(rdb, memberService)),
	}
	registerRoutes(router, cfg.JWTSecret, h)

	return &Server{
		router: router,
		config: cfg,
	}
}

type handlers struct {
	user    *user.Handler
	gym     *gym.Handler
	member  *member.Handler
	clase   *clase.Handler
	ledger  *ledger.Handler
	checkin *checkin.Handler
}

func registerRoutes(router *gin.Engine, jwtSecret string, h handlers) {
	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	router.GET("/gimnasios/:subdomain", h.gym.Resolve)

	authMiddleware := auth.AuthMiddleware(jwtSecret)

	public := router.Group("/auth")
	{
		public.POST("/login", h.user.Login)
		public.POST("/refresh", h.user.Refresh)
		public.POST("/logout", h.user.Logout)
		public.GET("/me", authMiddleware, h.user.GetMe)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/gyms", h.gym.CreateGym)
		admin.GET("/gyms", h.gym.ListGyms)
		admin.POST("/users", h.user.CreateStaff)
	}

	tenant := router.Group("/")
	tenant.Use(authMiddleware, auth.RequireTenant())
	{
		tenant.GET("/clases", h.clase.ListClasses)
		tenant.POST("/clases", h.clase.CreateClass)
		tenant.PUT("/clases/:id", h.clase.UpdateClass)
		tenant.DELETE("/clases/:id", h.clase.DeleteClass)
		tenant.GET("/clases/:id/horarios", h.clase.ListSlots)
		tenant.POST("/clases/:id/horarios", h.clase.CreateSlot)
		tenant.DELETE("/clases/:id/horarios/:horarioID", h.clase.DeleteSlot)
		tenant.GET("/clases/:id/proxima", h.clase.NextOccurrence)

		tenant.GET("/horarios/grid", h.clase.Grid)
		tenant.GET("/horarios/:id/inscripciones", h.ledger.Enrollments)
		tenant.POST("/horarios/:id/inscribir", h.ledger.Enroll)
		tenant.POST("/horarios/:id/desinscribir", h.ledger.Unenroll)
		tenant.GET("/horarios/:id/lista_espera", h.ledger.Waitlist)
		tenant.POST("/horarios/:id/lista_espera", h.ledger.AddToWaitlist)
		tenant.DELETE("/horarios/:id/lista_espera/:memberID", h.ledger.RemoveFromWaitlist)
		tenant.POST("/horarios/:id/lista_espera/notificar", h.ledger.NotifyNext)

		tenant.GET("/profesores", h.clase.ListProfessors)
		tenant.POST("/profesores", h.clase.CreateProfessor)

		tenant.GET("/socios", h.member.List)
		tenant.POST("/socios", h.member.Create)

		tenant.POST("/checkin/qr", h.checkin.Issue)
		tenant.GET("/checkin/qr/:token", h.checkin.Status)
		tenant.POST("/checkin/scan", h.checkin.Scan)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// corsMiddleware allows credentialed requests from the configured web apps.
func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", auth.GymHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
