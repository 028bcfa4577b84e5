package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pixelcraft/internal/config"
	"pixelcraft/internal/database"
	"pixelcraft/internal/middleware"
	"pixelcraft/internal/modules/catalog"
	"pixelcraft/internal/modules/contact"
	"pixelcraft/internal/modules/dashboard"
	"pixelcraft/internal/modules/intake"
	"pixelcraft/internal/notify"
	jwtsvc "pixelcraft/internal/pkg/jwt"
	"pixelcraft/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := config.InitLogger(cfg); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zap.L().Sync() }()

	// No DATABASE_URL is a supported configuration: intake then runs in
	// degraded mode and every submission gets a backup id.
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			zap.L().Fatal("database connect failed", zap.Error(err))
		}
		if err := repository.Migrate(db); err != nil {
			zap.L().Fatal("migrate failed", zap.Error(err))
		}
	} else {
		zap.L().Warn("DATABASE_URL not set, running without persistence")
	}

	notifier := notify.New(cfg.Notifier)
	hub := dashboard.NewHub()
	j := jwtsvc.New(cfg.SessionSecret, 24*time.Hour)

	var (
		leadStore    intake.LeadStore
		quoteStore   intake.QuoteStore
		catalogStore intake.ServiceCatalog
		contactStore contact.MessageStore
	)

	var leadRepo *repository.LeadRepository
	var quoteRepo *repository.QuoteRepository
	var serviceRepo *repository.ServiceRepository
	var contactRepo *repository.ContactRepository
	if db != nil {
		leadRepo = repository.NewLeadRepository(db)
		quoteRepo = repository.NewQuoteRepository(db)
		serviceRepo = repository.NewServiceRepository(db)
		contactRepo = repository.NewContactRepository(db)
		leadStore = leadRepo
		quoteStore = quoteRepo
		catalogStore = serviceRepo
		contactStore = contactRepo
	}

	intakeService := intake.NewService(leadStore, quoteStore, catalogStore, notifier, hub)
	intakeHandler := intake.NewHandler(intakeService)

	contactService := contact.NewService(contactStore, notifier)
	contactHandler := contact.NewHandler(contactService)

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		// public
		intakeHandler.RegisterRoutes(v1)
		contactHandler.RegisterRoutes(v1)

		if db != nil {
			catalogService := catalog.NewService(serviceRepo)
			catalogHandler := catalog.NewHandler(catalogService)
			catalogHandler.RegisterRoutes(v1)

			dashboardService := dashboard.NewService(quoteRepo, leadRepo, contactRepo)
			dashboardHandler := dashboard.NewHandler(dashboardService, hub)

			// protected (portal endpoints)
			protected := v1.Group("/")
			protected.Use(sessionMiddleware(j, cfg.SessionCookie))
			{
				dashboardHandler.RegisterRoutes(protected)
			}
		}
	}

	zap.L().Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

// sessionMiddleware validates the session token minted by the external auth
// provider, taken from the session cookie or an Authorization bearer header.
func sessionMiddleware(j *jwtsvc.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookieName)
		if err != nil || tokenStr == "" {
			h := c.GetHeader("Authorization")
			if strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing session",
				},
			})
			return
		}

		claims, err := j.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid session",
				},
			})
			return
		}

		if claims.Role != "admin" && claims.Role != "staff" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient role",
				},
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
