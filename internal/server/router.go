package server

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Manohar-jami/Job-Portal-Api/internal/auth"
	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/handlers"
	"github.com/Manohar-jami/Job-Portal-Api/internal/metrics"
	"github.com/Manohar-jami/Job-Portal-Api/internal/middleware"
	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
	"github.com/Manohar-jami/Job-Portal-Api/internal/repository"
	"github.com/Manohar-jami/Job-Portal-Api/internal/services"
)

type Dependencies struct {
	Store  *repository.Store
	Tokens *auth.TokenIssuer

	// Optional.
	LLM          *services.LLMService
	ApplyLimiter middleware.Limiter

	EnforceJobOwnership bool
	CORSAllowedOrigins  []string
}

var validatorsOnce sync.Once

func registerValidators() error {
	var err error
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = dtos.RegisterValidators(v)
	})
	return err
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	authService := services.NewAuthService(deps.Store.Users, deps.Tokens)
	jobService := services.NewJobService(deps.Store.Jobs)
	applicationService := services.NewApplicationService(deps.Store.Applications, deps.Store.Jobs, deps.EnforceJobOwnership)

	authHandler := handlers.NewAuthHandler(authService)
	jobHandler := handlers.NewJobHandler(deps.LLM, jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics())
	r.Use(cors.New(corsConfig(deps.CORSAllowedOrigins)))

	r.GET("/", handlers.Home)
	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Authentication
	r.POST("/register/", authHandler.Register)
	r.POST("/login/", authHandler.Login)
	r.POST("/token/refresh/", authHandler.Refresh)

	// Jobs
	r.GET("/jobs/", jobHandler.ListJobs)

	authed := r.Group("/", middleware.RequireAuth(authService))
	{
		authed.POST("/jobs/create/", jobHandler.CreateJob)
		authed.POST("/jobs/extract/", jobHandler.ParseJob)

		// Applications
		authed.POST("/jobs/:id/apply/", middleware.RateLimit(deps.ApplyLimiter, applyKey), applicationHandler.Apply)
		authed.GET("/applications/me/", applicationHandler.MyApplications)

		// Recruiter
		authed.GET("/jobs/:id/applicants/", applicationHandler.Applicants)
		authed.PATCH("/applications/:id/update/", applicationHandler.UpdateStatus)
	}

	return r, nil
}

// applyKey buckets apply calls per candidate and job. Other callers get no
// key, so the role check in the handler answers them first.
func applyKey(c *gin.Context) string {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.Role != models.RoleCandidate {
		return ""
	}
	return "apply:" + strconv.FormatUint(uint64(p.UserID), 10) + ":" + c.Param("id")
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	config.AllowAllOrigins = len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			config.AllowAllOrigins = true
		}
	}
	if !config.AllowAllOrigins {
		config.AllowOrigins = origins
	}
	return config
}
