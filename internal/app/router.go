package app

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sidyfoba/solarcom-console/internal/api/handlers"
	"github.com/sidyfoba/solarcom-console/internal/api/middleware"
	"github.com/sidyfoba/solarcom-console/internal/config"
	"github.com/sidyfoba/solarcom-console/internal/schema"
)

// Public routes that do NOT require JWT authentication.
var publicPrefixes = []string{
	"/api/users/check-login",
	"/health",
}

func newRouter(cfg *config.Config, server *handlers.Server, signingKey []byte) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.ErrorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(jwtSkipPublic(signingKey))

	registerRoutes(router, server)
	return router
}

func registerRoutes(r *gin.Engine, s *handlers.Server) {
	r.GET("/health", s.Health)

	// Template authoring, one identical surface per family.
	for _, fam := range []struct {
		family schema.Family
		base   string
	}{
		{schema.FamilySite, "/api/admin/infrastructure/site/template"},
		{schema.FamilyElement, "/api/admin/infrastructure/element/template"},
		{schema.FamilyTicket, "/api/admin/process/ticket/template"},
	} {
		g := r.Group(fam.base)
		g.GET("", s.ListTemplates(fam.family))
		g.POST("", s.CreateTemplate(fam.family))
		g.GET("/:id", s.GetTemplate(fam.family))
		g.PUT("/update/:id", s.UpdateTemplate(fam.family))
		g.DELETE("/delete/:id", s.DeleteTemplate(fam.family))
	}

	r.POST("/api/admin/infrastructure/template/import-headers", s.ImportTemplateHeaders)
	r.GET("/api/admin/audit", s.ListAudit)

	// Instance lifecycle, one identical surface per family.
	for _, fam := range []struct {
		family schema.Family
		base   string
	}{
		{schema.FamilySite, "/api/infrastructure/site"},
		{schema.FamilyElement, "/api/infrastructure/element"},
		{schema.FamilyTicket, "/api/process/ticket"},
	} {
		g := r.Group(fam.base)
		g.POST("/create-from-template/:templateId", s.CreateFromTemplate(fam.family))
		g.PUT("/update-from-template", s.UpdateFromTemplate(fam.family))
		g.GET("/all/:templateId", s.ListInstances(fam.family))
		g.GET("/:id", s.GetInstance(fam.family))
		g.DELETE("/:id", s.DeleteInstance(fam.family))
	}

	projects := r.Group("/api/projects")
	projects.GET("", s.ListProjects)
	projects.POST("", s.CreateProject)
	projects.GET("/:id", s.GetProject)
	projects.PUT("/:id", s.UpdateProject)
	projects.DELETE("/:id", s.DeleteProject)

	hr := r.Group("/api/hr")
	hr.GET("/employees", s.ListEmployees)
	hr.POST("/employees", s.CreateEmployee)
	hr.GET("/employees/:id", s.GetEmployee)
	hr.PUT("/employees/:id", s.UpdateEmployee)
	hr.DELETE("/employees/:id", s.DeleteEmployee)
	hr.GET("/teams", s.ListTeams)
	hr.POST("/teams", s.CreateTeam)
	hr.PUT("/teams/:id", s.UpdateTeam)
	hr.DELETE("/teams/:id", s.DeleteTeam)
	hr.GET("/job-positions", s.ListJobPositions)
	hr.POST("/job-positions", s.CreateJobPosition)
	hr.PUT("/job-positions/:id", s.UpdateJobPosition)
	hr.DELETE("/job-positions/:id", s.DeleteJobPosition)

	r.POST("/api/users/add", s.AddUser)
	r.POST("/api/users/check-login", s.CheckLogin)

	r.GET("/api/notifications", s.ListNotifications)
	r.PUT("/api/notifications/:id/read", s.MarkNotificationRead)
}

// jwtSkipPublic returns middleware that applies JWT auth only on
// non-public routes.
func jwtSkipPublic(signingKey []byte) gin.HandlerFunc {
	jwtMw := middleware.JWTAuth(signingKey)
	return func(c *gin.Context) {
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}
		jwtMw(c)
	}
}
