package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health. Reports database reachability and worker
// pool utilization.
func (s *Server) Health(c *gin.Context) {
	checks := make(map[string]string)
	healthy := true

	if s.db != nil {
		if err := s.db.Ping(c.Request.Context()); err != nil {
			checks["database"] = "error"
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	body := gin.H{
		"status": status,
		"checks": checks,
	}
	if s.pools != nil {
		body["workers"] = s.pools.Metrics()
	}
	c.JSON(httpStatus, body)
}
