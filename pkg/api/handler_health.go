package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jjgarcianorway/anna/pkg/version"
)

// healthHandler handles GET /health. Anna has no database or worker pool to
// check: the only failure mode at this layer is the process not running at
// all, so a 200 with the version is the whole contract.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: version.Full(),
	})
}
