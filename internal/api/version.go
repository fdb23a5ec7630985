package api

import (
	"net/http"

	"github.com/ericogr/technonomicon/internal/version"
	"github.com/gin-gonic/gin"
)

// Version reports the build the server is running.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Current())
}
