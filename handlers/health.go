package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tidybook/utils"
)

// HealthCheck reports the latest snapshot from the background health monitor.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
