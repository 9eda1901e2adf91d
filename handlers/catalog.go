package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogRepo "tidybook/database/repository/catalog"
	"tidybook/utils"
)

var CatalogRepo catalogRepo.CatalogRepository

// ListOfferings returns a housekeeper's service catalog so homeowners can
// assemble a request.
func ListOfferings(c *gin.Context) {
	offerings, err := CatalogRepo.ListOfferings(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list offerings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"offerings": offerings})
}
