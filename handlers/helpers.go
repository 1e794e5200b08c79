package handlers

import (
	"net/http"
	"strconv"

	"gamerental/apierror"
	"gamerental/models"
	"gamerental/utils"

	"github.com/gin-gonic/gin"
)

// bindAndValidate binds the JSON body into req, normalizes it and checks its
// validate tags. On failure it writes a 400 with the list of messages and
// returns false; the caller must return without writing again.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondValidation(c, []string{"invalid JSON body: " + err.Error()})
		return false
	}
	if n, ok := req.(models.Normalizer); ok {
		n.Normalize()
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondValidation(c, utils.ValidationMessages(err))
		return false
	}
	return true
}

func respondValidation(c *gin.Context, messages []string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": messages})
}

// respondError writes the response for a service error. Unexpected errors
// are logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	apiErr, ok := apierror.As(err)
	if !ok {
		_ = c.Error(err)
		utils.LogError("Request failed", map[string]interface{}{
			"error":      err.Error(),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if apiErr.Kind == apierror.KindInvalid {
		respondValidation(c, []string{apiErr.Message})
		return
	}
	c.JSON(apiErr.Status(), gin.H{"error": apiErr.Message})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondValidation(c, []string{name + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

// parseOptionalID reads an optional positive integer query parameter.
// Absent means 0.
func parseOptionalID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondValidation(c, []string{name + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
