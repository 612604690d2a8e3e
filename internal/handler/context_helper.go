package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mocalumni/alumni-api/internal/middleware"
	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
)

// pathID parses the numeric :id route parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id")
	}
	return id, nil
}

// currentClaims returns the JWT claims stored by the auth middleware.
func currentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	value, ok := c.Get(middleware.ContextAdminKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}
