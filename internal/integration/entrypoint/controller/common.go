// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/invoice-manager/backend/internal/domain/error"
	"github.com/invoice-manager/backend/internal/integration/entrypoint/dto"
	"github.com/invoice-manager/backend/internal/integration/entrypoint/middleware"
)

// requireUserID returns the authenticated user, answering 401 when there is none.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Message: "User not authenticated",
			Code:    string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// queryInt parses an integer query parameter. Missing or malformed values yield 0.
func queryInt(ctx *gin.Context, key string) int {
	value, err := strconv.Atoi(ctx.Query(key))
	if err != nil {
		return 0
	}
	return value
}
