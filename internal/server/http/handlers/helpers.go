package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// failWith maps domain errors to HTTP statuses. Unknown errors are attached
// to the context for the request logger and hidden from the client.
func failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrValidation),
		errors.Is(err, domainErrors.ErrInvalidState),
		errors.Is(err, domainErrors.ErrInvalidCredentials):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainErrors.ErrForbidden):
		fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, domainErrors.ErrDependency):
		_ = c.Error(err)
		fail(c, http.StatusBadGateway, "upstream service unavailable")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
