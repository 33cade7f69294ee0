package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/server/http/dto"
	"github.com/polkiloo/dispatch/internal/usecase"
)

// StatusFor maps a domain error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error envelope and attaches err to the context for request logging.
// Internal failures are reported without driver details.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status := StatusFor(err)
	text := err.Error()
	if status == http.StatusInternalServerError {
		text = "internal error"
	}
	c.AbortWithStatusJSON(status, dto.Envelope{Message: http.StatusText(status), Error: text})
}

func invalidBody(c *gin.Context, err error) {
	fail(c, domainErrors.Validationf("invalid request body: %v", err))
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := usecase.ParseID(name, c.Param("id"))
	if err != nil {
		fail(c, err)
		return 0, false
	}
	return id, true
}

func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.Envelope{Message: message, Data: data})
}

func respondResult(c *gin.Context, message string, result any) {
	c.JSON(http.StatusOK, dto.Envelope{Message: message, Result: result})
}

// respondList answers 200 in both cases; an empty list only carries a message.
func respondList[T any](c *gin.Context, items []T, found, empty string) {
	if len(items) == 0 {
		c.JSON(http.StatusOK, dto.Envelope{Message: empty})
		return
	}
	respondData(c, http.StatusOK, found, items)
}

func mapSlice[S, T any](items []S, fn func(S) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
