package httpserver

import (
	"errors"
	"net/http"

	"jugadubazar/internal/domain"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
	Field string `json:"field,omitempty"`
}

// writeError maps service errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var serr *domain.SubmissionError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Message, Title: verr.Title, Field: verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.As(err, &serr):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, errorResponse{Error: "order could not be submitted, please try again", Title: "Order Failed"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Title: "Invalid Request"})
}
