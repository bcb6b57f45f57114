package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Joan938/holbertonschool-hbnb/auth"
	"github.com/Joan938/holbertonschool-hbnb/entity"
	"github.com/Joan938/holbertonschool-hbnb/facade"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func statusFor(err error) int {
	if _, ok := entity.AsValidation(err); ok {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, facade.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, facade.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, facade.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, facade.ErrUnauthenticated),
		errors.Is(err, facade.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abort writes err as a JSON error body and stops the handler chain.
// Internal failures are logged with their cause and rendered generically.
func (s *Server) abort(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		s.log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.AbortWithStatusJSON(status, errorResponse{Error: "internal server error"})
		return
	}

	resp := errorResponse{Error: err.Error()}
	if ve, ok := entity.AsValidation(err); ok {
		resp.Field = ve.Field
		resp.Kind = ve.Kind.String()
	}
	c.AbortWithStatusJSON(status, resp)
}

// bind decodes the request body into dst, translating decode failures into
// validation errors.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return entity.DecodeError(err)
	}
	return nil
}

// payload decodes the request body as a field map. Only an unparseable body
// fails here; value types are checked by the facade once the caller is
// known to be allowed. An empty body carries no fields.
func payload(c *gin.Context) (entity.Fields, error) {
	var fields entity.Fields
	if err := c.ShouldBindJSON(&fields); err != nil && !errors.Is(err, io.EOF) {
		return nil, entity.DecodeError(err)
	}
	if fields == nil {
		fields = entity.Fields{}
	}
	return fields, nil
}
