package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// ValidateUserID reports whether id is a well-formed MongoDB ObjectID.
func ValidateUserID(id string) bool {
	return validate.Var(id, "required,mongodb") == nil
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

// RespondWithInternalError logs err against the request and writes the
// generic 500 body, exposing the underlying message as details.
func RespondWithInternalError(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", GetRequestID(c)).
		Str("method", c.Request.Method).
		Str("route", c.FullPath()).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal Server Error",
		Details: err.Error(),
	})
}
