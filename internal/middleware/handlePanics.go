package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandlePanics logs a recovered panic and answers with a plain-text 500
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		evt := log.Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path)
		if err, ok := recovered.(error); ok {
			evt = evt.Err(err)
		} else {
			evt = evt.Interface("panic", recovered)
		}
		evt.Msg("Recovered from panic")

		c.String(http.StatusInternalServerError, "Internal server error")
		c.Abort()
	}
}
