package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"inkpost/errs"
	"inkpost/middleware"
	"inkpost/utils"
)

// respondError writes {"error", "kind"} with the status of err's kind.
// Internal causes are logged and never sent to the client.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		e = errs.Internal("unexpected error", err)
	}

	if e.Kind == errs.KindInternal {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg(e.Message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "kind": e.Kind})
		return
	}

	c.JSON(e.StatusCode(), gin.H{"error": e.Message, "kind": e.Kind})
}

func respondBindError(c *gin.Context, log zerolog.Logger, err error) {
	respondError(c, log, errs.BadRequest(err.Error()))
}

// respondDetail writes {"data": data} with an ETag and answers a matching
// If-None-Match with 304.
func respondDetail(c *gin.Context, log zerolog.Logger, data interface{}) {
	body, err := json.Marshal(gin.H{"data": data})
	if err != nil {
		respondError(c, log, errs.Internal("failed to encode response", err))
		return
	}

	etag := utils.ETag(body)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "private, no-cache")
	if utils.ETagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func setTokenCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearTokenCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", secure, true)
}
