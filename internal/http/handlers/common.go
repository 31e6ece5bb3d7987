package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"freightapi/internal/config"
	"freightapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	envMu sync.RWMutex
	env   config.Env
)

// SetEnv stores the loaded environment for handlers that need secrets or
// gateway settings. Called once from NewRouter.
func SetEnv(e config.Env) {
	envMu.Lock()
	defer envMu.Unlock()
	env = e
}

func getEnv() config.Env {
	envMu.RLock()
	defer envMu.RUnlock()
	return env
}

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// PathID parses the :id path segment; responds and returns false when bad.
func PathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}
