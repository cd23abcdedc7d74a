package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	credStatus := h.checkCredentials()
	contextStatus := h.checkContext()
	redisStatus := h.checkRedis(ctx)

	allOK := credStatus.OK && contextStatus.OK && redisStatus.OK
	statusCode := http.StatusOK
	if !allOK {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"app":        h.app.Config.App.Name,
		"env":        h.app.Config.App.Env,
		"uptime_sec": int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": gin.H{
			"credentials": credStatus,
			"context":     contextStatus,
			"redis":       redisStatus,
		},
	})
}

func (h *HealthHandler) checkCredentials() dependencyStatus {
	if err := h.app.QA.SessionError(); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

// checkContext is healthy while the context is unbuilt (it builds lazily on
// the first question); only a latched build failure is unhealthy.
func (h *HealthHandler) checkContext() dependencyStatus {
	if err := h.app.ContextSvc.Failed(); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	if !h.app.ContextSvc.Ready() {
		return dependencyStatus{OK: true, Message: "not built yet"}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if h.app.Redis == nil {
		return dependencyStatus{OK: true, Message: "disabled"}
	}
	if err := h.app.Redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}
