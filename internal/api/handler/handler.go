// Package handler exposes the operational HTTP surface that runs next to
// the bot: health checking, token issuance and a read-only report listing
// for dashboards.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reportbot/backend/internal/storage"
)

// Handler serves the read API over the same store the bot writes to.
type Handler struct {
	Storage     storage.Storage
	AdminSecret string
	JWTSecret   []byte
}

func NewHandler(s storage.Storage, adminSecret, jwtSecret string) *Handler {
	return &Handler{
		Storage:     s,
		AdminSecret: adminSecret,
		JWTSecret:   []byte(jwtSecret),
	}
}

// Register mounts all routes on the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Healthz)
	r.POST("/auth/token", h.IssueToken)

	api := r.Group("/api", h.RequireToken)
	api.GET("/guilds/:guildID/reports", h.ListReports)
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
