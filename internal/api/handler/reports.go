package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reportbot/backend/internal/models"
)

// ListReports returns a guild's reports filtered by status
// (default pendiente, "todos" as wildcard).
func (h *Handler) ListReports(c *gin.Context) {
	guildID := c.Param("guildID")
	status := c.DefaultQuery("status", models.StatusPending)
	if !models.ValidStatusFilter(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
		return
	}

	reports, err := h.Storage.ListByStatus(guildID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guild_id": guildID,
		"status":   status,
		"count":    len(reports),
		"reports":  reports,
	})
}
