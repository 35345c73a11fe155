package handlers

import (
	"net/http"
	"strconv"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/audit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditHandler exposes the audit trail for reviewed entities
type AuditHandler struct {
	recorder audit.Recorder
}

// NewAuditHandler creates a new AuditHandler instance
func NewAuditHandler(recorder audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// ListEntries godoc
// @Summary Audit trail for an entity
// @Description List recorded actions against a session or task, newest first
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entity ID" format(uuid)
// @Param limit query int false "Max entries (default: 50)"
// @Success 200 {array} audit.Entry "Audit entries"
// @Router /api/review/audit/{id} [get]
func (h *AuditHandler) ListEntries(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.recorder.List(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
