package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/middleware"
)

// journalHandler serves read access to posted journal entries. Posting only
// happens through reconciliation; there is no write endpoint here.
type journalHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newJournalHandler(postingService portssvc.PostingSvcFacade) *journalHandler {
	return &journalHandler{postingService: postingService}
}

func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("journalEntryID")

	entry, lines, err := h.postingService.GetJournalEntry(c.Request.Context(), journalEntryID)
	if err != nil {
		respondServiceError(c, logger, err, "get journal entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"journal": entry, "lines": lines})
}

func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")
	limit, offset := paginationParams(c)

	entries, err := h.postingService.ListJournalEntries(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "list journal entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"journals": entries})
}
