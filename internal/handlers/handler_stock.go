package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/middleware"
)

// stockHandler serves read access to products and their movement history.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(stockService portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: stockService}
}

func (h *stockHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.stockService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, logger, err, "get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *stockHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")
	limit, offset := paginationParams(c)

	movements, err := h.stockService.ListMovements(c.Request.Context(), productID, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "list stock movements")
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements})
}
