package api

import (
	"errors"
	"net/http"

	"agrostore/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// salesHandler holds the sales service and implements HTTP handlers for
// sale lifecycle operations.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

type saleItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

type createSaleRequest struct {
	Customer struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone" binding:"required"`
	} `json:"customer" binding:"required"`
	Items []saleItemRequest `json:"items" binding:"required,min=1,dive"`
	Total float64           `json:"total" binding:"required,gt=0"`
}

// handleCreateSale handles the POST /admin/sales endpoint.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	var req createSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	items := make([]sales.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, sales.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	id, err := h.salesService.Create(ctx.Request.Context(), sales.NewSale{
		Customer: sales.Customer{Name: req.Customer.Name, Phone: req.Customer.Phone},
		Items:    items,
		Total:    req.Total,
	})
	if err != nil {
		h.logger.Error("failed to create sale", zap.Error(err))
		var verr *sales.ValidationError
		if errors.As(err, &verr) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sale"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

// handleListSales handles the GET /admin/sales endpoint.
func (h *salesHandler) handleListSales(ctx *gin.Context) {
	results, err := h.salesService.FetchAll(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to fetch sales", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sales"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"results": results})
}

// handleGetSale handles the GET /admin/sales/:id endpoint. The lookup is
// cache-only, so a sale never fetched by this instance is a 404.
func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	sale, ok := h.salesService.GetByID(ctx.Param("id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"sale":         sale,
		"status_label": sales.StatusLabel(sale.Status),
		"status_color": sales.StatusColor(sale.Status),
	})
}

// handlePatchStatus handles the PATCH /admin/sales/:id/status endpoint.
func (h *salesHandler) handlePatchStatus(ctx *gin.Context) {
	saleID := ctx.Param("id")
	var req struct {
		Status string `json:"status" binding:"required,salestatus"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
		return
	}

	err := h.salesService.SetStatus(ctx.Request.Context(), saleID, sales.Status(req.Status))
	if err != nil {
		var (
			nferr *sales.NotFoundError
			iserr *sales.InsufficientStockError
			verr  *sales.ValidationError
		)
		switch {
		case errors.As(err, &nferr):
			ctx.JSON(http.StatusNotFound, gin.H{"error": nferr.Error()})
		case errors.As(err, &iserr):
			ctx.JSON(http.StatusConflict, gin.H{
				"error":     iserr.Error(),
				"product":   iserr.ProductName,
				"available": iserr.Available,
				"required":  iserr.Required,
			})
		case errors.As(err, &verr):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		default:
			h.logger.Error("failed to update sale status",
				zap.String("sale_id", saleID), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	updated, _ := h.salesService.GetByID(saleID)
	ctx.JSON(http.StatusOK, updated)
}
