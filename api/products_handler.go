package api

import (
	"errors"
	"net/http"
	"strconv"

	"agrostore/internal/products"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// productsHandler implements HTTP handlers for the product catalog.
type productsHandler struct {
	catalog *products.Service
	logger  *zap.Logger
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(catalog *products.Service, logger *zap.Logger) *productsHandler {
	return &productsHandler{catalog: catalog, logger: logger}
}

type createProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     int     `json:"category" binding:"required"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Availability int     `json:"availability" binding:"gte=0"`
	Image        string  `json:"image"`
}

type updateProductRequest struct {
	Name         *string  `json:"name"`
	Category     *int     `json:"category"`
	Price        *float64 `json:"price"`
	Availability *int     `json:"availability"`
	Image        *string  `json:"image"`
}

// handleListPublic handles GET /products: in-stock products only, narrowed
// by the optional category query param (0 or absent means all).
func (h *productsHandler) handleListPublic(ctx *gin.Context) {
	category, _ := strconv.Atoi(ctx.DefaultQuery("category", "0"))

	list, err := h.catalog.List(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"results": products.Filter(list, category)})
}

// handleListAll handles GET /admin/products: the whole catalog, ordered by
// availability so low-stock products surface first.
func (h *productsHandler) handleListAll(ctx *gin.Context) {
	list, err := h.catalog.List(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"results": list})
}

// handleGetProduct handles GET /products/:id.
func (h *productsHandler) handleGetProduct(ctx *gin.Context) {
	product, err := h.catalog.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// handleCreateProduct handles POST /admin/products.
func (h *productsHandler) handleCreateProduct(ctx *gin.Context) {
	var req createProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	id, err := h.catalog.Create(ctx.Request.Context(), products.NewProduct{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Availability: req.Availability,
		Image:        req.Image,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

// handleUpdateProduct handles PUT /admin/products/:id.
func (h *productsHandler) handleUpdateProduct(ctx *gin.Context) {
	var req updateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	err := h.catalog.Update(ctx.Request.Context(), ctx.Param("id"), products.UpdateProduct{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Availability: req.Availability,
		Image:        req.Image,
	})
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// handleDeleteProduct handles DELETE /admin/products/:id.
func (h *productsHandler) handleDeleteProduct(ctx *gin.Context) {
	err := h.catalog.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("failed to delete product", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// handleCategories handles GET /categories, the fixed category options.
func (h *productsHandler) handleCategories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"results": products.Categories})
}
