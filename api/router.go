package api

import (
	"net/http"
	"path/filepath"

	"agrostore/internal/auth"
	"agrostore/internal/media"
	"agrostore/internal/products"
	"agrostore/internal/sales"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Deps are the wired services the router needs.
type Deps struct {
	Sales    *sales.Service
	Catalog  *products.Service
	Auth     *auth.Service
	Uploader *media.Uploader
	Logger   *zap.Logger

	// StorageDir, when set, is served under the public object URL prefix
	// so uploaded image URLs resolve locally.
	StorageDir string
}

// InitRoutes registers every endpoint on the given Gin engine: the public
// catalog, the auth endpoints, and the admin back-office guarded by the
// auth middleware.
func InitRoutes(e *gin.Engine, d Deps) {
	registerValidations()

	salesHandler := NewSalesHandler(d.Sales, d.Logger)
	productsHandler := NewProductsHandler(d.Catalog, d.Logger)
	authHandler := NewAuthHandler(d.Auth, d.Logger)
	uploadsHandler := NewUploadsHandler(d.Uploader, d.Logger)

	e.POST("/auth/register", authHandler.handleRegister)
	e.POST("/auth/login", authHandler.handleLogin)

	// Catálogo público
	e.GET("/products", productsHandler.handleListPublic)
	e.GET("/products/:id", productsHandler.handleGetProduct)
	e.GET("/categories", productsHandler.handleCategories)

	admin := e.Group("/admin", RequireAuth(d.Auth), RequireAdmin())
	{
		admin.GET("/products", productsHandler.handleListAll)
		admin.POST("/products", productsHandler.handleCreateProduct)
		admin.PUT("/products/:id", productsHandler.handleUpdateProduct)
		admin.DELETE("/products/:id", productsHandler.handleDeleteProduct)

		admin.POST("/sales", salesHandler.handleCreateSale)
		admin.GET("/sales", salesHandler.handleListSales)
		admin.GET("/sales/:id", salesHandler.handleGetSale)
		admin.PATCH("/sales/:id/status", salesHandler.handlePatchStatus)

		admin.POST("/uploads", uploadsHandler.handleUpload)
	}

	if d.StorageDir != "" {
		e.Static("/storage/v1/object/public/"+media.Bucket,
			filepath.Join(d.StorageDir, media.Bucket))
	}

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}

// registerValidations adds the custom binding rules to gin's validator.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("salestatus", func(fl validator.FieldLevel) bool {
			return sales.ValidStatus(sales.Status(fl.Field().String()))
		})
	}
}
