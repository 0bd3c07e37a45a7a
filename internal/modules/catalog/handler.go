package catalog

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"estimator/internal/pkg/response"
	"estimator/internal/pkg/validator"
)

const maxImportErrors = 10

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.POST("/bulk-delete", h.BulkDelete)
		products.POST("/bulk", h.ImportJSON)
		products.POST("/import", h.ImportCSV)
		products.GET("/export", h.ExportCSV)
	}

	categories := r.Group("/product-categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

/* ---------- PRODUCTS ---------- */

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Product name is required", fields)
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *Handler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	deleted, err := h.service.BulkDeleteProducts(c.Request.Context(), req.IDs)
	if err != nil {
		if errors.Is(err, ErrNoIDs) {
			response.Error(c, http.StatusBadRequest, "NO_IDS", "No product IDs provided")
			return
		}
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted_count": deleted})
}

// ImportJSON bulk-imports an array of products. Any failed row flips the
// overall success flag even though the successful rows stay committed.
func (h *Handler) ImportJSON(c *gin.Context) {
	var rows []ProductImport
	if err := c.ShouldBindJSON(&rows); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid data format")
		return
	}

	result := h.service.ImportProducts(c.Request.Context(), rows)
	if len(result.Errors) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":  false,
			"error":    "Some products could not be imported",
			"imported": result.Imported,
			"errors":   capErrors(result.Errors),
		})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"imported": result.Imported})
}

// ImportCSV imports an uploaded CSV file. Partial imports report
// success as long as at least one row landed.
func (h *Handler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded or upload error")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", "File must be a CSV")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded or upload error")
		return
	}
	defer file.Close()

	result, err := h.service.ImportCSV(c.Request.Context(), file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_CSV", err.Error())
		return
	}

	if len(result.Errors) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": result.Imported > 0,
			"count":   result.Imported,
			"error":   strconv.Itoa(len(result.Errors)) + " rows had errors",
			"errors":  capErrors(result.Errors),
		})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": result.Imported})
}

func (h *Handler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	if err := h.service.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export products")
	}
}

/* ---------- PRODUCT CATEGORIES ---------- */

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": category})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.service.UpdateCategory(c.Request.Context(), id, req); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Category updated"})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCategoryInUse) {
			response.Error(c, http.StatusConflict, "CATEGORY_IN_USE",
				"Cannot delete category that is being used by products")
			return
		}
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Category deleted"})
}

/* ---------- HELPERS ---------- */

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrNameRequired):
		response.Error(c, http.StatusBadRequest, "NAME_REQUIRED", err.Error())
	case errors.Is(err, ErrCategoryExists):
		response.Error(c, http.StatusConflict, "CATEGORY_EXISTS", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func capErrors(errs []string) []string {
	if len(errs) > maxImportErrors {
		return errs[:maxImportErrors]
	}
	return errs
}
