package estimates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"estimator/internal/pkg/response"
)

const maxImportErrors = 10

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	estimates := r.Group("/estimates")
	{
		estimates.GET("", h.List)
		estimates.GET("/detailed", h.Detailed)
		estimates.GET("/export", h.ExportCSV)
		estimates.POST("/import", h.Import)
		estimates.GET("/:id", h.Get)
		estimates.POST("", h.Create)
		estimates.PUT("/:id", h.Update)
		estimates.PATCH("/:id/status", h.UpdateStatus)
		estimates.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	estimates, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"estimates": estimates})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	estimate, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"estimate": estimate})
}

// Detailed returns every estimate with its line items nested, for
// export tooling.
func (h *Handler) Detailed(c *gin.Context) {
	estimates, err := h.service.Detailed(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"estimates": estimates})
}

func (h *Handler) Create(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	estimate, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"estimate_id":     estimate.ID,
		"estimate_number": estimate.EstimateNumber,
		"estimate":        estimate,
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	estimate, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"estimate": estimate})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Estimate deleted"})
}

// Import bulk-loads estimates from JSON. Any failed row flips the
// overall success flag even though the successful rows stay committed.
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid data format")
		return
	}

	result := h.service.Import(c.Request.Context(), req.Estimates)
	if len(result.Errors) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":  false,
			"error":    "Some estimates could not be imported",
			"imported": result.Imported,
			"errors":   capErrors(result.Errors),
		})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"imported": result.Imported})
}

func (h *Handler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="estimates.csv"`)
	if err := h.service.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export estimates")
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Estimate not found")
	case errors.Is(err, ErrClientNameRequired):
		response.Error(c, http.StatusBadRequest, "CLIENT_NAME_REQUIRED", err.Error())
	case errors.Is(err, ErrNoLineItems):
		response.Error(c, http.StatusBadRequest, "NO_LINE_ITEMS", err.Error())
	case errors.Is(err, ErrStatusRequired):
		response.Error(c, http.StatusBadRequest, "STATUS_REQUIRED", err.Error())
	case errors.Is(err, ErrTotalsMismatch):
		response.Error(c, http.StatusUnprocessableEntity, "TOTALS_MISMATCH", err.Error())
	case errors.Is(err, ErrNumberExhausted):
		response.Error(c, http.StatusConflict, "NUMBER_CONFLICT", err.Error())
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
