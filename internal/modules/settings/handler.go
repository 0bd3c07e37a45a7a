package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estimator/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/settings", h.Get)
	r.PUT("/settings", h.Update)
}

// Get returns the raw name -> value map, the shape the estimator UI and
// the pricing engine both consume.
func (h *Handler) Get(c *gin.Context) {
	values, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settings": values})
}

func (h *Handler) Update(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.service.Update(c.Request.Context(), values); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Settings updated"})
}
