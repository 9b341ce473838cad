package handlers

import (
	"net/http"
	"strconv"

	"solarscope/internal/service"

	"github.com/gin-gonic/gin"
)

type ExoplanetHandler struct {
	service service.ExoplanetService
}

func NewExoplanetHandler(service service.ExoplanetService) *ExoplanetHandler {
	return &ExoplanetHandler{service: service}
}

func (h *ExoplanetHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if query := c.Query("q"); query != "" {
		items, err := h.service.Search(ctx, query, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search exoplanets"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
		return
	}

	items, err := h.service.GetPaginated(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get exoplanet list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
