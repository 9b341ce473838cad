package handlers

import (
	"net/http"
	"strconv"

	"solarscope/internal/service"

	"github.com/gin-gonic/gin"
)

type MarsHandler struct {
	service service.MarsPhotoService
}

func NewMarsHandler(service service.MarsPhotoService) *MarsHandler {
	return &MarsHandler{service: service}
}

func (h *MarsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))

	if rover := c.Query("rover"); rover != "" {
		items, err := h.service.GetByRover(ctx, rover, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get mars photos"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
		return
	}

	items, err := h.service.GetPaginated(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get mars photos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
