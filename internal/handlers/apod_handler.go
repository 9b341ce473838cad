package handlers

import (
	"net/http"
	"strconv"

	"solarscope/internal/service"

	"github.com/gin-gonic/gin"
)

type APODHandler struct {
	service service.APODService
}

func NewAPODHandler(service service.APODService) *APODHandler {
	return &APODHandler{service: service}
}

func (h *APODHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.service.GetPaginated(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get APOD list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *APODHandler) Latest(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.service.GetLatest(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get latest APOD"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no APOD stored yet"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *APODHandler) ByDate(c *gin.Context) {
	ctx := c.Request.Context()
	date := c.Param("date")

	item, err := h.service.GetByDate(ctx, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get APOD"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no APOD for this date"})
		return
	}

	c.JSON(http.StatusOK, item)
}
