package handlers

import (
	"net/http"
	"strconv"

	"solarscope/internal/service"

	"github.com/gin-gonic/gin"
)

// EventsHandler обслуживает обе событийные ленты: солнечную (DONKI)
// и природную (EONET).
type EventsHandler struct {
	solar   service.SolarEventService
	natural service.NaturalEventService
}

func NewEventsHandler(solar service.SolarEventService, natural service.NaturalEventService) *EventsHandler {
	return &EventsHandler{solar: solar, natural: natural}
}

func (h *EventsHandler) ListSolar(c *gin.Context) {
	ctx := c.Request.Context()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.solar.GetPaginated(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get solar events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *EventsHandler) ListNatural(c *gin.Context) {
	ctx := c.Request.Context()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if category := c.Query("category"); category != "" {
		items, err := h.natural.GetByCategory(ctx, category, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get natural events"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
		return
	}

	items, err := h.natural.GetPaginated(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get natural events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
