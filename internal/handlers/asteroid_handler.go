package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"solarscope/internal/service"
	"solarscope/internal/utils"

	"github.com/gin-gonic/gin"
)

type AsteroidHandler struct {
	service   service.AsteroidService
	exportDir string
}

func NewAsteroidHandler(service service.AsteroidService, exportDir string) *AsteroidHandler {
	return &AsteroidHandler{service: service, exportDir: exportDir}
}

func (h *AsteroidHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.service.GetPaginated(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get asteroid list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// Export отдает xlsx последних сближений.
func (h *AsteroidHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	items, err := h.service.ListRecent(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list asteroids"})
		return
	}

	if err := os.MkdirAll(h.exportDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare export dir"})
		return
	}

	filename := fmt.Sprintf("asteroids_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(h.exportDir, filename)

	if err := utils.CreateAsteroidsExcel(path, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}

	c.FileAttachment(path, filename)
}
