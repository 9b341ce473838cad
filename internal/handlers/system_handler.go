package handlers

import (
	"context"
	"net/http"
	"time"

	"solarscope/internal/ingest"
	"solarscope/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
)

// CountFunc отдает число строк одной таблицы для /system/stats.
type CountFunc func(ctx context.Context) (int64, error)

type SystemHandler struct {
	counts      map[string]CountFunc
	redisClient *goredis.Client
	runner      *ingest.Runner
	sources     map[string]ingest.Source
}

func NewSystemHandler(
	counts map[string]CountFunc,
	redisClient *goredis.Client,
	runner *ingest.Runner,
	sources map[string]ingest.Source,
) *SystemHandler {
	return &SystemHandler{
		counts:      counts,
		redisClient: redisClient,
		runner:      runner,
		sources:     sources,
	}
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *SystemHandler) Stats(c *gin.Context) {
	tables := gin.H{}
	for name, count := range h.counts {
		if n, err := count(c.Request.Context()); err == nil {
			tables[name] = n
		}
	}

	resp := gin.H{"database": tables}
	if h.redisClient != nil {
		if redisStats, err := redis.GetStats(h.redisClient); err == nil {
			resp["redis"] = redisStats
		}
	}

	c.JSON(http.StatusOK, resp)
}

// RunIngest принудительно запускает полный прогон всех источников (debug).
func (h *SystemHandler) RunIngest(c *gin.Context) {
	report := h.runner.RunAll(c.Request.Context())
	if report.Fatal != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": report.Fatal.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"failed":   report.Failed(),
		"outcomes": outcomesJSON(report),
	})
}

// RefreshSource перезапускает один источник по имени (debug).
func (h *SystemHandler) RefreshSource(c *gin.Context) {
	name := c.Param("source")
	src, ok := h.sources[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown source"})
		return
	}

	out := src.FetchAndStore(c.Request.Context())
	if out.Failed() {
		c.JSON(http.StatusBadGateway, gin.H{
			"source": out.Source,
			"error":  out.Err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"source":  out.Source,
		"written": out.Written,
		"skipped": out.Skipped,
	})
}

func outcomesJSON(report ingest.Report) []gin.H {
	items := make([]gin.H, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		item := gin.H{
			"source":  o.Source,
			"written": o.Written,
			"skipped": o.Skipped,
		}
		if o.Failed() {
			item["error"] = o.Err.Error()
		}
		items = append(items, item)
	}
	return items
}
