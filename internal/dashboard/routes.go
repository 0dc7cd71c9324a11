package dashboard

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contentflowhq/contentflow/internal/models"
	"github.com/contentflowhq/contentflow/internal/pipeline"
	"github.com/contentflowhq/contentflow/internal/scheduler"
	"github.com/contentflowhq/contentflow/internal/source"
	"github.com/contentflowhq/contentflow/internal/store"
)

// registerRoutes sets up all API routes on the Gin router.
func (s *server) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.GET("/stats", s.handleStats)
	api.GET("/videos", s.handleVideoList)
	api.GET("/videos/:id", s.handleVideoDetail)
	api.DELETE("/videos/:id", s.handleVideoDelete)
	api.POST("/videos/:id/actions/:action", s.handleVideoAction)
	api.POST("/pipeline/bulk", s.handleBulk)
	api.POST("/source/fetch", s.handleFetch)
	api.GET("/activity", s.handleActivity)
	api.GET("/errors", s.handleErrors)

	api.GET("/schedule", s.handleSchedule)
	api.GET("/schedule/logs", s.handleScheduleLogs)
	api.POST("/schedule/:action", s.handleScheduleAction)

	api.GET("/events", s.handleSSE)
}

func (s *server) handleStats(c *gin.Context) {
	counts, err := store.StageCounts(s.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stages":    counts,
		"in_flight": s.driver.Tracker().InFlight(),
		"active":    s.driver.Tracker().Active(),
		"bulk":      s.driver.Tracker().Bulk(),
	})
}

func (s *server) handleVideoList(c *gin.Context) {
	videos, err := store.List(s.db, store.ListFilters{
		Stage:     c.Query("stage"),
		SortField: c.Query("sort"),
		SortAsc:   c.Query("order") != "desc",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

func (s *server) handleVideoDetail(c *gin.Context) {
	v, err := store.Get(s.db, c.Param("id"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *server) handleVideoDelete(c *gin.Context) {
	if err := store.Remove(s.db, c.Param("id")); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// errStatus maps store errors to HTTP statuses.
func errStatus(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// actionOp maps an action name to the driver operation behind it.
func (s *server) actionOp(action string) pipeline.Op {
	switch action {
	case "generate":
		return s.driver.GenerateContent
	case "image":
		return s.driver.GenerateImage
	case "ready":
		return func(_ context.Context, v *models.Video) error {
			return s.driver.MarkReady(v)
		}
	case "publish":
		return s.driver.Publish
	case "retry":
		return s.driver.Retry
	default:
		return nil
	}
}

func (s *server) handleVideoAction(c *gin.Context) {
	op := s.actionOp(c.Param("action"))
	if op == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + c.Param("action")})
		return
	}
	v, err := store.Get(s.db, c.Param("id"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	if err := op(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	updated, err := store.Get(s.db, v.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

type bulkRequest struct {
	Action string   `json:"action" binding:"required"`
	IDs    []string `json:"ids" binding:"required"`
}

// handleBulk starts a strictly sequential bulk run in the background and
// returns immediately. Progress is visible on /api/stats and /api/events.
func (s *server) handleBulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	op := s.actionOp(req.Action)
	if op == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + req.Action})
		return
	}

	videos := make([]*models.Video, 0, len(req.IDs))
	for _, id := range req.IDs {
		v, err := store.Get(s.db, id)
		if err != nil {
			c.JSON(errStatus(err), gin.H{"error": err.Error()})
			return
		}
		videos = append(videos, v)
	}

	go s.driver.BulkAdvance(context.Background(), videos, op, nil)

	c.JSON(http.StatusAccepted, gin.H{"action": req.Action, "total": len(videos)})
}

type fetchRequest struct {
	URL        string `json:"url" binding:"required"`
	SourceType string `json:"source_type"`
}

func (s *server) handleFetch(c *gin.Context) {
	var req fetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SourceType == "" {
		req.SourceType = source.TypeChannel
	}
	videos, err := source.Fetch(s.db, req.URL, req.SourceType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fetched": len(videos), "videos": videos})
}

func (s *server) handleActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := store.RecentActivity(s.db, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": entries, "count": len(entries)})
}

func (s *server) handleErrors(c *gin.Context) {
	videos, err := store.Errors(s.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"errors": videos, "count": len(videos)})
}

func (s *server) handleSchedule(c *gin.Context) {
	if s.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not configured"})
		return
	}
	sched, err := s.scheduler.GetSchedule(c.Request.Context(), s.scheduleID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sched)
}

func (s *server) handleScheduleLogs(c *gin.Context) {
	if s.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	logs, err := s.scheduler.GetScheduleLogs(c.Request.Context(), s.scheduleID, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"executions": logs, "count": len(logs)})
}

func (s *server) handleScheduleAction(c *gin.Context) {
	if s.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not configured"})
		return
	}
	var sched *scheduler.Schedule
	var err error
	switch c.Param("action") {
	case "pause":
		sched, err = s.scheduler.Pause(c.Request.Context(), s.scheduleID)
	case "resume":
		sched, err = s.scheduler.Resume(c.Request.Context(), s.scheduleID)
	case "trigger":
		sched, err = s.scheduler.TriggerNow(c.Request.Context(), s.scheduleID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + c.Param("action")})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sched)
}
