package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contentflowhq/contentflow/internal/pipeline"
)

// progressEvent is the payload streamed while work is in flight.
type progressEvent struct {
	InFlight int                `json:"in_flight"`
	Active   map[string]int     `json:"active,omitempty"`
	Bulk     *pipeline.Progress `json:"bulk,omitempty"`
}

// handleSSE streams in-flight agent work over server-sent events. An event
// is emitted whenever the in-flight picture changes, plus a periodic
// heartbeat so proxies keep the connection open.
func (s *server) handleSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})
	c.Writer.Flush()

	tracker := s.driver.Tracker()
	last := snapshot(tracker)

	ctx := c.Request.Context()
	ticker := time.NewTicker(500 * time.Millisecond)
	heartbeat := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			writeSSE(c.Writer, "heartbeat", map[string]string{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			c.Writer.Flush()
		case <-ticker.C:
			cur := snapshot(tracker)
			if cur == last {
				continue
			}
			last = cur
			writeSSE(c.Writer, "progress", progressEvent{
				InFlight: tracker.InFlight(),
				Active:   tracker.Active(),
				Bulk:     tracker.Bulk(),
			})
			c.Writer.Flush()
		}
	}
}

// snapshot reduces the tracker state to a comparable value for change
// detection between polls.
func snapshot(t *pipeline.Tracker) string {
	bulk := "-"
	if p := t.Bulk(); p != nil {
		bulk = fmt.Sprintf("%d/%d", p.Current, p.Total)
	}
	return fmt.Sprintf("%d|%s", t.InFlight(), bulk)
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
