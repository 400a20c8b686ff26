package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// SearchStream func
// SearchStream godoc
// @Summary Streaming flight search
// @Description Run the same search as /search, delivered as server-sent events: one progress event per candidate, then one terminal event
// @Tags SEARCH
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions/{id}/search/stream [post]
// @Produce text/event-stream
// @param id path string true "session id"
// @param Search body SearchRequest true "Search"
func (hdl *HTTPHandler) SearchStream(c *fiber.Ctx) error {
	filters, ok := hdl.parseSearchRequest(c)
	if !ok {
		return nil
	}

	// The stream writer runs after this handler returns, so it needs its own
	// cancellation scope: a failed flush means the caller went away, and the
	// search must stop between candidates rather than keep spending calls.
	ctx, cancel := context.WithCancel(context.Background())

	events, err := hdl.srv.SearchStream(ctx, c.Params("id"), filters)
	if err != nil {
		cancel()
		logrus.Errorln(err)
		return hdl.errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for event := range events {
			payload, err := json.Marshal(toStreamEventResponse(event))
			if err != nil {
				logrus.Errorln(err)
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				// Client disconnected; abort the search. The service drops
				// the partial batch without merging it.
				logrus.Infof("Stream client disconnected: %v", err)
				cancel()
				// Drain so the producing goroutine can finish and close.
				for range events {
				}
				return
			}
		}
	}))

	return nil
}
