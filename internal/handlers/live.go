package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/Bajrangipanjiyar/studio/internal/listview"
	"github.com/Bajrangipanjiyar/studio/internal/metrics"
)

// LiveSearchHandler serves the search-as-you-type flow over SSE. Each open
// stream owns a listview.Controller; keystrokes arrive on a companion POST
// endpoint and are debounced server-side. Closing the stream tears the
// controller down, so no fetch outlives its view.
type LiveSearchHandler struct {
	Store   OrderStore
	streams sync.Map // stream id -> *listview.Controller
}

func NewLiveSearchHandler(s OrderStore) *LiveSearchHandler {
	return &LiveSearchHandler{Store: s}
}

// Stream opens the event stream and pushes a snapshot frame whenever the
// controller state changes.
func (h *LiveSearchHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	sid := uuid.NewString()
	snapshots := make(chan listview.Snapshot, 16)
	onChange := func(s listview.Snapshot) {
		for {
			select {
			case snapshots <- s:
				return
			default:
				// Drop the oldest frame; only the latest snapshot matters.
				select {
				case <-snapshots:
				default:
				}
			}
		}
	}

	ctrl := listview.NewController(h.Store.ListOrders, onChange)
	h.streams.Store(sid, ctrl)
	metrics.LiveSearchStreams.Inc()
	defer func() {
		h.streams.Delete(sid)
		ctrl.Close()
		metrics.LiveSearchStreams.Dec()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: stream\ndata: {\"sid\":%q}\n\n", sid)
	flusher.Flush()

	slog.Info("Live search stream opened", "sid", sid)
	ctrl.Refresh()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("Live search stream closed", "sid", sid)
			return
		case snap := <-snapshots:
			payload, err := json.Marshal(snap)
			if err != nil {
				slog.Error("Failed to marshal snapshot", "sid", sid, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// Search feeds a keystroke to a stream's controller. The fetch itself is
// debounced by the controller, so rapid input collapses into one query.
func (h *LiveSearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	sid := r.FormValue("sid")
	v, ok := h.streams.Load(sid)
	if !ok {
		http.Error(w, "Unknown stream", http.StatusNotFound)
		return
	}
	v.(*listview.Controller).Search(r.FormValue("q"))
	w.WriteHeader(http.StatusNoContent)
}
