package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/saransh1220/bucket-events/internal/modules/digest/application"
	"github.com/saransh1220/bucket-events/internal/modules/digest/domain"
)

// DigestRunner is the digest capability the handler invokes
type DigestRunner interface {
	Run(ctx context.Context, day time.Time) application.Result
	RunToday(ctx context.Context) application.Result
	Location() *time.Location
}

// DigestHandler exposes a digest run over HTTP
type DigestHandler struct {
	runner DigestRunner
}

func NewDigestHandler(runner DigestRunner) *DigestHandler {
	return &DigestHandler{runner: runner}
}

// Run handles POST /digest?day=YYYY-MM-DD; without day it reports on today
func (h *DigestHandler) Run(w http.ResponseWriter, r *http.Request) {
	var res application.Result

	if value := r.URL.Query().Get("day"); value != "" {
		day, err := domain.ParseDay(value, h.runner.Location())
		if err != nil {
			http.Error(w, "invalid day, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		res = h.runner.Run(r.Context(), day)
	} else {
		res = h.runner.RunToday(r.Context())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Printf("[DigestHandler.Run] Response encode error: %v", err)
	}
}
