package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/application"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/domain"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/interfaces/event"
)

const maxEventBytes = 1 << 20

// BatchProcessor is the thumbnail capability the handler invokes
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, records []domain.Record) application.Result
}

// ThumbnailHandler accepts S3 notifications over HTTP
type ThumbnailHandler struct {
	processor BatchProcessor
}

func NewThumbnailHandler(processor BatchProcessor) *ThumbnailHandler {
	return &ThumbnailHandler{processor: processor}
}

// Process handles POST /thumbnail with an S3 event notification body
func (h *ThumbnailHandler) Process(w http.ResponseWriter, r *http.Request) {
	var evt events.S3Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes)).Decode(&evt); err != nil {
		http.Error(w, "invalid S3 event payload", http.StatusBadRequest)
		return
	}

	res := h.processor.ProcessBatch(r.Context(), event.Records(evt))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Printf("[ThumbnailHandler.Process] Response encode error: %v", err)
	}
}
