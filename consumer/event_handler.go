package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"newscout/port"
	"newscout/usecase"
)

const (
	batchFlushSize     = 10
	batchFlushInterval = 2 * time.Second
)

// ArticleEventPayload is the payload shared by the create, update and
// delete article events.
type ArticleEventPayload struct {
	ArticleID string `json:"article_id"`
	DomainID  string `json:"domain_id"`
	Title     string `json:"title"`
}

// IndexEventHandler processes article events from the stream. Create and
// update events are buffered and re-indexed in batches to reduce
// per-event engine round-trips; deletions are applied immediately.
type IndexEventHandler struct {
	indexUsecase *usecase.IndexArticlesUsecase
	searchEngine port.SearchEngine
	logger       *slog.Logger

	mu      sync.Mutex
	buffer  []string
	timer   *time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	flushed chan struct{} // closed on each flush for testing
}

// NewIndexEventHandler creates a new IndexEventHandler.
func NewIndexEventHandler(indexUsecase *usecase.IndexArticlesUsecase, searchEngine port.SearchEngine, logger *slog.Logger) *IndexEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &IndexEventHandler{
		indexUsecase: indexUsecase,
		searchEngine: searchEngine,
		logger:       logger,
		buffer:       make([]string, 0, batchFlushSize),
		ctx:          ctx,
		cancel:       cancel,
		flushed:      make(chan struct{}, 1),
	}
}

// Stop cancels the background flush timer and drains the buffer.
func (h *IndexEventHandler) Stop() {
	h.cancel()
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
	}
	h.mu.Unlock()
	h.flush()
}

// HandleEvent processes a single event. Create and update events buffer
// the article id; delete events remove the document right away.
func (h *IndexEventHandler) HandleEvent(ctx context.Context, event Event) error {
	switch event.EventType {
	case "ArticleCreated", "ArticleUpdated":
		return h.handleUpsert(event)
	case "ArticleDeleted":
		return h.handleDelete(ctx, event)
	default:
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}
}

func (h *IndexEventHandler) handleUpsert(event Event) error {
	var payload ArticleEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal article event payload",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err,
		)
		return err
	}

	h.logger.Info("buffering article event",
		"event_type", event.EventType,
		"article_id", payload.ArticleID,
	)

	h.enqueue(payload.ArticleID)
	return nil
}

func (h *IndexEventHandler) handleDelete(ctx context.Context, event Event) error {
	var payload ArticleEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal delete payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	if err := h.searchEngine.DeleteDocuments(ctx, []string{payload.ArticleID}); err != nil {
		h.logger.Error("failed to delete document",
			"article_id", payload.ArticleID,
			"error", err,
		)
		return err
	}

	h.logger.Info("document deleted", "article_id", payload.ArticleID)
	return nil
}

// enqueue adds an article id to the buffer and triggers a flush once the
// batch threshold is reached. The timer started on the first enqueue
// bounds the latency of slow streams.
func (h *IndexEventHandler) enqueue(articleID string) {
	h.mu.Lock()
	h.buffer = append(h.buffer, articleID)
	size := len(h.buffer)

	if size == 1 {
		h.timer = time.AfterFunc(batchFlushInterval, func() {
			h.flush()
		})
	}
	h.mu.Unlock()

	if size >= batchFlushSize {
		h.flush()
	}
}

// flush re-indexes all buffered article ids in one batch call.
func (h *IndexEventHandler) flush() {
	h.mu.Lock()
	if len(h.buffer) == 0 {
		h.mu.Unlock()
		return
	}
	ids := h.buffer
	h.buffer = make([]string, 0, batchFlushSize)
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.mu.Unlock()

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	h.logger.Info("flushing batch", "count", len(unique))

	indexed, err := h.indexUsecase.ReindexArticles(h.ctx, unique)
	if err != nil {
		h.logger.Error("batch re-indexing failed", "count", len(unique), "error", err)
		return
	}

	h.logger.Info("batch re-indexed", "indexed", indexed)

	select {
	case h.flushed <- struct{}{}:
	default:
	}
}
