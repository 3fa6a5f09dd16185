package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// idempotencyTTL is how long a completed response is replayed
	idempotencyTTL = 24 * time.Hour
)

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
	storedAt    time.Time
	inFlight    bool
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyStore keeps completed responses in memory so a retried submit
// (double click, flaky network) replays the original outcome instead of
// creating a second receipt.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]*cachedResponse
}

// NewIdempotencyStore creates a new in-memory idempotency store
func NewIdempotencyStore() *IdempotencyStore {
	s := &IdempotencyStore{entries: make(map[string]*cachedResponse)}
	go s.cleanupLoop()
	return s
}

func (s *IdempotencyStore) cleanupLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-idempotencyTTL)
		s.mu.Lock()
		for key, entry := range s.entries {
			if !entry.inFlight && entry.storedAt.Before(cutoff) {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}

// Middleware dedupes mutating requests that carry an Idempotency-Key header.
// Requests without the header pass through untouched.
func (s *IdempotencyStore) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		key = c.Request.Method + " " + c.FullPath() + " " + key

		s.mu.Lock()
		entry, exists := s.entries[key]
		if exists {
			s.mu.Unlock()
			if entry.inFlight {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"success": false,
					"message": "Request with this idempotency key is still being processed",
				})
				return
			}
			c.Data(entry.status, entry.contentType, entry.body)
			c.Abort()
			return
		}
		s.entries[key] = &cachedResponse{inFlight: true}
		s.mu.Unlock()

		writer := responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		s.mu.Lock()
		defer s.mu.Unlock()
		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			// Let the client retry server failures
			delete(s.entries, key)
			return
		}
		s.entries[key] = &cachedResponse{
			status:      status,
			contentType: c.Writer.Header().Get("Content-Type"),
			body:        writer.body.Bytes(),
			storedAt:    time.Now(),
		}
	}
}
