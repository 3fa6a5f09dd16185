package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotencyRouter() (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	store := &IdempotencyStore{entries: make(map[string]*cachedResponse)}

	calls := 0
	router := gin.New()
	router.POST("/recibos", store.Middleware(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"success": true, "call": strconv.Itoa(calls)})
	})
	router.POST("/fail", store.Middleware(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	})
	return router, &calls
}

func post(router *gin.Engine, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysCompletedResponse(t *testing.T) {
	router, calls := newIdempotencyRouter()

	first := post(router, "/recibos", "abc-123")
	require.Equal(t, http.StatusOK, first.Code)

	second := post(router, "/recibos", "abc-123")
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, 1, *calls)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyDistinctKeysRunSeparately(t *testing.T) {
	router, calls := newIdempotencyRouter()

	post(router, "/recibos", "key-1")
	post(router, "/recibos", "key-2")

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyNoHeaderPassesThrough(t *testing.T) {
	router, calls := newIdempotencyRouter()

	post(router, "/recibos", "")
	post(router, "/recibos", "")

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyServerErrorNotCached(t *testing.T) {
	router, calls := newIdempotencyRouter()

	first := post(router, "/fail", "retry-me")
	require.Equal(t, http.StatusInternalServerError, first.Code)

	second := post(router, "/fail", "retry-me")
	require.Equal(t, http.StatusInternalServerError, second.Code)

	assert.Equal(t, 2, *calls)
}
