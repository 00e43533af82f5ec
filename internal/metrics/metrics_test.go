package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	// Given: metrics on a private registry
	registry := prometheus.NewRegistry()
	m := New("test", registry)

	// When: a few events are recorded
	m.IncGamesCreated()
	m.IncGamesJoined()
	m.IncGamesJoined()
	m.ObserveMove("continued")
	m.ObserveMove("won")
	m.ObserveMove("rejected")
	m.ObserveMove("rejected")
	m.IncGamesFinished("won")
	m.ObserveOperation("move", 2*time.Millisecond)

	// Then: the counters reflect them
	assert.InDelta(t, 1, testutil.ToFloat64(m.gamesCreated), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.gamesJoined), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.moves.WithLabelValues("rejected")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.gamesFinished.WithLabelValues("won")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.operationDuration))
}

func TestHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New("test", registry)
	m.IncGamesCreated()

	rec := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_games_created_total 1")
}
