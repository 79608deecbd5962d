package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kian-Chen/DSADesign/application/ports"
	"github.com/Kian-Chen/DSADesign/domain/social"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var _ ports.Metrics = (*Collector)(nil)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector("test")

	c.ListOperation("circular", "insert")
	c.ListOperation("circular", "insert")
	c.FriendshipChanged("add")
	c.SnapshotSaved("error")
	c.RecommendationServed(2 * time.Millisecond)
	c.ObserveHTTP(http.MethodGet, "/api/v1/users", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ListOperations.WithLabelValues("circular", "insert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FriendshipChanges.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SnapshotSaves.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/v1/users", "200")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("test")
	c.FriendshipChanged("remove")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_friendship_changes_total{operation="remove"} 1`)
}

type failingStore struct{ err error }

func (f failingStore) Save(context.Context, social.Snapshot) error    { return f.err }
func (f failingStore) Load(context.Context) (*social.Snapshot, error) { return nil, f.err }

func TestTraceSnapshotStore(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	boom := errors.New("throttled")

	store := TraceSnapshotStore(failingStore{err: boom}, tp.Tracer("test"), "dynamodb")
	assert.ErrorIs(t, store.Save(context.Background(), social.Snapshot{}), boom)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "snapshot.Save", spans[0].Name())
	assert.Equal(t, "snapshot.Load", spans[1].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)
}
