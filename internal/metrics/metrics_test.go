package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.ObserveAction("GENERAL")
	m.ObserveAction("GENERAL")
	m.ObserveGatewayFailure("pricing")
	m.ObserveEmbeddingFallback(errors.New("down"))
	m.ObserveRetrieval(5 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DialogueActions.WithLabelValues("GENERAL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayFailures.WithLabelValues("pricing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmbeddingFallbacks))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "kiosk_assistant_dialogue_actions_total")
	assert.Contains(t, rec.Body.String(), "kiosk_assistant_retrieval_latency_seconds_bucket")
}
