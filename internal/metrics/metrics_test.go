package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.EventsPosted.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.EventsPosted))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EventsPosted))
}

func TestWorkerRun(t *testing.T) {
	r := NewRegistry()
	r.WorkerRun("payment_due", nil)
	r.WorkerRun("payment_due", errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.WorkerRunsTotal.WithLabelValues("payment_due", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.WorkerRunsTotal.WithLabelValues("payment_due", "error")))

	var nilRegistry *Registry
	nilRegistry.WorkerRun("x", nil)
}

func TestHandlerServesMetrics(t *testing.T) {
	r := NewRegistry()
	r.CheckInsTotal.Inc()

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "eventstaff_check_ins_total 1")
}
