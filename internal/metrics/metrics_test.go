package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tamperscan/internal/checks"
)

func TestRecordCompromisedRun(t *testing.T) {
	m := New("test")

	v := checks.Aggregate([]checks.Outcome{
		checks.Pass(checks.CheckTraceFlag),
		checks.Fail(checks.CheckLoaderImage, "frida"),
	})
	v.Duration = 30 * time.Millisecond
	m.Record(v, false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.runsTotal.WithLabelValues("compromised")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.checkFailuresTotal.WithLabelValues("loader-image")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.compromised))
}

func TestRecordCleanRunResetsGauge(t *testing.T) {
	m := New("test")

	compromised := checks.Aggregate([]checks.Outcome{checks.Fail(checks.CheckTraceFlag, "tracer pid 9")})
	m.Record(compromised, false)
	require.Equal(t, float64(1), testutil.ToFloat64(m.compromised))

	clean := checks.Aggregate([]checks.Outcome{checks.Pass(checks.CheckTraceFlag)})
	m.Record(clean, false)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.compromised))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.runsTotal.WithLabelValues("clean")))
}

func TestRecordPartialRun(t *testing.T) {
	m := New("test")

	clean := checks.Aggregate([]checks.Outcome{checks.Pass(checks.CheckTraceFlag)})
	m.Record(clean, true)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.runsTotal.WithLabelValues("partial")))
}

func TestHandlerServesScrape(t *testing.T) {
	m := New("test")
	m.Record(checks.Aggregate([]checks.Outcome{checks.Pass(checks.CheckTraceFlag)}), false)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := make([]byte, 64*1024)
	n, _ := resp.Body.Read(body)
	assert.True(t, strings.Contains(string(body[:n]), "test_runs_total"))
}
