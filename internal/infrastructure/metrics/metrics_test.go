package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(loginAttemptsTotal.WithLabelValues("success"))
	RecordLogin("success")
	assert.Equal(t, before+1, testutil.ToFloat64(loginAttemptsTotal.WithLabelValues("success")))
}

func TestRecordImport_SomaLinhas(t *testing.T) {
	before := testutil.ToFloat64(importedRows)
	RecordImport("concluido", 120)
	assert.Equal(t, before+120, testutil.ToFloat64(importedRows))
}

func TestHandler_ExpoeMetricas(t *testing.T) {
	RecordHTTPRequest("GET", "/health", 200, 3*time.Millisecond)
	RecordDisparo("sms", "sent")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "cordoba_http_requests_total")
	assert.Contains(t, string(body), `cordoba_disparos_total{channel="sms",status="sent"}`)
}
