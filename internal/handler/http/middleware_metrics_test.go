package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-shop-keeper/internal/service"
)

func TestWithMetrics_LabelsByRoutePattern(t *testing.T) {
	h := newTestHandler(&service.Services{}, defaultSettings())
	router := h.Init()

	doRequest(router, http.MethodGet, "/api/version", "", "")
	doRequest(router, http.MethodGet, "/api/missing/1", "", "")
	doRequest(router, http.MethodGet, "/api/missing/2", "", "")

	rec := doRequest(router, http.MethodGet, "/metrics", "", "")
	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `shop_http_requests_total{method="GET",route="/api/version",status="200"} 1`)
	assert.Contains(t, body, `shop_http_requests_total{method="GET",route="unmatched",status="404"} 2`)
	assert.NotContains(t, body, "/api/missing/1")
}
