package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBucket(t *testing.T) {
	tests := map[int]string{
		200: "2xx",
		204: "2xx",
		301: "3xx",
		404: "4xx",
		503: "5xx",
		42:  "42",
	}
	for code, want := range tests {
		assert.Equal(t, want, statusBucket(code))
	}
}

func TestRecordAuth(t *testing.T) {
	before := testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues("login", "success"))
	RecordAuth("login", "")
	assert.Equal(t, before+1, testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues("login", "success")))
}

func TestRecordAppend(t *testing.T) {
	before := testutil.ToFloat64(TransactionsAppendedTotal)
	RecordAppend(0.7)
	assert.Equal(t, before+1, testutil.ToFloat64(TransactionsAppendedTotal))
}

func TestMiddlewareAndHandler(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/transactions/:username", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/transactions/:username", "2xx"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/transactions/ravi", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/transactions/:username", "2xx")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "riskledger_http_requests_total")
}
