package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(upstreamCalls.WithLabelValues("users", OutcomeDegraded))
	RecordUpstream("users", OutcomeDegraded)
	assert.Equal(t, before+1, testutil.ToFloat64(upstreamCalls.WithLabelValues("users", OutcomeDegraded)))

	clicks := testutil.ToFloat64(clicksTracked)
	RecordClick()
	assert.Equal(t, clicks+1, testutil.ToFloat64(clicksTracked))

	rejections := testutil.ToFloat64(capabilityRejections.WithLabelValues("links"))
	RecordRejection("links")
	assert.Equal(t, rejections+1, testutil.ToFloat64(capabilityRejections.WithLabelValues("links")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	Init()
	RecordNotification()

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "linkhub_notifications_total")
}
