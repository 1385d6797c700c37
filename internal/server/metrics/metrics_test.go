package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterMetrics(reg) })
	assert.Panics(t, func() { RegisterMetrics(reg) }, "second registration must fail")
}

func TestRecordLogin(t *testing.T) {
	c := LoginAttempts.WithLabelValues(RouteLoginTest, OutcomeWrongPassword)
	before := testutil.ToFloat64(c)

	RecordLogin(RouteLoginTest, OutcomeWrongPassword, 20*time.Millisecond)
	RecordLogin(RouteLoginTest, OutcomeWrongPassword, 30*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(c))
	assert.Equal(t, 1, testutil.CollectAndCount(LoginDuration, "todoauth_login_duration_seconds"))
}
