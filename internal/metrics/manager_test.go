package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterMutations.WithLabelValues("add_log").Inc()
	m.CounterMutations.WithLabelValues("add_log").Inc()
	m.CounterPersistenceErrors.WithLabelValues("save").Inc()
	m.GaugeLogEntries.Set(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterMutations.WithLabelValues("add_log")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterPersistenceErrors.WithLabelValues("save")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.GaugeLogEntries))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["coachlog_test_server_session_mutations"])
	assert.True(t, names["coachlog_test_server_log_entries"])
}
