package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveRequest(TransportHTTP, OutcomeSuccess, 2*time.Millisecond)
	r.ObserveRequest(TransportHTTP, OutcomeSuccess, 3*time.Millisecond)
	r.ObserveRequest(TransportNATS, OutcomeInvalid, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.optimizations.WithLabelValues(TransportHTTP, OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.optimizations.WithLabelValues(TransportNATS, OutcomeInvalid)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.optimizations.WithLabelValues(TransportHTTP, OutcomeTooLarge)))

	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestObserveSolution(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveSolution(4, 3)

	expected := `
# HELP portfolio_selected_items Items selected per solved request
# TYPE portfolio_selected_items histogram
portfolio_selected_items_bucket{le="0"} 0
portfolio_selected_items_bucket{le="1"} 0
portfolio_selected_items_bucket{le="2"} 0
portfolio_selected_items_bucket{le="5"} 1
portfolio_selected_items_bucket{le="10"} 1
portfolio_selected_items_bucket{le="20"} 1
portfolio_selected_items_bucket{le="50"} 1
portfolio_selected_items_bucket{le="100"} 1
portfolio_selected_items_bucket{le="+Inf"} 1
portfolio_selected_items_sum 3
portfolio_selected_items_count 1
`
	require.NoError(t, testutil.CollectAndCompare(r.selectedCount, strings.NewReader(expected)))
}

func TestNewRecorderRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)
	assert.Panics(t, func() { NewRecorder(reg) })
}
