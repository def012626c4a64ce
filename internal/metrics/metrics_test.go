package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch(t *testing.T) {
	m := New(WithRegistry(prometheus.NewRegistry()))

	m.ObserveFetch("index", "ok")
	m.ObserveFetch("version", "ok")
	m.ObserveFetch("version", "ok")
	m.ObserveFetch("version", "status")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("index", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetches.WithLabelValues("version", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("version", "status")))
}

func TestObserveRender(t *testing.T) {
	m := New(WithRegistry(prometheus.NewRegistry()))

	m.ObserveRender(true, 3, 10*time.Millisecond)
	m.ObserveRender(false, 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("skipped")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.renderedVersions))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch("index", "ok")
		m.ObserveRender(true, 1, time.Second)
	})
}

func TestNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(WithRegistry(reg), WithNamespace("docs"))
	m.ObserveFetch("index", "ok")

	families, err := reg.Gather()
	assert.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "docs_fetches_total")
}
