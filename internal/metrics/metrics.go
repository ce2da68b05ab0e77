// Package metrics provides conversion telemetry recorders.
package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// DefaultNamespace prefixes every collector name.
const DefaultNamespace = "notionmd"

// NoOp returns a recorder that drops every observation.
func NoOp() interfaces.ConversionMetrics {
	return noop{}
}

type noop struct{}

func (noop) IncrementBlockRendered(string)  {}
func (noop) IncrementBlockFailed(string)    {}
func (noop) IncrementPropertyFailed(string) {}
func (noop) IncrementPageConverted(bool)    {}

// Prometheus records conversion counters on a prometheus registerer.
type Prometheus struct {
	blocksRendered   *prometheus.CounterVec
	blocksFailed     *prometheus.CounterVec
	propertiesFailed *prometheus.CounterVec
	pagesConverted   *prometheus.CounterVec
}

// NewPrometheus registers the conversion collectors on reg. A nil registerer
// uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Prometheus{
		blocksRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "blocks_rendered_total",
				Help:      "Total blocks converted successfully by block type",
			},
			[]string{"block_type"},
		),
		blocksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "blocks_failed_total",
				Help:      "Total blocks replaced by an error comment by block type",
			},
			[]string{"block_type"},
		),
		propertiesFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "properties_failed_total",
				Help:      "Total property values replaced by an error marker by property name",
			},
			[]string{"property"},
		),
		pagesConverted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_converted_total",
				Help:      "Total pages converted, split by whether blocks were rendered",
			},
			[]string{"with_blocks"},
		),
	}
}

func (p *Prometheus) IncrementBlockRendered(blockType string) {
	p.blocksRendered.WithLabelValues(blockType).Inc()
}

func (p *Prometheus) IncrementBlockFailed(blockType string) {
	p.blocksFailed.WithLabelValues(blockType).Inc()
}

func (p *Prometheus) IncrementPropertyFailed(property string) {
	p.propertiesFailed.WithLabelValues(property).Inc()
}

func (p *Prometheus) IncrementPageConverted(withBlocks bool) {
	p.pagesConverted.WithLabelValues(strconv.FormatBool(withBlocks)).Inc()
}

var _ interfaces.ConversionMetrics = (*Prometheus)(nil)
