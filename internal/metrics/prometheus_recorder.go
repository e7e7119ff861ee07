package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	chapterDuration prom.Histogram
	chapterResults  *prom.CounterVec
	blocksDecorated *prom.CounterVec
	blocksPassed    prom.Counter
	colorWarnings   *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		chapterDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "codeblocks",
			Name:      "chapter_duration_seconds",
			Help:      "Time spent annotating a single chapter",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}),
		chapterResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "codeblocks",
			Name:      "chapters_total",
			Help:      "Chapters processed by outcome",
		}, []string{"result"}),
		blocksDecorated: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "codeblocks",
			Name:      "blocks_decorated_total",
			Help:      "Fenced code blocks wrapped with a decoration",
		}, []string{"language"}),
		blocksPassed: prom.NewCounter(prom.CounterOpts{
			Namespace: "codeblocks",
			Name:      "blocks_passed_total",
			Help:      "Fenced code blocks left undecorated",
		}),
		colorWarnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "codeblocks",
			Name:      "color_warnings_total",
			Help:      "Color overrides rejected during resolution",
		}, []string{"language"}),
	}
	reg.MustRegister(pr.chapterDuration, pr.chapterResults, pr.blocksDecorated, pr.blocksPassed, pr.colorWarnings)
	return pr
}

func (p *PrometheusRecorder) ObserveChapterDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.chapterDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncChapterResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.chapterResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncBlockDecorated(language string) {
	if p == nil {
		return
	}
	p.blocksDecorated.WithLabelValues(language).Inc()
}

func (p *PrometheusRecorder) IncBlockPassed() {
	if p == nil {
		return
	}
	p.blocksPassed.Inc()
}

func (p *PrometheusRecorder) IncColorWarning(language string) {
	if p == nil {
		return
	}
	p.colorWarnings.WithLabelValues(language).Inc()
}

// WriteTextfile writes every metric in reg to path in the text exposition
// format, for collection by the node_exporter textfile collector.
func WriteTextfile(path string, reg *prom.Registry) error {
	return prom.WriteToTextfile(path, reg)
}
