package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	app "invoice_dashboard/internal/application/invoice"
)

var invoiceMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "invoice_mutations_total",
		Help: "Invoice form actions by action and outcome",
	},
	[]string{"action", "result"},
)

// MutationRecorder exports invoice action outcomes to Prometheus.
type MutationRecorder struct{}

func NewMutationRecorder() MutationRecorder {
	return MutationRecorder{}
}

func (MutationRecorder) Mutation(action string, kind app.Kind) {
	invoiceMutations.WithLabelValues(action, kind.String()).Inc()
}

var _ app.Recorder = MutationRecorder{}
