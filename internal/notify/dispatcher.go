package notify

import (
	"context"
	"sync"
	"time"

	"github.com/mashkanta-plus/leads-api/internal/leads"
	"github.com/mashkanta-plus/leads-api/internal/observability/metrics"
	"github.com/mashkanta-plus/leads-api/pkg/logging"
)

// Dispatcher owns the fire-and-forget semantics of the notification sink.
// Tasks are submitted to a buffered channel and drained by one worker
// goroutine, decoupled from the request-handling context: the HTTP response
// never waits on a send, and a send failure is logged and counted, not
// retried.
type Dispatcher struct {
	service *Service
	tasks   chan *leads.Lead
	metrics *metrics.IntakeMetrics
	logger  *logging.Logger
	timeout time.Duration

	wg   sync.WaitGroup
	once sync.Once
}

// NewDispatcher starts the background worker. queueSize bounds in-flight
// notifications; submissions beyond it are dropped and logged. m may be nil.
func NewDispatcher(service *Service, queueSize int, m *metrics.IntakeMetrics, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		service: service,
		tasks:   make(chan *leads.Lead, queueSize),
		metrics: m,
		logger:  logger,
		timeout: 30 * time.Second,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue schedules an owner alert for a stored lead. Never blocks: when the
// queue is full the alert is dropped, because the lead is already durable and
// the sink is best-effort.
func (d *Dispatcher) Enqueue(lead *leads.Lead) {
	select {
	case d.tasks <- lead:
	default:
		d.logger.Error("notification queue full, dropping lead alert", "lead_id", lead.ID)
		d.metrics.ObserveNotifyFailure()
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for lead := range d.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.service.NotifyNewLead(ctx, lead)
		cancel()
		if err != nil {
			d.logger.Error("lead notification failed", "error", err, "lead_id", lead.ID)
			d.metrics.ObserveNotifyFailure()
		}
	}
}

// Close drains queued notifications and stops the worker. Safe to call once
// during shutdown; alerts still in flight get their chance to send.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
}
