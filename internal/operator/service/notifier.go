package service

import (
	"log/slog"
	"reflect"
	"slices"

	"github.com/google/uuid"

	"opinfo/internal/operator/metrics"
)

type registration struct {
	id       uuid.UUID
	observer Observer
}

// notifier fans change events out to observers through the dispatcher.
// Events are bound to the generation current at post time; close bumps the
// generation so events still queued on the dispatcher do nothing.
type notifier struct {
	dispatcher Dispatcher
	logger     *slog.Logger
	metrics    *metrics.Metrics

	observers  []registration
	generation uint64
}

func newNotifier(dispatcher Dispatcher, logger *slog.Logger, m *metrics.Metrics) *notifier {
	return &notifier{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    m,
	}
}

// add registers o and returns its handle. A repeated registration of the
// same comparable observer returns the existing handle.
func (n *notifier) add(o Observer) uuid.UUID {
	if o == nil {
		return uuid.Nil
	}
	if i := n.indexOf(o); i >= 0 {
		return n.observers[i].id
	}
	reg := registration{id: uuid.New(), observer: o}
	n.observers = append(n.observers, reg)
	n.logger.Debug("observer added", "observer_id", reg.id.String())
	return reg.id
}

func (n *notifier) remove(o Observer) {
	n.removeAt(n.indexOf(o))
}

func (n *notifier) removeID(id uuid.UUID) {
	n.removeAt(slices.IndexFunc(n.observers, func(r registration) bool {
		return r.id == id
	}))
}

func (n *notifier) removeAt(i int) {
	if i < 0 {
		return
	}
	n.logger.Debug("observer removed", "observer_id", n.observers[i].id.String())
	n.observers = slices.Delete(n.observers, i, i+1)
}

func (n *notifier) indexOf(o Observer) int {
	if o == nil {
		return -1
	}
	return slices.IndexFunc(n.observers, func(r registration) bool {
		return sameObserver(r.observer, o)
	})
}

// sameObserver compares observers without panicking on dynamic types that
// are not comparable, such as func adapters. Those only match by handle.
func sameObserver(a, b Observer) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// post enqueues one operator-changed event.
func (n *notifier) post() {
	gen := n.generation
	n.metrics.IncrementNotifications()
	n.dispatcher.PostTask(func() { n.deliver(gen) })
}

func (n *notifier) deliver(gen uint64) {
	if gen != n.generation {
		return
	}
	// Observers may unregister themselves from the callback.
	for _, reg := range slices.Clone(n.observers) {
		reg.observer.OnOperatorChanged()
	}
}

func (n *notifier) close() {
	n.generation++
	n.observers = nil
}
