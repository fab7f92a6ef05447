package reminders

import (
	"context"
	"sync"
	"time"

	"medication-reminder/internal/domain/medications"
	"medication-reminder/internal/platform/logger"
)

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n Notification) error { return f(ctx, n) }

type timer interface {
	Stop() bool
}

// Scheduler arma un timer por toma pendiente. Sin persistencia ni reintentos:
// cada timer dispara una sola vez.
type Scheduler struct {
	notifier Notifier
	log      logger.Logger
	loc      *time.Location

	now   func() time.Time
	after func(d time.Duration, f func()) timer

	mu     sync.Mutex
	timers []timer
}

func NewScheduler(notifier Notifier, loc *time.Location, log logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		notifier: notifier,
		log:      log,
		loc:      loc,
		now:      time.Now,
		after: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
	}
}

// Arm descarta lo armado antes y programa de cero. Devuelve el plan armado.
func (s *Scheduler) Arm(elderName string, meds []medications.Medication) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	plan := Plan(meds, s.now().In(s.loc))
	for _, r := range plan {
		r := r
		s.timers = append(s.timers, s.after(r.Delay, func() { s.fire(elderName, r) }))
	}

	s.log.Info("reminders armed", map[string]any{"elder": elderName, "count": len(plan)})
	return plan
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Pending cuenta los timers armados (incluye los ya disparados hasta el próximo Arm).
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) stopLocked() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

func (s *Scheduler) fire(elderName string, r Reminder) {
	n := NotificationFor(elderName, r, s.now().In(s.loc))
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(context.Background(), n); err != nil {
		s.log.Warn("notification failed", map[string]any{"medication_id": r.MedicationID, "err": err})
	}
}
