package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gym-manager/internal/config"
	"github.com/gym-manager/internal/model"
	"github.com/robfig/cron/v3"
)

// The reminder service consumes narrow views of the repositories so the
// sweep can be exercised without a database.
type classSource interface {
	FindStartingBetween(ctx context.Context, from, to time.Time) ([]model.Class, error)
}

type attendeeSource interface {
	FindConfirmedByClass(ctx context.Context, classID string) ([]model.Reservation, error)
}

type membershipSource interface {
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Membership, error)
}

type notificationSink interface {
	Create(ctx context.Context, n *model.Notification) error
}

// Reminder periodically writes notification rows for classes starting
// soon and memberships about to expire. Delivery is out of scope here;
// rows are picked up by whatever channel reads the notifications table.
type Reminder struct {
	cfg           config.ReminderConfig
	classes       classSource
	reservations  attendeeSource
	memberships   membershipSource
	notifications notificationSink
	now           func() time.Time

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

func NewReminder(
	cfg config.ReminderConfig,
	classes classSource,
	reservations attendeeSource,
	memberships membershipSource,
	notifications notificationSink,
	now func() time.Time,
) *Reminder {
	if now == nil {
		now = time.Now
	}
	return &Reminder{
		cfg:           cfg,
		classes:       classes,
		reservations:  reservations,
		memberships:   memberships,
		notifications: notifications,
		now:           now,
		cron:          cron.New(),
	}
}

// Start registers the sweep on the configured cron schedule.
func (r *Reminder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}

	_, err := r.cron.AddFunc(r.cfg.Schedule, func() {
		sweepCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		if err := r.Sweep(sweepCtx); err != nil {
			log.Printf("reminder sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", r.cfg.Schedule, err)
	}

	r.cron.Start()
	r.running = true
	log.Printf("Reminder scheduler started (%s)", r.cfg.Schedule)
	return nil
}

// Stop stops the cron loop and waits for an in-flight sweep to finish.
func (r *Reminder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	<-r.cron.Stop().Done()
	r.running = false
	log.Println("Reminder scheduler stopped")
}

func (r *Reminder) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Sweep runs one pass: class reminders for confirmed attendees of
// classes starting within ClassWindow, and expiry notices for
// memberships ending within MembershipWindow. Dedupe keys make the pass
// idempotent, so overlapping windows across runs are harmless.
func (r *Reminder) Sweep(ctx context.Context) error {
	now := r.now()

	classes, err := r.classes.FindStartingBetween(ctx, now, now.Add(r.cfg.ClassWindow))
	if err != nil {
		return fmt.Errorf("load upcoming classes: %w", err)
	}
	for _, class := range classes {
		attendees, err := r.reservations.FindConfirmedByClass(ctx, class.ID)
		if err != nil {
			return fmt.Errorf("load attendees for class %s: %w", class.ID, err)
		}
		for _, res := range attendees {
			n := &model.Notification{
				RecipientID: res.MemberID,
				Kind:        model.NotificationKindClassReminder,
				Body:        fmt.Sprintf("Reminder: %s starts at %s", class.Name, class.StartsAt.Format(time.RFC1123)),
				DedupeKey:   fmt.Sprintf("class-reminder:%s", class.ID),
			}
			if err := r.notifications.Create(ctx, n); err != nil {
				return fmt.Errorf("write class reminder: %w", err)
			}
		}
	}

	memberships, err := r.memberships.FindExpiringBetween(ctx, now, now.Add(r.cfg.MembershipWindow))
	if err != nil {
		return fmt.Errorf("load expiring memberships: %w", err)
	}
	for _, m := range memberships {
		n := &model.Notification{
			RecipientID: m.MemberID,
			Kind:        model.NotificationKindMembershipExpiry,
			Body:        fmt.Sprintf("Your %s membership ends on %s", m.Plan, m.EndsAt.Format("2006-01-02")),
			DedupeKey:   fmt.Sprintf("membership-expiry:%s", m.ID),
		}
		if err := r.notifications.Create(ctx, n); err != nil {
			return fmt.Errorf("write expiry notice: %w", err)
		}
	}

	return nil
}
