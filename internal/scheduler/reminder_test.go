package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/gym-manager/internal/config"
	"github.com/gym-manager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSources struct {
	classes      []model.Class
	attendees    map[string][]model.Reservation
	memberships  []model.Membership
	created      []model.Notification
	classFrom    time.Time
	classTo      time.Time
	expiringFrom time.Time
	expiringTo   time.Time
}

func (f *fakeSources) FindStartingBetween(_ context.Context, from, to time.Time) ([]model.Class, error) {
	f.classFrom, f.classTo = from, to
	return f.classes, nil
}

func (f *fakeSources) FindConfirmedByClass(_ context.Context, classID string) ([]model.Reservation, error) {
	return f.attendees[classID], nil
}

func (f *fakeSources) FindExpiringBetween(_ context.Context, from, to time.Time) ([]model.Membership, error) {
	f.expiringFrom, f.expiringTo = from, to
	return f.memberships, nil
}

func (f *fakeSources) Create(_ context.Context, n *model.Notification) error {
	// Mirror of the repository's dedupe-key conflict clause.
	for _, existing := range f.created {
		if existing.RecipientID == n.RecipientID && existing.DedupeKey == n.DedupeKey {
			return nil
		}
	}
	f.created = append(f.created, *n)
	return nil
}

func TestSweepNotifiesAttendeesAndExpiringMembers(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	f := &fakeSources{
		classes: []model.Class{
			{ID: "class-1", Name: "Morning Yoga", StartsAt: now.Add(2 * time.Hour)},
		},
		attendees: map[string][]model.Reservation{
			"class-1": {
				{ID: "res-1", ClassID: "class-1", MemberID: "member-a"},
				{ID: "res-2", ClassID: "class-1", MemberID: "member-b"},
			},
		},
		memberships: []model.Membership{
			{ID: "mem-1", MemberID: "member-c", Plan: "gold", EndsAt: now.Add(3 * 24 * time.Hour)},
		},
	}

	cfg := config.ReminderConfig{
		ClassWindow:      24 * time.Hour,
		MembershipWindow: 7 * 24 * time.Hour,
	}
	r := NewReminder(cfg, f, f, f, f, func() time.Time { return now })

	require.NoError(t, r.Sweep(context.Background()))

	assert.Equal(t, now, f.classFrom)
	assert.Equal(t, now.Add(24*time.Hour), f.classTo)
	assert.Equal(t, now.Add(7*24*time.Hour), f.expiringTo)

	require.Len(t, f.created, 3)
	kinds := map[model.NotificationKind]int{}
	for _, n := range f.created {
		kinds[n.Kind]++
	}
	assert.Equal(t, 2, kinds[model.NotificationKindClassReminder])
	assert.Equal(t, 1, kinds[model.NotificationKindMembershipExpiry])
}

func TestSweepIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	f := &fakeSources{
		classes: []model.Class{
			{ID: "class-1", Name: "Spin", StartsAt: now.Add(time.Hour)},
		},
		attendees: map[string][]model.Reservation{
			"class-1": {{ID: "res-1", ClassID: "class-1", MemberID: "member-a"}},
		},
	}

	cfg := config.ReminderConfig{ClassWindow: 24 * time.Hour, MembershipWindow: 24 * time.Hour}
	r := NewReminder(cfg, f, f, f, f, func() time.Time { return now })

	require.NoError(t, r.Sweep(context.Background()))
	require.NoError(t, r.Sweep(context.Background()))

	assert.Len(t, f.created, 1)
}
