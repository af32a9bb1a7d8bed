package usersink_test

import (
	"context"
	"testing"
	"time"

	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/lucasSanto5s/LojaOnline/pkg/activity"
	"github.com/lucasSanto5s/LojaOnline/pkg/activity/usersink"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	event := activity.Event{
		Verb:       "cart/checkout",
		ActorID:    "u2",
		UserID:     "u2",
		ObjectType: "order",
		ObjectID:   "7f2c4f3a-9f0f-4a3d-8f6b-2d1e5a7c9b11",
		Channel:    "storefront",
		Metadata:   map[string]any{"total": 20.0},
		OccurredAt: now,
	}

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.Verb != "cart/checkout" || record.ObjectType != "order" {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "storefront" {
		t.Fatalf("channel = %q", record.Channel)
	}
	if record.OccurredAt != now {
		t.Fatalf("occurred_at = %v, want %v", record.OccurredAt, now)
	}
	// Storefront ids are not UUIDs; the typed column stays Nil and the raw
	// id rides along in Data.
	if record.ActorID != uuid.Nil {
		t.Fatalf("actor = %v, want Nil for non-UUID id", record.ActorID)
	}
	if record.Data["actor_id"] != "u2" {
		t.Fatalf("data = %v, want raw actor id", record.Data)
	}
	if record.Data["total"] != 20.0 {
		t.Fatalf("metadata passthrough missing: %v", record.Data)
	}
}

func TestHookNotifyParsesUUIDActors(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}
	actor := uuid.New()

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       "users/update",
		ActorID:    actor.String(),
		ObjectType: "user",
		ObjectID:   "u_1700000000000",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sink.records[0].ActorID != actor {
		t.Fatalf("actor = %v, want %v", sink.records[0].ActorID, actor)
	}
}

func TestHookNotifySkipsIncompleteEvents(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
}

func TestHookNotifyDefaultsTimestamp(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       "products/create",
		ObjectType: "product",
		ObjectID:   "1",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sink.records[0].OccurredAt.IsZero() {
		t.Fatal("expected occurred_at to be defaulted")
	}
}

func TestHookWithoutSinkIsNoOp(t *testing.T) {
	hook := usersink.Hook{}
	if err := hook.Notify(context.Background(), activity.Event{Verb: "x", ObjectType: "y"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
}
