package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lucasSanto5s/LojaOnline/pkg/activity"
)

func TestHooksNotifyNormalizesAndFansOut(t *testing.T) {
	first := &activity.CaptureHook{}
	second := &activity.CaptureHook{}
	hooks := activity.Hooks{first, second}

	err := hooks.Notify(context.Background(), activity.Event{
		Verb:       "  cart/add  ",
		ActorID:    " u1 ",
		ObjectType: "cart",
		ObjectID:   "1",
		Metadata:   map[string]any{"qty": 2},
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(first.Events) != 1 || len(second.Events) != 1 {
		t.Fatalf("fan-out: %d/%d", len(first.Events), len(second.Events))
	}
	got := first.Events[0]
	if got.Verb != "cart/add" || got.ActorID != "u1" {
		t.Fatalf("event not normalized: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatal("timestamp should be defaulted")
	}
}

func TestHooksNotifySkipsIncompleteEvents(t *testing.T) {
	capture := &activity.CaptureHook{}
	hooks := activity.Hooks{capture}

	if err := hooks.Notify(context.Background(), activity.Event{Verb: "x"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := hooks.Notify(context.Background(), activity.Event{ObjectType: "cart"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("incomplete events must be dropped, got %d", len(capture.Events))
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := &activity.CaptureHook{Err: boom}
	ok := &activity.CaptureHook{}
	hooks := activity.Hooks{failing, ok}

	err := hooks.Notify(context.Background(), activity.Event{
		Verb:       "orders/add",
		ObjectType: "order",
		ObjectID:   "o-1",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want joined boom", err)
	}
	if len(ok.Events) != 1 {
		t.Fatal("remaining hooks must still be notified")
	}
}

func TestEmitterAppliesDefaultChannel(t *testing.T) {
	capture := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: true})

	err := emitter.Emit(context.Background(), activity.Event{
		Verb:       "ui/toggleTheme",
		ObjectType: "ui",
		ObjectID:   "theme",
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := capture.Events[0].Channel; got != "storefront" {
		t.Fatalf("channel = %q, want storefront", got)
	}
}

func TestEmitterDisabledSkipsHooks(t *testing.T) {
	capture := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: false})

	if emitter.Enabled() {
		t.Fatal("emitter should report disabled")
	}
	if err := emitter.Emit(context.Background(), activity.Event{Verb: "x", ObjectType: "y"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("disabled emitter notified hooks: %d", len(capture.Events))
	}
}

func TestNilEmitterIsSafe(t *testing.T) {
	var emitter *activity.Emitter
	if emitter.Enabled() {
		t.Fatal("nil emitter should report disabled")
	}
}
