package loja

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lucasSanto5s/LojaOnline/pkg/kv"
)

func TestToggleThemeFlipsBothWays(t *testing.T) {
	s := newTestStore(t)

	mustDispatch(t, s, ToggleTheme{})
	if got := s.Theme(); got != ThemeDark {
		t.Fatalf("theme = %q, want dark", got)
	}
	mustDispatch(t, s, ToggleTheme{})
	if got := s.Theme(); got != ThemeLight {
		t.Fatalf("theme = %q, want light", got)
	}
}

func TestToggleThemeWritesDedicatedKey(t *testing.T) {
	storage := kv.NewMemory()
	s := newTestStore(t, WithStorage(storage))

	mustDispatch(t, s, ToggleTheme{})

	raw, ok, err := storage.Get(context.Background(), ThemeKey)
	if err != nil || !ok {
		t.Fatalf("theme key: ok=%v err=%v", ok, err)
	}
	var theme Theme
	if err := json.Unmarshal(raw, &theme); err != nil {
		t.Fatalf("unmarshal theme: %v", err)
	}
	if theme != ThemeDark {
		t.Fatalf("stored theme = %q, want dark", theme)
	}
}
