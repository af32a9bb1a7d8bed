package loja

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/lucasSanto5s/LojaOnline/pkg/kv"
)

// SeedUsers returns the bootstrap accounts written on first run: one
// admin and one regular user with well-known credentials.
func SeedUsers() []User {
	return []User{
		{ID: "u1", Name: "ADMIN", Email: "admin@admin.com", Password: "admin123", Role: RoleAdmin},
		{ID: "u2", Name: "JOHN", Email: "user@demo.com", Password: "user123", Role: RoleUser},
	}
}

// EnsureSeed injects the bootstrap users when the seed marker is absent,
// then sets the marker. Subsequent calls are no-ops, so user deletions
// and edits survive restarts. Run before constructing the Store so the
// cold read picks the seeded accounts up.
func EnsureSeed(ctx context.Context, storage kv.Store) error {
	if storage == nil {
		return nil
	}

	raw, ok, err := storage.Get(ctx, SeedKey)
	if err != nil {
		return err
	}
	if ok {
		var done bool
		if json.Unmarshal(raw, &done) == nil && done {
			return nil
		}
	}

	st := loadState(ctx, storage, zerolog.Nop())
	st.Auth.Users = SeedUsers()
	if err := storage.Set(ctx, StateKey, st); err != nil {
		return err
	}
	return storage.Set(ctx, SeedKey, true)
}
