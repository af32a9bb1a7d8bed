package loja

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/lucasSanto5s/LojaOnline/internal/hydrate"
	"github.com/lucasSanto5s/LojaOnline/pkg/kv"
)

// Storage keys. StateKey holds the whole tree as one versioned document;
// ThemeKey redundantly holds just the theme so it can be read before the
// rest hydrates; SeedKey is the bootstrap marker.
const (
	StateKey = "loja/state/v1"
	SeedKey  = "loja/seed/v1"
	ThemeKey = "loja/theme"
)

func defaultState() State {
	return State{
		UI:       defaultUIState(),
		Auth:     defaultAuthState(),
		Products: defaultProductsState(),
		Clients:  defaultClientsState(),
		Cart:     defaultCartState(),
		Orders:   defaultOrdersState(),
	}
}

// loadState performs the cold read: theme key first, then the snapshot
// document, hydrated slice by slice. A slice that is absent or fails to
// decode falls back to its default without disturbing the others.
func loadState(ctx context.Context, storage kv.Store, logger zerolog.Logger) State {
	st := defaultState()
	if storage == nil {
		return st
	}

	if raw, ok, err := storage.Get(ctx, ThemeKey); err != nil {
		logger.Warn().Err(err).Str("key", ThemeKey).Msg("theme read failed")
	} else if ok {
		var theme Theme
		if json.Unmarshal(raw, &theme) == nil && (theme == ThemeLight || theme == ThemeDark) {
			st.UI.Theme = theme
		}
	}

	raw, ok, err := storage.Get(ctx, StateKey)
	if err != nil {
		logger.Warn().Err(err).Str("key", StateKey).Msg("snapshot read failed")
		return st
	}
	if !ok {
		return st
	}

	var slices map[string]json.RawMessage
	if err := json.Unmarshal(raw, &slices); err != nil {
		logger.Warn().Err(err).Str("key", StateKey).Msg("snapshot document corrupt")
		return st
	}

	st.UI = decodeSlice(logger, "ui", slices["ui"], uiDecoder(), st.UI)
	st.Auth = decodeSlice(logger, "auth", slices["auth"], authDecoder(), st.Auth)
	st.Products = decodeSlice(logger, "products", slices["products"], productsDecoder(), st.Products)
	st.Clients = decodeSlice(logger, "clients", slices["clients"], clientsDecoder(), st.Clients)
	st.Cart = decodeSlice(logger, "cart", slices["cart"], cartDecoder(), st.Cart)
	st.Orders = decodeSlice(logger, "orders", slices["orders"], ordersDecoder(), st.Orders)
	return st
}

func decodeSlice[T any](logger zerolog.Logger, name string, raw json.RawMessage, dec *hydrate.Decoder[T], fallback T) T {
	if len(raw) == 0 {
		return fallback
	}
	value, err := dec.Decode(hydrate.Context{Key: name}, raw)
	if err != nil {
		logger.Warn().Err(err).Str("slice", name).Msg("slice hydration failed, using defaults")
		return fallback
	}
	return WithDefaults(value, fallback)
}

func uiDecoder() *hydrate.Decoder[UIState] {
	return hydrate.NewDecoder(
		hydrate.WithPostHook[UIState](func(_ hydrate.Context, st *UIState) error {
			// Unknown theme values degrade to light; empty stays empty so the
			// fallback (possibly the early-read theme) can fill it.
			if st.Theme != "" && st.Theme != ThemeLight && st.Theme != ThemeDark {
				st.Theme = ThemeLight
			}
			return nil
		}),
	)
}

func authDecoder() *hydrate.Decoder[AuthState] {
	return hydrate.NewDecoder(
		hydrate.WithPostHook[AuthState](func(_ hydrate.Context, st *AuthState) error {
			users := make([]User, 0, len(st.Users))
			for _, u := range st.Users {
				if u.ID == "" {
					continue
				}
				if u.Role != RoleAdmin && u.Role != RoleUser {
					u.Role = RoleUser
				}
				users = append(users, u)
			}
			st.Users = users

			// The session copy must point at a live account; otherwise the
			// session did not survive the restart.
			if st.CurrentUser != nil {
				var match *User
				for i := range st.Users {
					if st.Users[i].ID == st.CurrentUser.ID {
						u := st.Users[i]
						match = &u
						break
					}
				}
				st.CurrentUser = match
			}
			return nil
		}),
	)
}

func productsDecoder() *hydrate.Decoder[ProductsState] {
	return hydrate.NewDecoder(
		hydrate.WithPostHook[ProductsState](func(_ hydrate.Context, st *ProductsState) error {
			items := make([]Product, 0, len(st.Items))
			for _, p := range st.Items {
				if p.ID < 1 {
					continue
				}
				items = append(items, p)
			}
			st.Items = items
			return nil
		}),
	)
}

func clientsDecoder() *hydrate.Decoder[ClientsState] {
	return hydrate.NewDecoder(
		hydrate.WithPostHook[ClientsState](func(_ hydrate.Context, st *ClientsState) error {
			items := make([]Client, 0, len(st.Items))
			for _, c := range st.Items {
				if c.ID < 1 {
					continue
				}
				if c.Status != StatusActivated && c.Status != StatusDeactivated {
					c.Status = StatusDeactivated
				}
				items = append(items, c)
			}
			st.Items = items
			return nil
		}),
	)
}

func cartDecoder() *hydrate.Decoder[CartState] {
	return hydrate.NewDecoder(
		hydrate.WithPostHook[CartState](func(_ hydrate.Context, st *CartState) error {
			// The qty >= 1 invariant holds for hydrated state too.
			items := make([]CartItem, 0, len(st.Items))
			for _, it := range st.Items {
				if it.ID < 1 || it.Qty < 1 {
					continue
				}
				items = append(items, it)
			}
			st.Items = items
			return nil
		}),
	)
}

func ordersDecoder() *hydrate.Decoder[OrdersState] {
	return hydrate.NewDecoder(
		hydrate.WithPostHook[OrdersState](func(_ hydrate.Context, st *OrdersState) error {
			items := make([]Order, 0, len(st.Items))
			for _, o := range st.Items {
				if o.ID == "" {
					continue
				}
				items = append(items, o)
			}
			st.Items = items
			return nil
		}),
	)
}
