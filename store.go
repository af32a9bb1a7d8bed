// Package loja is a client-side state container for a small storefront:
// six slices (ui, auth, products, clients, cart, orders) behind a single
// dispatch boundary, with write-through persistence to a pluggable KV
// store and audit hooks on every accepted mutation.
package loja

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lucasSanto5s/LojaOnline/pkg/activity"
	"github.com/lucasSanto5s/LojaOnline/pkg/kv"
)

// Store owns the state tree. All mutations go through Dispatch, which
// serializes transitions under one mutex: authorize, apply the pure
// reducer, persist the new snapshot, then notify audit hooks outside the
// lock.
type Store struct {
	mu    sync.Mutex
	state State

	storage    kv.Store
	logger     zerolog.Logger
	authorizer *Authorizer
	emitter    *activity.Emitter
	now        func() time.Time
	newOrderID func() string
}

// StoreOption configures a Store during construction.
type StoreOption func(*Store)

// WithStorage attaches the persistence backend. Without it the store is
// purely in-memory.
func WithStorage(storage kv.Store) StoreOption {
	return func(s *Store) {
		s.storage = storage
	}
}

// WithLogger replaces the default no-op logger.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithAuthorizer attaches dispatch-boundary capability checks. Without it
// every action is allowed.
func WithAuthorizer(authorizer *Authorizer) StoreOption {
	return func(s *Store) {
		s.authorizer = authorizer
	}
}

// WithActivityHooks registers audit hooks notified after each accepted
// mutation.
func WithActivityHooks(hooks ...activity.Hook) StoreOption {
	return func(s *Store) {
		s.emitter = activity.NewEmitter(activity.Hooks(hooks), activity.Config{Enabled: true})
	}
}

// WithActivityEmitter attaches a preconfigured emitter, for callers that
// need channel or enablement control beyond WithActivityHooks.
func WithActivityEmitter(emitter *activity.Emitter) StoreOption {
	return func(s *Store) {
		s.emitter = emitter
	}
}

// WithClock overrides the time source used for user ids, creation
// timestamps, and audit events.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithOrderIDs overrides order id generation. The default draws random
// UUIDs.
func WithOrderIDs(newID func() string) StoreOption {
	return func(s *Store) {
		if newID != nil {
			s.newOrderID = newID
		}
	}
}

// NewStore builds a store and hydrates its state from storage when one is
// attached. Missing or corrupt documents fall back to per-slice defaults;
// hydration never fails construction.
func NewStore(ctx context.Context, opts ...StoreOption) *Store {
	s := &Store{
		logger:     zerolog.Nop(),
		now:        time.Now,
		newOrderID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.state = loadState(ctx, s.storage, s.logger)
	return s
}

// Dispatch runs one state transition. Rejected actions (authorization,
// validation, unknown action) leave the tree untouched.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	_, err := s.do(ctx, action)
	return err
}

// do is the full dispatch pipeline; the typed wrappers (Login, Checkout,
// CreateProduct, ...) surface its result value.
func (s *Store) do(ctx context.Context, action Action) (any, error) {
	if action == nil {
		return nil, ErrUnknownAction
	}

	s.mu.Lock()

	actor := ""
	if s.state.Auth.CurrentUser != nil {
		actor = s.state.Auth.CurrentUser.ID
	}

	if s.authorizer != nil {
		now := s.now()
		err := s.authorizer.Authorize(RuleContext{
			Session: sessionBinding(s.state.Auth.CurrentUser),
			Action:  action.Name(),
			Args:    ruleArgs(action),
			Now:     &now,
		})
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}

	next, result, err := s.apply(s.state, action)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.state = next
	s.persistLocked(ctx, action, next)
	s.mu.Unlock()

	s.emit(ctx, action, result, actor)
	return result, nil
}

// apply routes the action to its reducer. The checkout composite is
// handled at the root because it spans two slices in one transition.
func (s *Store) apply(st State, action Action) (State, any, error) {
	if _, ok := action.(CheckoutCart); ok {
		next, order, err := applyCheckout(st, s.now, s.newOrderID)
		if err != nil {
			return st, nil, err
		}
		return next, order, nil
	}

	if next, handled, err := reduceUI(st.UI, action); handled {
		if err != nil {
			return st, nil, err
		}
		st.UI = next
		return st, nil, nil
	}
	if next, result, handled, err := reduceAuth(st.Auth, action, s.now); handled {
		if err != nil {
			return st, nil, err
		}
		st.Auth = next
		return st, result, nil
	}
	if next, result, handled, err := reduceProducts(st.Products, action); handled {
		if err != nil {
			return st, nil, err
		}
		st.Products = next
		return st, result, nil
	}
	if next, result, handled, err := reduceClients(st.Clients, action); handled {
		if err != nil {
			return st, nil, err
		}
		st.Clients = next
		return st, result, nil
	}
	if next, handled, err := reduceCart(st.Cart, action); handled {
		if err != nil {
			return st, nil, err
		}
		st.Cart = next
		return st, nil, nil
	}
	if next, result, handled, err := reduceOrders(st.Orders, action, s.newOrderID); handled {
		if err != nil {
			return st, nil, err
		}
		st.Orders = next
		return st, result, nil
	}

	return st, nil, fmt.Errorf("%w: %s", ErrUnknownAction, action.Name())
}

// persistLocked writes the post-transition snapshot. Theme toggles also
// refresh the dedicated theme key so it stays readable before full
// hydration. Storage failures are logged and swallowed: the in-memory
// tree is authoritative for the session.
func (s *Store) persistLocked(ctx context.Context, action Action, st State) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Set(ctx, StateKey, st); err != nil {
		s.logger.Warn().Err(err).Str("key", StateKey).Str("action", action.Name()).
			Msg("snapshot write failed")
	}
	if _, ok := action.(ToggleTheme); ok {
		if err := s.storage.Set(ctx, ThemeKey, st.UI.Theme); err != nil {
			s.logger.Warn().Err(err).Str("key", ThemeKey).Msg("theme write failed")
		}
	}
}

func (s *Store) emit(ctx context.Context, action Action, result any, actor string) {
	if !s.emitter.Enabled() {
		return
	}
	objType, objID, userID, meta := auditObject(action, result, actor)
	event := activity.Event{
		Verb:       action.Name(),
		ActorID:    actor,
		UserID:     userID,
		ObjectType: objType,
		ObjectID:   objID,
		Metadata:   meta,
		OccurredAt: s.now(),
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("verb", event.Verb).Msg("audit hook failed")
	}
}

// auditObject maps an accepted action to the audited object. actor is the
// pre-transition session id, so logout and self-deletion still attribute
// correctly.
func auditObject(action Action, result any, actor string) (objType, objID, userID string, meta map[string]any) {
	switch a := action.(type) {
	case Login:
		if user, ok := result.(User); ok {
			return "session", user.ID, user.ID, nil
		}
		return "session", "", "", nil
	case Logout:
		return "session", actor, actor, nil
	case AddUser:
		if user, ok := result.(User); ok {
			return "user", user.ID, user.ID, map[string]any{"role": string(user.Role)}
		}
		return "user", "", "", nil
	case UpdateUser:
		return "user", a.User.ID, a.User.ID, nil
	case UpdateProfile:
		return "user", a.User.ID, a.User.ID, nil
	case DeleteUser:
		return "user", a.ID, a.ID, nil
	case LoadProducts:
		return "product", "catalog", "", map[string]any{"count": len(a.Products)}
	case CreateProduct:
		if p, ok := result.(Product); ok {
			return "product", strconv.Itoa(p.ID), "", map[string]any{"title": p.Title}
		}
		return "product", "", "", nil
	case UpdateProduct:
		return "product", strconv.Itoa(a.Product.ID), "", nil
	case DeleteProduct:
		return "product", strconv.Itoa(a.ID), "", nil
	case SetProductQuery:
		return "product", "query", "", map[string]any{"query": a.Query}
	case LoadClients:
		return "client", "directory", "", map[string]any{"count": len(a.Clients)}
	case CreateClient:
		if c, ok := result.(Client); ok {
			return "client", strconv.Itoa(c.ID), "", map[string]any{"email": c.Email}
		}
		return "client", "", "", nil
	case UpdateClient:
		return "client", strconv.Itoa(a.Client.ID), "", nil
	case DeleteClient:
		return "client", strconv.Itoa(a.ID), "", nil
	case AddToCart:
		return "cart", strconv.Itoa(a.Product.ID), "", map[string]any{"qty": a.Qty}
	case IncrementCartItem:
		return "cart", strconv.Itoa(a.ID), "", nil
	case DecrementCartItem:
		return "cart", strconv.Itoa(a.ID), "", nil
	case RemoveCartItem:
		return "cart", strconv.Itoa(a.ID), "", nil
	case ClearCart:
		return "cart", "", "", nil
	case CheckoutCart, AddOrder:
		if order, ok := result.(Order); ok {
			return "order", order.ID, order.UserID, map[string]any{
				"total": order.Total,
				"items": len(order.Items),
			}
		}
		return "order", "", "", nil
	case ToggleTheme:
		return "ui", "theme", "", nil
	default:
		return "", "", "", nil
	}
}

// State returns a deep copy of the whole tree. Mutating the copy never
// reaches back into the store.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Clone(s.state)
}
