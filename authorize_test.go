package loja

import (
	"context"
	"errors"
	"testing"

	"github.com/lucasSanto5s/LojaOnline/pkg/kv"
)

func guardedStore(t *testing.T, opts ...AuthorizerOption) *Store {
	t.Helper()
	base := []AuthorizerOption{AuthorizerWithRules(DefaultRules())}
	return newSeededStore(t, kv.NewMemory(),
		WithAuthorizer(NewAuthorizer(append(base, opts...)...)))
}

func TestDefaultRulesDenyAnonymousWrites(t *testing.T) {
	s := guardedStore(t)

	err := s.Dispatch(context.Background(), CreateProduct{Product: Product{Title: "Mug"}})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if got := len(s.Products()); got != 0 {
		t.Fatalf("denied action mutated state: %d products", got)
	}

	// Cart and theme stay ungated.
	mustDispatch(t, s, AddToCart{Product: Product{ID: 1, Title: "Mug", Price: 5}, Qty: 1})
	mustDispatch(t, s, ToggleTheme{})
}

func TestDefaultRulesAllowAdminOnly(t *testing.T) {
	s := guardedStore(t)

	mustLogin(t, s, "user@demo.com", "user123")
	err := s.Dispatch(context.Background(), DeleteUser{ID: "u1"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("regular user err = %v, want ErrUnauthorized", err)
	}

	mustLogin(t, s, "admin@admin.com", "admin123")
	mustDispatch(t, s, CreateProduct{Product: Product{Title: "Mug", Price: 5}})
	mustDispatch(t, s, CreateClient{Client: Client{FirstName: "Ana", Status: StatusActivated}})
	mustDispatch(t, s, AddUser{UserName: "New", Email: "new@x.com", Password: "pw", Role: RoleUser})
}

func TestOwnerRuleGatesProfileUpdates(t *testing.T) {
	s := guardedStore(t)
	mustLogin(t, s, "user@demo.com", "user123")

	me, _ := s.UserByID("u2")
	me.Name = "JOHNNY"
	mustDispatch(t, s, UpdateProfile{User: me})
	if current, _ := s.CurrentUser(); current.Name != "JOHNNY" {
		t.Fatalf("session = %+v, want renamed", current)
	}

	other, _ := s.UserByID("u1")
	other.Name = "PWNED"
	err := s.Dispatch(context.Background(), UpdateProfile{User: other})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized for someone else's profile", err)
	}
}

func TestAuthorizerFailsClosedOnBadRule(t *testing.T) {
	s := guardedStore(t, AuthorizerWithRule(ToggleTheme{}.Name(), "session !!!"))

	err := s.Dispatch(context.Background(), ToggleTheme{})
	if err == nil {
		t.Fatal("unparseable rule must deny")
	}
	if got := s.Theme(); got != ThemeLight {
		t.Fatalf("theme = %q, denied action mutated state", got)
	}
}

func TestAuthorizerDeniesNonBooleanRules(t *testing.T) {
	s := guardedStore(t, AuthorizerWithRule(ClearCart{}.Name(), `"yes"`))

	err := s.Dispatch(context.Background(), ClearCart{})
	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("err = %v, want RuleError for non-bool result", err)
	}
}

func TestActionsWithoutRulesAreAllowed(t *testing.T) {
	a := NewAuthorizer()
	if err := a.Authorize(RuleContext{Action: "anything/at-all"}); err != nil {
		t.Fatalf("Authorize: %v", err)
	}
}

func TestEvaluatorForEngine(t *testing.T) {
	if _, err := EvaluatorForEngine("", NewRuleCache(), nil); err != nil {
		t.Fatalf("default engine: %v", err)
	}
	if _, err := EvaluatorForEngine("expr", nil, NewFunctionRegistry()); err != nil {
		t.Fatalf("expr engine: %v", err)
	}
	if _, err := EvaluatorForEngine("cel", NewRuleCache(), nil); err != nil {
		t.Fatalf("cel engine: %v", err)
	}
	if _, err := EvaluatorForEngine("bogus", nil, nil); err == nil {
		t.Fatal("unknown engine should fail")
	}
}

func TestDefaultRulesForMatchEngineSyntax(t *testing.T) {
	rules, err := DefaultRulesFor("cel")
	if err != nil {
		t.Fatalf("cel rules: %v", err)
	}
	evaluator, err := EvaluatorForEngine("cel", NewRuleCache(), nil)
	if err != nil {
		t.Fatalf("cel engine: %v", err)
	}
	s := newSeededStore(t, kv.NewMemory(),
		WithAuthorizer(NewAuthorizer(
			AuthorizerWithEvaluator(evaluator),
			AuthorizerWithRules(rules),
		)))

	err = s.Dispatch(context.Background(), CreateProduct{Product: Product{Title: "Mug"}})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous err = %v, want ErrUnauthorized", err)
	}

	mustLogin(t, s, "user@demo.com", "user123")
	if err := s.Dispatch(context.Background(), DeleteUser{ID: "u1"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("regular user err = %v, want ErrUnauthorized", err)
	}
	me, _ := s.UserByID("u2")
	me.Name = "JOHNNY"
	mustDispatch(t, s, UpdateProfile{User: me})

	mustLogin(t, s, "admin@admin.com", "admin123")
	mustDispatch(t, s, CreateProduct{Product: Product{Title: "Mug", Price: 5}})

	if _, err := DefaultRulesFor("bogus"); err == nil {
		t.Fatal("unknown engine should fail")
	}
}

func TestCELEvaluatorDrivesAuthorizer(t *testing.T) {
	evaluator, err := EvaluatorForEngine("cel", NewRuleCache(), nil)
	if err != nil {
		t.Fatalf("cel engine: %v", err)
	}
	s := newSeededStore(t, kv.NewMemory(),
		WithAuthorizer(NewAuthorizer(
			AuthorizerWithEvaluator(evaluator),
			AuthorizerWithRule(CreateProduct{}.Name(), `session.role == "admin"`),
		)))
	mustLogin(t, s, "admin@admin.com", "admin123")
	mustDispatch(t, s, CreateProduct{Product: Product{Title: "Mug", Price: 5}})

	mustLogin(t, s, "user@demo.com", "user123")
	if err := s.Dispatch(context.Background(), CreateProduct{Product: Product{Title: "Nope"}}); err == nil {
		t.Fatal("cel rule should deny the regular user")
	}
}
