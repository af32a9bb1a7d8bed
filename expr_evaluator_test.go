package loja

import (
	"testing"
)

func adminContext() RuleContext {
	return RuleContext{
		Session: map[string]any{"id": "u1", "role": "admin"},
		Action:  "products/create",
	}
}

func TestExprEvaluatesAdminRule(t *testing.T) {
	e := NewExprEvaluator()

	allowed, err := e.Evaluate(adminContext(), AdminRule)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if allowed != true {
		t.Fatalf("admin session should satisfy AdminRule, got %v", allowed)
	}

	denied, err := e.Evaluate(RuleContext{Action: "products/create"}, AdminRule)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if denied != false {
		t.Fatalf("nil session should fail AdminRule, got %v", denied)
	}
}

func TestExprOwnerRuleComparesIDs(t *testing.T) {
	e := NewExprEvaluator()
	ctx := RuleContext{
		Session: map[string]any{"id": "u2", "role": "user"},
		Action:  "auth/updateProfile",
		Args:    map[string]any{"id": "u2"},
	}

	allowed, err := e.Evaluate(ctx, OwnerRule)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if allowed != true {
		t.Fatalf("own id should satisfy OwnerRule, got %v", allowed)
	}

	ctx.Args = map[string]any{"id": "u1"}
	allowed, err = e.Evaluate(ctx, OwnerRule)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if allowed != false {
		t.Fatalf("foreign id should fail OwnerRule, got %v", allowed)
	}
}

func TestExprCompileCachesPrograms(t *testing.T) {
	cache := NewRuleCache()
	e := NewExprEvaluator(ExprWithProgramCache(cache))

	rule, err := e.Compile(AdminRule)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, ok := cache.Get(AdminRule); !ok {
		t.Fatal("compiled program should land in the cache")
	}

	allowed, err := rule.Evaluate(adminContext())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if allowed != true {
		t.Fatalf("cached rule result = %v, want true", allowed)
	}
}

func TestExprRegistryFunctionsAreCallable(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("isdemo", func(args ...any) (any, error) {
		if len(args) != 1 {
			return false, nil
		}
		return args[0] == "u2", nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	e := NewExprEvaluator(ExprWithFunctionRegistry(registry))
	ctx := RuleContext{
		Session: map[string]any{"id": "u2"},
		Action:  "auth/login",
	}

	result, err := e.Evaluate(ctx, `isdemo(session.id)`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result != true {
		t.Fatalf("result = %v, want true", result)
	}

	result, err = e.Evaluate(ctx, `call("isdemo", "u1")`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result != false {
		t.Fatalf("result = %v, want false", result)
	}
}

func TestExprRejectsEmptyExpression(t *testing.T) {
	e := NewExprEvaluator()
	if _, err := e.Evaluate(RuleContext{}, ""); err == nil {
		t.Fatal("empty expression should fail")
	}
	if _, err := e.Compile(""); err == nil {
		t.Fatal("empty expression should fail to compile")
	}
}

func TestCELEvaluatorBindings(t *testing.T) {
	e := NewCELEvaluator(CELWithProgramCache(NewRuleCache()))

	result, err := e.Evaluate(adminContext(), `session.role == "admin" && action == "products/create"`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result != true {
		t.Fatalf("result = %v, want true", result)
	}
}

func TestCELCompiledRuleReuses(t *testing.T) {
	e := NewCELEvaluator()
	rule, err := e.Compile(`args.id == "u2"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	result, err := rule.Evaluate(RuleContext{Args: map[string]any{"id": "u2"}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result != true {
		t.Fatalf("result = %v, want true", result)
	}
}

func TestCELRegistryFunctionsAreCallable(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("isdemo", func(args ...any) (any, error) {
		if len(args) != 1 {
			return false, nil
		}
		return args[0] == "u2", nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	e := NewCELEvaluator(CELWithFunctionRegistry(registry))
	ctx := RuleContext{
		Session: map[string]any{"id": "u2"},
		Action:  "auth/login",
	}

	result, err := e.Evaluate(ctx, `call("isdemo", session.id)`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result != true {
		t.Fatalf("result = %v, want true", result)
	}

	result, err = e.Evaluate(ctx, `call("isdemo", "u1")`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result != false {
		t.Fatalf("result = %v, want false", result)
	}
}

func TestFunctionRegistryGuards(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("f", func(...any) (any, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register("F", func(...any) (any, error) { return 2, nil }); err == nil {
		t.Fatal("names are case-insensitive, duplicate should fail")
	}
	if err := registry.Register("", func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatal("empty name should fail")
	}
	if _, err := registry.Call("missing"); err == nil {
		t.Fatal("unregistered function should fail")
	}
}
