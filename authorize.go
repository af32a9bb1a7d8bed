package loja

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// AdminRule is the capability expression gating management mutations,
// spelled for the default expr backend.
const AdminRule = `session != nil && session.role == "admin"`

// OwnerRule gates profile edits to the account being edited, spelled for
// the default expr backend.
const OwnerRule = `session != nil && args.id == session.id`

// Each backend spells the absent-session check in its own syntax: expr
// uses nil, CEL and JS use null.
const (
	adminRuleCEL = `session != null && session.role == "admin"`
	ownerRuleCEL = `session != null && args.id == session.id`
	adminRuleJS  = `session !== null && session.role === "admin"`
	ownerRuleJS  = `session !== null && args.id === session.id`
)

// DefaultRules maps every admin-only mutation (user/product/client
// create-update-delete) to AdminRule, and profile updates to OwnerRule.
// Reads, cart mutations, checkout, theme, and the one-shot feed bulk
// loads stay ungated. The expressions use expr syntax; pair another
// engine with DefaultRulesFor.
func DefaultRules() map[string]string {
	return defaultRules(AdminRule, OwnerRule)
}

// DefaultRulesFor returns the stock capability set spelled for the named
// rule engine, matching EvaluatorForEngine's engine names.
func DefaultRulesFor(engine string) (map[string]string, error) {
	switch engine {
	case "", "expr":
		return DefaultRules(), nil
	case "cel":
		return defaultRules(adminRuleCEL, ownerRuleCEL), nil
	case "js":
		return defaultRules(adminRuleJS, ownerRuleJS), nil
	default:
		return nil, fmt.Errorf("loja: unknown rule engine %q", engine)
	}
}

func defaultRules(admin, owner string) map[string]string {
	return map[string]string{
		AddUser{}.Name():       admin,
		UpdateUser{}.Name():    admin,
		DeleteUser{}.Name():    admin,
		CreateProduct{}.Name(): admin,
		UpdateProduct{}.Name(): admin,
		DeleteProduct{}.Name(): admin,
		CreateClient{}.Name():  admin,
		UpdateClient{}.Name():  admin,
		DeleteClient{}.Name():  admin,
		UpdateProfile{}.Name(): owner,
	}
}

// Authorizer enforces capability rules at the dispatch boundary. Rules
// are expressions keyed by action name; actions without a rule are
// allowed. Evaluation failures deny the action (fail closed).
type Authorizer struct {
	evaluator Evaluator
	logger    RuleLogger
	exprs     map[string]string

	mu       sync.Mutex
	compiled map[string]CompiledRule
}

// AuthorizerOption configures an Authorizer.
type AuthorizerOption func(*Authorizer)

// AuthorizerWithEvaluator replaces the default expr backend.
func AuthorizerWithEvaluator(evaluator Evaluator) AuthorizerOption {
	return func(a *Authorizer) {
		if evaluator != nil {
			a.evaluator = evaluator
		}
	}
}

// AuthorizerWithLogger attaches a rule logger.
func AuthorizerWithLogger(logger RuleLogger) AuthorizerOption {
	return func(a *Authorizer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// AuthorizerWithRule adds or replaces the rule for one action name.
func AuthorizerWithRule(action, expression string) AuthorizerOption {
	return func(a *Authorizer) {
		a.exprs[action] = expression
	}
}

// AuthorizerWithRules merges a whole rule set.
func AuthorizerWithRules(rules map[string]string) AuthorizerOption {
	return func(a *Authorizer) {
		for action, expression := range rules {
			a.exprs[action] = expression
		}
	}
}

// NewAuthorizer builds an authorizer with no rules unless options supply
// them; combine with DefaultRules for the stock capability set.
func NewAuthorizer(opts ...AuthorizerOption) *Authorizer {
	a := &Authorizer{
		evaluator: NewExprEvaluator(ExprWithProgramCache(NewRuleCache())),
		logger:    noopRuleLogger{},
		exprs:     map[string]string{},
		compiled:  map[string]CompiledRule{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Authorize evaluates the rule registered for ctx.Action, if any. A rule
// must return boolean true to allow; anything else, including evaluation
// errors, denies.
func (a *Authorizer) Authorize(ctx RuleContext) error {
	expression, ok := a.exprs[ctx.Action]
	if !ok || expression == "" {
		return nil
	}

	rule, err := a.rule(expression)
	if err != nil {
		a.logger.LogRule(RuleLogEvent{Engine: a.engine(), Expr: expression, Action: ctx.Action, Err: err})
		return err
	}

	start := time.Now()
	value, err := rule.Evaluate(ctx)
	duration := time.Since(start)

	allowed := false
	if err == nil {
		var isBool bool
		allowed, isBool = value.(bool)
		if !isBool {
			err = wrapRuleError(a.engine(), expression, ctx.Action,
				fmt.Errorf("rule returned %T, want bool", value))
		}
	}

	a.logger.LogRule(RuleLogEvent{
		Engine:   a.engine(),
		Expr:     expression,
		Action:   ctx.Action,
		Allowed:  allowed,
		Duration: duration,
		Err:      err,
	})

	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: %s", ErrUnauthorized, ctx.Action)
	}
	return nil
}

func (a *Authorizer) rule(expression string) (CompiledRule, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if rule, ok := a.compiled[expression]; ok {
		return rule, nil
	}
	rule, err := a.evaluator.Compile(expression)
	if err != nil {
		return nil, err
	}
	a.compiled[expression] = rule
	return rule, nil
}

func (a *Authorizer) engine() string {
	switch a.evaluator.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		return "custom"
	}
}

// EvaluatorForEngine returns the named rule backend: "expr" (default),
// "cel", or "js" when built with the js_eval tag.
func EvaluatorForEngine(engine string, cache ProgramCache, registry *FunctionRegistry) (Evaluator, error) {
	switch engine {
	case "", "expr":
		opts := []ExprEvaluatorOption{}
		if cache != nil {
			opts = append(opts, ExprWithProgramCache(cache))
		}
		if registry != nil {
			opts = append(opts, ExprWithFunctionRegistry(registry))
		}
		return NewExprEvaluator(opts...), nil
	case "cel":
		opts := []CELEvaluatorOption{}
		if cache != nil {
			opts = append(opts, CELWithProgramCache(cache))
		}
		if registry != nil {
			opts = append(opts, CELWithFunctionRegistry(registry))
		}
		return NewCELEvaluator(opts...), nil
	case "js":
		if !jsEvaluatorAvailable() {
			return nil, fmt.Errorf("loja: js evaluator requires the js_eval build tag")
		}
		opts := []JSEvaluatorOption{}
		if cache != nil {
			opts = append(opts, JSWithProgramCache(cache))
		}
		if registry != nil {
			opts = append(opts, JSWithFunctionRegistry(registry))
		}
		return NewJSEvaluator(opts...), nil
	default:
		return nil, fmt.Errorf("loja: unknown rule engine %q", engine)
	}
}

// sessionBinding exposes the acting user to rule expressions. Password is
// deliberately withheld.
func sessionBinding(user *User) map[string]any {
	if user == nil {
		return nil
	}
	return map[string]any{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"role":   string(user.Role),
		"avatar": user.Avatar,
	}
}

// ruleArgs surfaces the payload fields rules may reason about.
func ruleArgs(action Action) map[string]any {
	switch a := action.(type) {
	case AddUser:
		return map[string]any{"email": a.Email, "role": string(a.Role)}
	case UpdateUser:
		return map[string]any{"id": a.User.ID}
	case UpdateProfile:
		return map[string]any{"id": a.User.ID}
	case DeleteUser:
		return map[string]any{"id": a.ID}
	case CreateProduct:
		return map[string]any{"title": a.Product.Title}
	case UpdateProduct:
		return map[string]any{"id": strconv.Itoa(a.Product.ID)}
	case DeleteProduct:
		return map[string]any{"id": strconv.Itoa(a.ID)}
	case CreateClient:
		return map[string]any{"email": a.Client.Email}
	case UpdateClient:
		return map[string]any{"id": strconv.Itoa(a.Client.ID)}
	case DeleteClient:
		return map[string]any{"id": strconv.Itoa(a.ID)}
	default:
		return nil
	}
}
