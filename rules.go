package loja

import "time"

// RuleContext carries the bindings a capability rule evaluates against.
type RuleContext struct {
	// Session is the acting user as a plain map ({id, name, email, role,
	// avatar}) or nil when nobody is logged in. Passwords never enter the
	// rule environment.
	Session map[string]any
	// Action is the routing key of the dispatched action.
	Action string
	// Args carries the action payload fields relevant to authorization,
	// mostly entity ids.
	Args map[string]any
	// Metadata is embedder-supplied extra context.
	Metadata map[string]any
	// Now pins evaluation time; defaults to time.Now.
	Now *time.Time
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

// bindings is the shared variable set every evaluator backend exposes to
// rule expressions. Session stays nil when absent so rules can test
// `session != nil` before dereferencing.
func (ctx RuleContext) bindings() map[string]any {
	env := map[string]any{
		"now":      ctx.timestamp(),
		"action":   ctx.Action,
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
	if ctx.Session != nil {
		env["session"] = ctx.Session
	} else {
		env["session"] = nil
	}
	return env
}

// Evaluator executes capability expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}
