package loja

import "sync"

// ProgramCache stores compiled rule programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// RuleCache is the default mutex-guarded ProgramCache.
type RuleCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

// NewRuleCache constructs an empty cache.
func NewRuleCache() *RuleCache {
	return &RuleCache{programs: map[string]any{}}
}

// Get implements ProgramCache.
func (c *RuleCache) Get(key string) (any, bool) {
	c.mu.RLock()
	value, ok := c.programs[key]
	c.mu.RUnlock()
	return value, ok
}

// Set implements ProgramCache.
func (c *RuleCache) Set(key string, value any) {
	c.mu.Lock()
	c.programs[key] = value
	c.mu.Unlock()
}
