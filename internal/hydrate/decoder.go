// Package hydrate converts untyped JSON read back from storage into the
// strongly typed slice states, with hooks for normalizing what the
// documents cannot guarantee.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Context carries the storage key a payload came from, for error messages.
type Context struct {
	Key string
}

// PreHook lets callers normalize the raw object before decoding.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook lets callers repair or validate the hydrated value after
// decoding.
type PostHook[T any] func(Context, *T) error

// DecoderOption configures a Decoder instance.
type DecoderOption[T any] func(*Decoder[T])

// Decoder turns stored JSON documents into typed slice states.
type Decoder[T any] struct {
	preHooks     []PreHook
	postHooks    []PostHook[T]
	configureDec []func(*json.Decoder)
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithDecoderConfig exposes the underlying json.Decoder for callers that
// need UseNumber, DisallowUnknownFields, and friends.
func WithDecoderConfig[T any](configure func(*json.Decoder)) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if configure != nil {
			d.configureDec = append(d.configureDec, configure)
		}
	}
}

// NewDecoder constructs a decoder with the supplied options.
func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts payload into T, applying pre hooks on the raw object
// and post hooks on the result. Any failure returns the zero value and an
// error; callers treat that as "absent" and fall back to defaults.
func (d *Decoder[T]) Decode(ctx Context, payload []byte) (T, error) {
	var zero T

	if len(payload) == 0 {
		return zero, fmt.Errorf("hydrate: empty payload for key %q", ctx.Key)
	}

	current := payload
	if len(d.preHooks) > 0 {
		var object map[string]any
		if err := json.Unmarshal(payload, &object); err != nil {
			return zero, fmt.Errorf("hydrate: parse key %q: %w", ctx.Key, err)
		}
		for _, hook := range d.preHooks {
			if hook == nil {
				continue
			}
			next, err := hook(ctx, object)
			if err != nil {
				return zero, fmt.Errorf("hydrate: pre-hook for key %q failed: %w", ctx.Key, err)
			}
			if next != nil {
				object = next
			}
		}
		remarshaled, err := json.Marshal(object)
		if err != nil {
			return zero, fmt.Errorf("hydrate: remarshal key %q: %w", ctx.Key, err)
		}
		current = remarshaled
	}

	var result T
	decoder := json.NewDecoder(bytes.NewReader(current))
	for _, configure := range d.configureDec {
		configure(decoder)
	}
	if err := decoder.Decode(&result); err != nil {
		return zero, fmt.Errorf("hydrate: decode key %q: %w", ctx.Key, err)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &result); err != nil {
			return zero, fmt.Errorf("hydrate: post-hook for key %q failed: %w", ctx.Key, err)
		}
	}

	return result, nil
}
