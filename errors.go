package loja

import "errors"

var (
	// ErrNotFound indicates a lookup by id or email found no match.
	ErrNotFound = errors.New("loja: not found")

	// ErrInvalidCredentials indicates the email matched but the password
	// did not. Comparison is exact, case-sensitive.
	ErrInvalidCredentials = errors.New("loja: invalid credentials")

	// ErrUnauthorized indicates the dispatch boundary denied an action.
	ErrUnauthorized = errors.New("loja: unauthorized")

	// ErrNoSession indicates an operation requiring a logged-in user ran
	// without one.
	ErrNoSession = errors.New("loja: no active session")

	// ErrCartEmpty indicates checkout was attempted on an empty cart.
	ErrCartEmpty = errors.New("loja: cart is empty")

	// ErrUnknownAction indicates no slice reducer claimed the action.
	ErrUnknownAction = errors.New("loja: unknown action")
)
