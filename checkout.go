package loja

import (
	"context"
	"time"
)

// CheckoutCart converts the cart into an order as one composite
// transition: the order append and the cart clear happen inside a single
// dispatch, so no reader and no persisted snapshot can observe the order
// without the emptied cart.
//
// Requires an active session and a non-empty cart; rejected with
// ErrNoSession / ErrCartEmpty otherwise, leaving both slices untouched.
type CheckoutCart struct{}

// Name implements Action.
func (CheckoutCart) Name() string { return "cart/checkout" }

func applyCheckout(st State, now func() time.Time, newID func() string) (State, Order, error) {
	if st.Auth.CurrentUser == nil {
		return st, Order{}, ErrNoSession
	}
	if len(st.Cart.Items) == 0 {
		return st, Order{}, ErrCartEmpty
	}

	items := make([]OrderItem, 0, len(st.Cart.Items))
	for _, it := range st.Cart.Items {
		items = append(items, OrderItem{
			ID:    it.ID,
			Title: it.Title,
			Price: it.Price,
			Qty:   it.Qty,
			Image: it.Image,
		})
	}
	order := Order{
		ID:        newID(),
		UserID:    st.Auth.CurrentUser.ID,
		CreatedAt: now().Format(time.RFC3339),
		Total:     cartTotal(st.Cart.Items),
		Items:     items,
	}

	st.Orders.Items = append(append([]Order(nil), st.Orders.Items...), order)
	st.Cart.Items = nil
	return st, order, nil
}

// Checkout dispatches the composite checkout transition and returns the
// created order.
func (s *Store) Checkout(ctx context.Context) (Order, error) {
	res, err := s.do(ctx, CheckoutCart{})
	if err != nil {
		return Order{}, err
	}
	order, _ := res.(Order)
	return order, nil
}
