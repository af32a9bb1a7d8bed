package loja

// CartState maps product ids to denormalized snapshots. Slice order is
// insertion order, kept only for display.
type CartState struct {
	Items []CartItem `json:"items"`
}

func defaultCartState() CartState {
	return CartState{}
}

// AddToCart snapshots the product's title/price/image at call time and
// either appends a new entry or increments the existing one. Qty values
// below 1 are treated as 1.
type AddToCart struct {
	Product Product
	Qty     int
}

// Name implements Action.
func (AddToCart) Name() string { return "cart/add" }

// IncrementCartItem bumps qty by one. Unknown ids are no-ops.
type IncrementCartItem struct {
	ID int
}

// Name implements Action.
func (IncrementCartItem) Name() string { return "cart/increment" }

// DecrementCartItem drops qty by one and removes the entry when it would
// reach zero; no zero or negative quantities ever persist.
type DecrementCartItem struct {
	ID int
}

// Name implements Action.
func (DecrementCartItem) Name() string { return "cart/decrement" }

// RemoveCartItem removes the entry regardless of qty.
type RemoveCartItem struct {
	ID int
}

// Name implements Action.
func (RemoveCartItem) Name() string { return "cart/remove" }

// ClearCart empties the cart.
type ClearCart struct{}

// Name implements Action.
func (ClearCart) Name() string { return "cart/clear" }

func reduceCart(st CartState, action Action) (CartState, bool, error) {
	switch a := action.(type) {
	case AddToCart:
		qty := a.Qty
		if qty < 1 {
			qty = 1
		}
		items := append([]CartItem(nil), st.Items...)
		for i, it := range items {
			if it.ID == a.Product.ID {
				items[i].Qty += qty
				st.Items = items
				return st, true, nil
			}
		}
		st.Items = append(items, CartItem{
			ID:    a.Product.ID,
			Title: a.Product.Title,
			Price: a.Product.Price,
			Image: a.Product.Image,
			Qty:   qty,
		})
		return st, true, nil
	case IncrementCartItem:
		items := append([]CartItem(nil), st.Items...)
		for i, it := range items {
			if it.ID == a.ID {
				items[i].Qty++
				break
			}
		}
		st.Items = items
		return st, true, nil
	case DecrementCartItem:
		items := make([]CartItem, 0, len(st.Items))
		for _, it := range st.Items {
			if it.ID == a.ID {
				it.Qty--
				if it.Qty < 1 {
					continue
				}
			}
			items = append(items, it)
		}
		st.Items = items
		return st, true, nil
	case RemoveCartItem:
		items := make([]CartItem, 0, len(st.Items))
		for _, it := range st.Items {
			if it.ID != a.ID {
				items = append(items, it)
			}
		}
		st.Items = items
		return st, true, nil
	case ClearCart:
		st.Items = nil
		return st, true, nil
	}
	return st, false, nil
}

func cartTotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}
	return total
}

// CartItems returns a copy of the cart contents in insertion order.
func (s *Store) CartItems() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartItem(nil), s.state.Cart.Items...)
}

// CartTotal derives the summed price*qty over the cart.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotal(s.state.Cart.Items)
}

// CartCount derives the summed quantity over the cart.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, it := range s.state.Cart.Items {
		count += it.Qty
	}
	return count
}
