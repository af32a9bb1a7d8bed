package loja

// OrdersState is append-only: AddOrder is the only mutation, there is no
// update or delete, and orders deliberately outlive the user that placed
// them.
type OrdersState struct {
	Items []Order `json:"items"`
}

func defaultOrdersState() OrdersState {
	return OrdersState{}
}

// AddOrder appends a new order with a fresh random id. Items are frozen
// copies; callers normally reach this through Checkout rather than
// dispatching it directly.
type AddOrder struct {
	UserID    string
	CreatedAt string
	Total     float64
	Items     []OrderItem
}

// Name implements Action.
func (AddOrder) Name() string { return "orders/add" }

func reduceOrders(st OrdersState, action Action, newID func() string) (OrdersState, any, bool, error) {
	switch a := action.(type) {
	case AddOrder:
		order := Order{
			ID:        newID(),
			UserID:    a.UserID,
			CreatedAt: a.CreatedAt,
			Total:     a.Total,
			Items:     append([]OrderItem(nil), a.Items...),
		}
		st.Items = append(append([]Order(nil), st.Items...), order)
		return st, order, true, nil
	}
	return st, nil, false, nil
}

// Orders returns a copy of every recorded order.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrders(s.state.Orders.Items)
}

// OrdersByUser returns the orders placed by userID, oldest first.
func (s *Store) OrdersByUser(userID string) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Order
	for _, o := range s.state.Orders.Items {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

func cloneOrders(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, cloneOrder(o))
	}
	return out
}

func cloneOrder(o Order) Order {
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}
