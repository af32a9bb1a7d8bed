package loja

import (
	"context"
	"strings"
)

// ProductsState holds the catalog plus the live title filter. Loaded
// flags that the one-shot feed bulk load already ran.
type ProductsState struct {
	Items  []Product `json:"items"`
	Loaded bool      `json:"loaded"`
	Query  string    `json:"query"`
}

func defaultProductsState() ProductsState {
	return ProductsState{}
}

// LoadProducts replaces the catalog wholesale and marks it loaded.
// Intended to run at most once; callers guard with ProductsLoaded before
// fetching from the feed. Replaying the same payload is idempotent.
type LoadProducts struct {
	Products []Product
}

// Name implements Action.
func (LoadProducts) Name() string { return "products/bulkLoad" }

// CreateProduct appends a catalog entry; any id on the payload is
// discarded and reassigned as max(existing)+1.
type CreateProduct struct {
	Product Product
}

// Name implements Action.
func (CreateProduct) Name() string { return "products/create" }

// UpdateProduct replaces the entry matching Product.ID; unknown ids are
// no-ops.
type UpdateProduct struct {
	Product Product
}

// Name implements Action.
func (UpdateProduct) Name() string { return "products/update" }

// DeleteProduct removes the entry. Cart snapshots referencing it are
// intentionally left alone.
type DeleteProduct struct {
	ID int
}

// Name implements Action.
func (DeleteProduct) Name() string { return "products/delete" }

// SetProductQuery updates the live filter string consumed by
// VisibleProducts.
type SetProductQuery struct {
	Query string
}

// Name implements Action.
func (SetProductQuery) Name() string { return "products/setQuery" }

func reduceProducts(st ProductsState, action Action) (ProductsState, any, bool, error) {
	switch a := action.(type) {
	case LoadProducts:
		st.Items = append([]Product(nil), a.Products...)
		st.Loaded = true
		return st, nil, true, nil
	case CreateProduct:
		p := a.Product
		p.ID = nextProductID(st.Items)
		st.Items = append(append([]Product(nil), st.Items...), p)
		return st, p, true, nil
	case UpdateProduct:
		for i, p := range st.Items {
			if p.ID == a.Product.ID {
				items := append([]Product(nil), st.Items...)
				items[i] = a.Product
				st.Items = items
				break
			}
		}
		return st, nil, true, nil
	case DeleteProduct:
		items := make([]Product, 0, len(st.Items))
		for _, p := range st.Items {
			if p.ID != a.ID {
				items = append(items, p)
			}
		}
		st.Items = items
		return st, nil, true, nil
	case SetProductQuery:
		st.Query = a.Query
		return st, nil, true, nil
	}
	return st, nil, false, nil
}

// CreateProduct dispatches a catalog insert and returns the entry with
// its assigned id.
func (s *Store) CreateProduct(ctx context.Context, p Product) (Product, error) {
	res, err := s.do(ctx, CreateProduct{Product: p})
	if err != nil {
		return Product{}, err
	}
	created, _ := res.(Product)
	return created, nil
}

func nextProductID(items []Product) int {
	next := 1
	for _, p := range items {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// Products returns a copy of the full catalog.
func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Product(nil), s.state.Products.Items...)
}

// ProductsLoaded reports whether the feed bulk load already ran. Used as
// the caller-side guard against repeat fetches.
func (s *Store) ProductsLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Products.Loaded || len(s.state.Products.Items) > 0
}

// ProductByID looks a catalog entry up by id.
func (s *Store) ProductByID(id int) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Products.Items {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// VisibleProducts derives the filtered catalog view: case-insensitive
// substring match of the trimmed query against titles only.
func (s *Store) VisibleProducts() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	query := strings.ToLower(strings.TrimSpace(s.state.Products.Query))
	if query == "" {
		return append([]Product(nil), s.state.Products.Items...)
	}
	var out []Product
	for _, p := range s.state.Products.Items {
		if strings.Contains(strings.ToLower(p.Title), query) {
			out = append(out, p)
		}
	}
	return out
}
