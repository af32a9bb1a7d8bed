package loja

import "context"

// ClientsState mirrors ProductsState for the contact directory: Loaded
// prevents repeat fetches from the external directory feed.
type ClientsState struct {
	Items  []Client `json:"items"`
	Loaded bool     `json:"loaded"`
}

func defaultClientsState() ClientsState {
	return ClientsState{}
}

// LoadClients replaces the directory wholesale and stamps the loaded
// flag.
type LoadClients struct {
	Clients []Client
}

// Name implements Action.
func (LoadClients) Name() string { return "clients/bulkLoad" }

// CreateClient appends a record; any id on the payload is discarded and
// reassigned as max(existing)+1.
type CreateClient struct {
	Client Client
}

// Name implements Action.
func (CreateClient) Name() string { return "clients/create" }

// UpdateClient replaces the record matching Client.ID; unknown ids are
// no-ops.
type UpdateClient struct {
	Client Client
}

// Name implements Action.
func (UpdateClient) Name() string { return "clients/update" }

// DeleteClient removes the record.
type DeleteClient struct {
	ID int
}

// Name implements Action.
func (DeleteClient) Name() string { return "clients/delete" }

func reduceClients(st ClientsState, action Action) (ClientsState, any, bool, error) {
	switch a := action.(type) {
	case LoadClients:
		st.Items = append([]Client(nil), a.Clients...)
		st.Loaded = true
		return st, nil, true, nil
	case CreateClient:
		c := a.Client
		c.ID = nextClientID(st.Items)
		st.Items = append(append([]Client(nil), st.Items...), c)
		return st, c, true, nil
	case UpdateClient:
		for i, c := range st.Items {
			if c.ID == a.Client.ID {
				items := append([]Client(nil), st.Items...)
				items[i] = a.Client
				st.Items = items
				break
			}
		}
		return st, nil, true, nil
	case DeleteClient:
		items := make([]Client, 0, len(st.Items))
		for _, c := range st.Items {
			if c.ID != a.ID {
				items = append(items, c)
			}
		}
		st.Items = items
		return st, nil, true, nil
	}
	return st, nil, false, nil
}

// CreateClient dispatches a directory insert and returns the record with
// its assigned id.
func (s *Store) CreateClient(ctx context.Context, c Client) (Client, error) {
	res, err := s.do(ctx, CreateClient{Client: c})
	if err != nil {
		return Client{}, err
	}
	created, _ := res.(Client)
	return created, nil
}

func nextClientID(items []Client) int {
	next := 1
	for _, c := range items {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	return next
}

// Clients returns a copy of the directory.
func (s *Store) Clients() []Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Client(nil), s.state.Clients.Items...)
}

// ClientsLoaded reports whether the directory feed already ran.
func (s *Store) ClientsLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clients.Loaded || len(s.state.Clients.Items) > 0
}
