package loja

import (
	"context"
	"testing"
)

func TestCreateClientAssignsNextID(t *testing.T) {
	s := newTestStore(t)
	mustDispatch(t, s, LoadClients{Clients: []Client{{ID: 4, FirstName: "Ana"}, {ID: 9, FirstName: "Bia"}}})

	created, err := s.CreateClient(context.Background(), Client{FirstName: "Caio", Status: StatusActivated})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if created.ID != 10 {
		t.Fatalf("id = %d, want 10", created.ID)
	}
}

func TestLoadClientsSetsLoadedFlag(t *testing.T) {
	s := newTestStore(t)
	if s.ClientsLoaded() {
		t.Fatal("fresh store should not report loaded")
	}
	mustDispatch(t, s, LoadClients{Clients: []Client{{ID: 1, FirstName: "Ana"}}})
	if !s.ClientsLoaded() {
		t.Fatal("bulk load should mark the directory loaded")
	}
}

func TestUpdateAndDeleteClient(t *testing.T) {
	s := newTestStore(t)
	mustDispatch(t, s, LoadClients{Clients: []Client{
		{ID: 1, FirstName: "Ana", Status: StatusActivated},
		{ID: 2, FirstName: "Bia", Status: StatusActivated},
	}})

	mustDispatch(t, s, UpdateClient{Client: Client{ID: 2, FirstName: "Beatriz", Status: StatusDeactivated}})
	clients := s.Clients()
	if clients[1].FirstName != "Beatriz" || clients[1].Status != StatusDeactivated {
		t.Fatalf("client 2 = %+v", clients[1])
	}

	mustDispatch(t, s, DeleteClient{ID: 1})
	clients = s.Clients()
	if len(clients) != 1 || clients[0].ID != 2 {
		t.Fatalf("clients = %+v", clients)
	}
}
