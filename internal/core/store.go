package core

import (
	"context"

	"github.com/aluiggi96/Doc-MYPE/internal/store"
)

// Collection names, combined with the namespace into slot keys.
const (
	CollectionDocuments      = "documents"
	CollectionClients        = "clients"
	CollectionProducts       = "products"
	CollectionSustainability = "sustainabilityData"
)

// Store is the shared application state. One Store is created per process and
// injected by reference into every service, so all consumers see the same slots.
type Store struct {
	Documents      *store.Slot[DocumentList]
	Clients        *store.Slot[[]Client]
	Products       *store.Slot[[]Product]
	Sustainability *store.Slot[[]SustainabilityEntry]
}

// OpenStore loads every collection from backend. Absent or unreadable
// collections start empty.
func OpenStore(ctx context.Context, backend store.Backend, namespace string) *Store {
	return &Store{
		Documents:      store.Open(ctx, backend, store.Key(namespace, CollectionDocuments), DocumentList{}),
		Clients:        store.Open(ctx, backend, store.Key(namespace, CollectionClients), []Client{}),
		Products:       store.Open(ctx, backend, store.Key(namespace, CollectionProducts), []Product{}),
		Sustainability: store.Open(ctx, backend, store.Key(namespace, CollectionSustainability), []SustainabilityEntry{}),
	}
}
