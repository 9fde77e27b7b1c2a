// Package firestore implements the installation store over Google Cloud
// Firestore: one document per workspace in a dedicated collection, document id
// equal to the storage key.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dropDatabas3/crewmate/internal/install"
	"github.com/dropDatabas3/crewmate/internal/store"
)

// document es el layout persistido: {id, installation}, igual que el resto de
// los consumidores de la colección.
type document struct {
	ID           string                `firestore:"id"`
	Installation *install.Installation `firestore:"installation"`
}

type Store struct {
	client *firestore.Client
	coll   string
}

// New conecta a Firestore. collection default: slack_installations.
func New(ctx context.Context, projectID, collection string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore: project id is required")
	}
	if collection == "" {
		collection = "slack_installations"
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore: connect: %w", err)
	}
	return &Store{client: client, coll: collection}, nil
}

func (s *Store) StoreInstallation(ctx context.Context, inst *install.Installation) error {
	key, ok := inst.Key()
	if !ok {
		return store.ErrMissingIdentity
	}
	// Set sin precondición = upsert last-write-wins sobre el doc completo.
	_, err := s.client.Collection(s.coll).Doc(key).Set(ctx, document{ID: key, Installation: inst})
	if err != nil {
		return fmt.Errorf("firestore: store installation %q: %w", key, err)
	}
	return nil
}

func (s *Store) FetchInstallation(ctx context.Context, q store.Query) (*install.Installation, error) {
	key, ok := q.Key()
	if !ok {
		return nil, store.ErrMissingIdentity
	}
	snap, err := s.client.Collection(s.coll).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("firestore: fetch installation %q: %w", key, err)
	}
	var doc document
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore: decode installation %q: %w", key, err)
	}
	if doc.Installation == nil {
		return nil, store.ErrNotFound
	}
	return doc.Installation, nil
}

func (s *Store) DeleteInstallation(ctx context.Context, q store.Query) error {
	key, ok := q.Key()
	if !ok {
		return store.ErrMissingIdentity
	}
	// Delete de un doc ausente no falla en Firestore.
	if _, err := s.client.Collection(s.coll).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("firestore: delete installation %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return s.client.Close() }
