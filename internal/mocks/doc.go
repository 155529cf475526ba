// Package mocks provides centralized mock implementations for testing.
//
// The store mocks share one in-memory Memory so that relations (place taxis,
// place reviews, cascading deletes, foreign keys) behave like the PostgreSQL
// stores. Every mock also exposes function fields that override the default
// behaviour for a single method:
//
//	mem := mocks.NewMemory()
//	places := mem.PlaceStore()
//	places.GetByIDFn = func(ctx context.Context, id domain.ID) (*domain.Place, error) {
//	    return nil, errors.New("boom")
//	}
package mocks
