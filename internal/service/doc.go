// Package service contains the application use cases for places, taxis,
// reviews and user accounts. Services orchestrate the store interfaces from
// internal/store and never depend on a concrete database implementation.
//
// Services receive their collaborators through constructor injection and
// return store and domain sentinel errors (wrapped with context) so the API
// layer can translate them with errors.Is/errors.As.
package service
