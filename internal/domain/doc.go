// Package domain contains the core business entities of the travel service
// (places, taxis, reviews and users), the caller identity model used by the
// request pipeline, and the validation rules shared by every layer.
package domain
