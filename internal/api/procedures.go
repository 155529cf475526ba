package api

import (
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/service"
)

// Services are the use cases the procedures call.
type Services struct {
	Places  service.PlaceService
	Taxis   service.TaxiService
	Reviews service.ReviewService
	Users   service.UserService
}

// NoInput is the input of procedures that take none.
type NoInput struct{}

// DeleteResult is returned by every delete procedure.
type DeleteResult struct {
	ID      domain.ID `json:"id"`
	Deleted bool      `json:"deleted"`
}

// RegisterAll registers every procedure plus the legacy names older clients use.
func RegisterAll(rt *Router, svc Services) {
	rt.Register(placeProcedures(svc.Places)...)
	rt.Register(taxiProcedures(svc.Taxis)...)
	rt.Register(reviewProcedures(svc.Reviews)...)
	rt.Register(authProcedures(svc.Users)...)

	rt.Alias("place.getAll", "place.list")
	rt.Alias("taxi.getAll", "taxi.list")
	rt.Alias("taxi.getByPlace", "taxi.byPlace")
	rt.Alias("review.getAll", "review.list")
	rt.Alias("review.getByPlace", "review.byPlace")
	rt.Alias("review.getAverageRating", "review.averageRating")
	rt.Alias("auth.validateToken", "auth.me")
}
