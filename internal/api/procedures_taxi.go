package api

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/service"
)

// placeConnectInput accepts {"connect": [{"id": 1}, 2, "3"]}.
type placeConnectInput struct {
	Connect []domain.ID `json:"connect"`
}

type taxiCreateInput struct {
	Name        string             `json:"name"        validate:"required,max=255"`
	Phone       string             `json:"phone"       validate:"required,max=32"`
	Company     *string            `json:"company"     validate:"omitempty,max=255"`
	IsAvailable *bool              `json:"isAvailable"`
	Rating      *float64           `json:"rating"      validate:"omitempty,min=0,max=5"`
	Places      *placeConnectInput `json:"places"`
}

func (in taxiCreateInput) taxi() *domain.Taxi {
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	return &domain.Taxi{
		Name:        in.Name,
		Phone:       in.Phone,
		Company:     in.Company,
		IsAvailable: available,
		Rating:      in.Rating,
	}
}

type taxiPatchInput struct {
	Name        *string            `json:"name"        validate:"omitempty,min=1,max=255"`
	Phone       *string            `json:"phone"       validate:"omitempty,min=1,max=32"`
	Company     *string            `json:"company"     validate:"omitempty,max=255"`
	IsAvailable *bool              `json:"isAvailable"`
	Rating      *float64           `json:"rating"      validate:"omitempty,min=0,max=5"`
	Places      *placeConnectInput `json:"places"`
}

type taxiUpdateInput struct {
	ID   domain.ID      `json:"id"   validate:"required"`
	Data taxiPatchInput `json:"data"`
}

func (in taxiPatchInput) patch() domain.TaxiPatch {
	return domain.TaxiPatch{
		Name:            in.Name,
		Phone:           in.Phone,
		Company:         in.Company,
		IsAvailable:     in.IsAvailable,
		Rating:          in.Rating,
		ConnectPlaceIDs: connectIDs(in.Places),
	}
}

type taxiSearchInput struct {
	Query     string `json:"query" validate:"max=255"`
	Available *bool  `json:"available"`
}

func connectIDs(p *placeConnectInput) []domain.ID {
	if p == nil {
		return nil
	}
	return p.Connect
}

func taxiProcedures(taxis service.TaxiService) []Procedure {
	admin := Role(domain.RoleAdmin)

	return []Procedure{
		NewProcedure("taxi.list", Query, Public,
			func(ctx context.Context, _ domain.Caller, _ NoInput) ([]domain.Taxi, error) {
				return taxis.List(ctx)
			}),
		NewProcedure("taxi.getById", Query, Public,
			func(ctx context.Context, _ domain.Caller, id domain.ID) (*domain.Taxi, error) {
				return taxis.GetByID(ctx, id)
			}),
		NewProcedure("taxi.create", Mutation, admin,
			func(ctx context.Context, _ domain.Caller, in taxiCreateInput) (*domain.Taxi, error) {
				return taxis.Create(ctx, in.taxi(), connectIDs(in.Places))
			}),
		NewProcedure("taxi.update", Mutation, admin,
			func(ctx context.Context, _ domain.Caller, in taxiUpdateInput) (*domain.Taxi, error) {
				return taxis.Update(ctx, in.ID, in.Data.patch())
			}),
		NewProcedure("taxi.delete", Mutation, admin,
			func(ctx context.Context, _ domain.Caller, id domain.ID) (DeleteResult, error) {
				if err := taxis.Delete(ctx, id); err != nil {
					return DeleteResult{}, err
				}
				return DeleteResult{ID: id, Deleted: true}, nil
			}),
		NewProcedure("taxi.search", Query, Public,
			func(ctx context.Context, _ domain.Caller, in taxiSearchInput) ([]domain.Taxi, error) {
				return taxis.Search(ctx, domain.TaxiFilter{Query: in.Query, Available: in.Available})
			}),
		NewProcedure("taxi.byPlace", Query, Public,
			func(ctx context.Context, _ domain.Caller, placeID domain.ID) ([]domain.Taxi, error) {
				return taxis.ByPlace(ctx, placeID)
			}),
	}
}
