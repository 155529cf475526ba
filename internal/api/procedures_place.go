package api

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/service"
)

type placeCreateInput struct {
	Name        string   `json:"name"        validate:"required,max=255"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"    validate:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude"   validate:"required,min=-180,max=180"`
	Address     *string  `json:"address"     validate:"omitempty,max=255"`
	City        *string  `json:"city"        validate:"omitempty,max=120"`
	Country     *string  `json:"country"     validate:"omitempty,max=120"`
	Category    *string  `json:"category"    validate:"omitempty,max=64"`
	ImageURL    *string  `json:"imageUrl"    validate:"omitempty,url"`
	Website     *string  `json:"website"     validate:"omitempty,url"`
	Phone       *string  `json:"phone"       validate:"omitempty,max=32"`
	Email       *string  `json:"email"       validate:"omitempty,email"`
}

func (in placeCreateInput) place() *domain.Place {
	return &domain.Place{
		Name:        in.Name,
		Description: in.Description,
		Latitude:    *in.Latitude,
		Longitude:   *in.Longitude,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Website:     in.Website,
		Phone:       in.Phone,
		Email:       in.Email,
	}
}

type placePatchInput struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"    validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude"   validate:"omitempty,min=-180,max=180"`
	Address     *string  `json:"address"     validate:"omitempty,max=255"`
	City        *string  `json:"city"        validate:"omitempty,max=120"`
	Country     *string  `json:"country"     validate:"omitempty,max=120"`
	Category    *string  `json:"category"    validate:"omitempty,max=64"`
	ImageURL    *string  `json:"imageUrl"    validate:"omitempty,url"`
	Website     *string  `json:"website"     validate:"omitempty,url"`
	Phone       *string  `json:"phone"       validate:"omitempty,max=32"`
	Email       *string  `json:"email"       validate:"omitempty,email"`
}

type placeUpdateInput struct {
	ID   domain.ID       `json:"id"   validate:"required"`
	Data placePatchInput `json:"data"`
}

func (in placePatchInput) patch() domain.PlacePatch {
	return domain.PlacePatch{
		Name:        in.Name,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Website:     in.Website,
		Phone:       in.Phone,
		Email:       in.Email,
	}
}

type placeSearchInput struct {
	Query    string  `json:"query"    validate:"max=255"`
	Category *string `json:"category" validate:"omitempty,max=64"`
}

func placeProcedures(places service.PlaceService) []Procedure {
	admin := Role(domain.RoleAdmin)

	return []Procedure{
		NewProcedure("place.list", Query, Public,
			func(ctx context.Context, _ domain.Caller, _ NoInput) ([]domain.Place, error) {
				return places.List(ctx)
			}),
		NewProcedure("place.getById", Query, Public,
			func(ctx context.Context, _ domain.Caller, id domain.ID) (*domain.Place, error) {
				return places.GetByID(ctx, id)
			}),
		NewProcedure("place.create", Mutation, admin,
			func(ctx context.Context, _ domain.Caller, in placeCreateInput) (*domain.Place, error) {
				return places.Create(ctx, in.place())
			}),
		NewProcedure("place.update", Mutation, admin,
			func(ctx context.Context, _ domain.Caller, in placeUpdateInput) (*domain.Place, error) {
				return places.Update(ctx, in.ID, in.Data.patch())
			}),
		NewProcedure("place.delete", Mutation, admin,
			func(ctx context.Context, _ domain.Caller, id domain.ID) (DeleteResult, error) {
				if err := places.Delete(ctx, id); err != nil {
					return DeleteResult{}, err
				}
				return DeleteResult{ID: id, Deleted: true}, nil
			}),
		NewProcedure("place.search", Query, Public,
			func(ctx context.Context, _ domain.Caller, in placeSearchInput) ([]domain.Place, error) {
				return places.Search(ctx, domain.PlaceFilter{Query: in.Query, Category: in.Category})
			}),
	}
}
