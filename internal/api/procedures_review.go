package api

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/service"
)

// reviewCreateInput has no userId: the author is always the caller.
type reviewCreateInput struct {
	Content string    `json:"content" validate:"required"`
	Rating  *int      `json:"rating"  validate:"required,min=1,max=5"`
	Author  *string   `json:"author"  validate:"omitempty,max=255"`
	PlaceID domain.ID `json:"placeId" validate:"required"`
}

type reviewPatchInput struct {
	Content *string    `json:"content" validate:"omitempty,min=1"`
	Rating  *int       `json:"rating"  validate:"omitempty,min=1,max=5"`
	Author  *string    `json:"author"  validate:"omitempty,max=255"`
	PlaceID *domain.ID `json:"placeId"`
}

type reviewUpdateInput struct {
	ID   domain.ID        `json:"id"   validate:"required"`
	Data reviewPatchInput `json:"data"`
}

type averageRatingInput struct {
	PlaceID domain.ID `json:"placeId" validate:"required"`
}

func reviewProcedures(reviews service.ReviewService) []Procedure {
	return []Procedure{
		NewProcedure("review.list", Query, Public,
			func(ctx context.Context, _ domain.Caller, _ NoInput) ([]domain.Review, error) {
				return reviews.List(ctx)
			}),
		NewProcedure("review.getById", Query, Public,
			func(ctx context.Context, _ domain.Caller, id domain.ID) (*domain.Review, error) {
				return reviews.GetByID(ctx, id)
			}),
		NewProcedure("review.create", Mutation, Authenticated,
			func(ctx context.Context, caller domain.Caller, in reviewCreateInput) (*domain.Review, error) {
				who, err := RequireAuthenticated(caller)
				if err != nil {
					return nil, err
				}
				return reviews.Create(ctx, who, &domain.Review{
					Content: in.Content,
					Rating:  *in.Rating,
					Author:  in.Author,
					PlaceID: in.PlaceID,
				})
			}),
		NewProcedure("review.update", Mutation, Authenticated,
			func(ctx context.Context, caller domain.Caller, in reviewUpdateInput) (*domain.Review, error) {
				who, err := RequireAuthenticated(caller)
				if err != nil {
					return nil, err
				}
				return reviews.Update(ctx, who, in.ID, domain.ReviewPatch{
					Content: in.Data.Content,
					Rating:  in.Data.Rating,
					Author:  in.Data.Author,
					PlaceID: in.Data.PlaceID,
				})
			}),
		NewProcedure("review.delete", Mutation, Authenticated,
			func(ctx context.Context, caller domain.Caller, id domain.ID) (DeleteResult, error) {
				who, err := RequireAuthenticated(caller)
				if err != nil {
					return DeleteResult{}, err
				}
				if err := reviews.Delete(ctx, who, id); err != nil {
					return DeleteResult{}, err
				}
				return DeleteResult{ID: id, Deleted: true}, nil
			}),
		NewProcedure("review.byPlace", Query, Public,
			func(ctx context.Context, _ domain.Caller, placeID domain.ID) ([]domain.Review, error) {
				return reviews.ByPlace(ctx, placeID)
			}),
		NewProcedure("review.averageRating", Query, Public,
			func(ctx context.Context, _ domain.Caller, in averageRatingInput) (domain.RatingSummary, error) {
				return reviews.AverageRating(ctx, in.PlaceID)
			}),
	}
}
