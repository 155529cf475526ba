package api

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/service"
	"github.com/travelinfo/travel-api/internal/service/auth"
)

type registerInput struct {
	Email    string       `json:"email"    validate:"required,email,max=255"`
	Password string       `json:"password" validate:"required,min=8,max=72"`
	Role     *domain.Role `json:"role"     validate:"omitempty,oneof=USER ADMIN"`
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func authProcedures(users service.UserService) []Procedure {
	return []Procedure{
		NewProcedure("auth.register", Mutation, Public,
			func(ctx context.Context, caller domain.Caller, in registerInput) (*service.AuthResult, error) {
				reg := service.RegisterInput{Email: in.Email, Password: in.Password}
				if in.Role != nil {
					reg.Role = *in.Role
				}
				return users.Register(ctx, caller, reg)
			}),
		NewProcedure("auth.login", Mutation, Public,
			func(ctx context.Context, _ domain.Caller, in loginInput) (*service.AuthResult, error) {
				return users.Login(ctx, in.Email, in.Password)
			}),
		NewProcedure("auth.refreshToken", Mutation, Public,
			func(ctx context.Context, _ domain.Caller, in refreshTokenInput) (*auth.TokenPair, error) {
				return users.Refresh(ctx, in.RefreshToken)
			}),
		NewProcedure("auth.me", Query, Authenticated,
			func(ctx context.Context, caller domain.Caller, _ NoInput) (*domain.User, error) {
				who, err := RequireAuthenticated(caller)
				if err != nil {
					return nil, err
				}
				return users.Me(ctx, who)
			}),
	}
}
