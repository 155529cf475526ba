package postgres

import (
	"context"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/logger"
	"github.com/travelinfo/travel-api/internal/store"
)

const usersTable = "users"

var userColumns = []any{"id", "email", "password_hash", "role", "created_at"}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return err
	}

	ds := dialect.Insert(usersTable).Prepared(true).
		Rows(goqu.Record{
			"email":         user.Email,
			"password_hash": user.HashedPassword,
			"role":          string(user.Role),
		}).
		Returning("id", "created_at")

	query, args, err := ds.ToSQL()
	if err != nil {
		return store.NewStoreError("user", "create", "failed to build query", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered")
			return store.ErrEmailExists
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("user created", slog.Int64("user_id", int64(user.ID)), slog.String("role", string(user.Role)))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return s.getBy(ctx, goqu.C("id").Eq(id))
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getBy(ctx, goqu.C("email").Eq(domain.NormalizeEmail(email)))
}

func (s *PostgresUserStore) getBy(ctx context.Context, cond goqu.Expression) (*domain.User, error) {
	ds := dialect.From(usersTable).Prepared(true).Select(userColumns...).Where(cond)
	u, err := queryRow(ctx, s.db, ds, scanUser, store.ErrUserNotFound)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return &u, nil
}
