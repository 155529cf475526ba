// Command seed loads a small demo data set: a user, two Paris places, two
// taxis serving both and a review for each place. It does nothing when the
// demo user already exists.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/travelinfo/travel-api/internal/config"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/logger"
	"github.com/travelinfo/travel-api/internal/platform/postgres"
	"github.com/travelinfo/travel-api/internal/service/auth"
	"github.com/travelinfo/travel-api/internal/store"
)

const (
	demoEmail    = "test@example.com"
	demoPassword = "password123"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	adminEmail := flag.String("admin-email", "", "also create an ADMIN account with this email")
	adminPassword := flag.String("admin-password", "", "password for -admin-email")
	flag.Parse()

	if err := run(*configPath, *adminEmail, *adminPassword); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(configPath, adminEmail, adminPassword string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, l); err != nil {
		return err
	}

	s := &seeder{
		places:  postgres.NewPostgresPlaceStore(db, l),
		taxis:   postgres.NewPostgresTaxiStore(db, l),
		reviews: postgres.NewPostgresReviewStore(db, l),
		users:   postgres.NewPostgresUserStore(db, l),
		hasher:  auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		logger:  l,
	}

	if adminEmail != "" {
		if err := s.createUser(ctx, adminEmail, adminPassword, domain.RoleAdmin); err != nil &&
			!errors.Is(err, store.ErrEmailExists) {
			return fmt.Errorf("create admin: %w", err)
		}
	}
	return s.seed(ctx)
}

type seeder struct {
	places  store.PlaceStore
	taxis   store.TaxiStore
	reviews store.ReviewStore
	users   store.UserStore
	hasher  auth.PasswordHasher
	logger  *slog.Logger
}

func (s *seeder) createUser(ctx context.Context, email, password string, role domain.Role) error {
	if err := domain.ValidateCredentials(email, password); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	u, err := domain.NewUser(email, hash, role)
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)
	return nil
}

func (s *seeder) seed(ctx context.Context) error {
	err := s.createUser(ctx, demoEmail, demoPassword, domain.RoleUser)
	if errors.Is(err, store.ErrEmailExists) {
		s.logger.Info("demo data already present, nothing to do")
		return nil
	}
	if err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}
	user, err := s.users.GetByEmail(ctx, demoEmail)
	if err != nil {
		return err
	}

	places := []*domain.Place{
		{
			Name:        "Eiffel Tower",
			Description: ptr("Iconic iron tower in Paris"),
			Latitude:    48.8584,
			Longitude:   2.2945,
			Address:     ptr("Champ de Mars, 5 Avenue Anatole France"),
			City:        ptr("Paris"),
			Country:     ptr("France"),
			Category:    ptr("attraction"),
			ImageURL:    ptr("https://example.com/eiffel.jpg"),
			Website:     ptr("https://www.toureiffel.paris"),
			Phone:       ptr("+33144112323"),
			Email:       ptr("info@toureiffel.paris"),
		},
		{
			Name:        "Louvre Museum",
			Description: ptr("World's largest art museum"),
			Latitude:    48.8606,
			Longitude:   2.3376,
			Address:     ptr("Rue de Rivoli"),
			City:        ptr("Paris"),
			Country:     ptr("France"),
			Category:    ptr("museum"),
			ImageURL:    ptr("https://example.com/louvre.jpg"),
			Website:     ptr("https://www.louvre.fr"),
			Phone:       ptr("+33140205050"),
			Email:       ptr("info@louvre.fr"),
		},
	}
	placeIDs := make([]domain.ID, 0, len(places))
	for _, p := range places {
		if err := s.places.Create(ctx, p); err != nil {
			return fmt.Errorf("create place %q: %w", p.Name, err)
		}
		placeIDs = append(placeIDs, p.ID)
	}

	taxis := []*domain.Taxi{
		{Name: "Paris Taxi Service", Phone: "+33123456789", Company: ptr("Paris Taxi Co."), Rating: ptr(4.5), IsAvailable: true},
		{Name: "Quick Taxi", Phone: "+33198765432", Company: ptr("Quick Taxi Services"), Rating: ptr(4.2), IsAvailable: true},
	}
	for _, t := range taxis {
		if err := s.taxis.Create(ctx, t, placeIDs); err != nil {
			return fmt.Errorf("create taxi %q: %w", t.Name, err)
		}
	}

	reviews := []*domain.Review{
		{Content: "Amazing place! Must visit!", Rating: 5, Author: ptr("John Doe"), PlaceID: places[0].ID, UserID: user.ID},
		{Content: "Beautiful museum with great collections", Rating: 4, Author: ptr("Jane Smith"), PlaceID: places[1].ID, UserID: user.ID},
	}
	for _, r := range reviews {
		if err := s.reviews.Create(ctx, r); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
	}

	s.logger.Info("seed data created",
		"places", len(places),
		"taxis", len(taxis),
		"reviews", len(reviews))
	fmt.Fprintf(os.Stdout, "demo login: %s / %s\n", demoEmail, demoPassword)
	return nil
}

func ptr[T any](v T) *T { return &v }
