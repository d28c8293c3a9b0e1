// Command bootstrap provisions a pharmacy tenant with its first admin
// user. Run once against a migrated database before pointing a POS
// frontend at the API.
// Usage: go run ./cmd/bootstrap -name "Sharma Medicos" -slug sharma-medicos \
//   -state 27 -email owner@example.com -password <pw>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"rxbill/internal/config"
	"rxbill/internal/domain"
	"rxbill/internal/repository/postgres"
	"rxbill/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	name := flag.String("name", "", "pharmacy display name")
	slug := flag.String("slug", "", "pharmacy slug (login scope)")
	state := flag.String("state", "", "2-digit GST state code")
	email := flag.String("email", "", "admin user email")
	password := flag.String("password", "", "admin user password")
	fullName := flag.String("full-name", "Administrator", "admin user full name")
	flag.Parse()

	if *name == "" || *slug == "" || *state == "" || *email == "" || *password == "" {
		flag.Usage()
		return fmt.Errorf("name, slug, state, email, and password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	pharmacySvc := service.NewPharmacyService(postgres.NewPharmacyRepo(db))
	userSvc := service.NewUserService(postgres.NewUserRepo(db))

	ctx := context.Background()
	pharmacy, err := pharmacySvc.Create(ctx, service.CreatePharmacyInput{
		Name:      *name,
		Slug:      *slug,
		StateCode: *state,
	})
	if err != nil {
		return fmt.Errorf("create pharmacy: %w", err)
	}
	log.Printf("created pharmacy %s (%s)", pharmacy.Slug, pharmacy.ID)

	user, err := userSvc.Create(ctx, pharmacy.ID, service.CreateUserInput{
		Email:    *email,
		Password: *password,
		FullName: *fullName,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("created admin user %s (%s)", user.Email, user.ID)
	return nil
}
