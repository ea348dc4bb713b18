// Seed creates a demo salon with staff, weekly schedules and services, and
// prints an admin token for the dashboard endpoints. Handy for local
// development against the sqlite fallback:
//
//	go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"salonbook/internal/config"
	"salonbook/internal/database"
	"salonbook/internal/domain"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "salonbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("database connect failed: ", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	ctx := context.Background()
	salons := repository.NewSalonRepository(db)
	services := repository.NewServiceRepository(db)
	staff := repository.NewStaffRepository(db)

	salon := &domain.Salon{
		ID:           uuid.NewString(),
		Slug:         "demo",
		Name:         "Demo Salon",
		Email:        "hello@demo-salon.example",
		Phone:        "+31 20 123 4567",
		Timezone:     "Europe/Amsterdam",
		PaymentMode:  domain.PaymentModeDeposit,
		DepositType:  domain.DepositPercentage,
		DepositValue: 25,
	}
	if existing, err := salons.GetBySlug(ctx, "demo"); err == nil {
		log.Printf("salon %q already seeded", existing.Slug)
		printToken(existing.ID)
		return
	}
	if err := salons.Create(ctx, salon); err != nil {
		log.Fatal("seed salon: ", err)
	}

	for i, svc := range []struct {
		name     string
		duration int
		price    int64
	}{
		{"Haircut", 60, 5000},
		{"Colouring", 120, 12500},
		{"Beard trim", 30, 2500},
	} {
		err := services.Create(ctx, &domain.Service{
			ID:          uuid.NewString(),
			SalonID:     salon.ID,
			Name:        svc.name,
			DurationMin: svc.duration,
			PriceCents:  svc.price,
			IsActive:    true,
			SortOrder:   i,
		})
		if err != nil {
			log.Fatal("seed service: ", err)
		}
	}

	for i, name := range []string{"Maya", "Jens"} {
		member := &domain.Staff{
			ID:        uuid.NewString(),
			SalonID:   salon.ID,
			Name:      name,
			IsActive:  true,
			SortOrder: i,
		}
		if err := staff.Create(ctx, member); err != nil {
			log.Fatal("seed staff: ", err)
		}

		// Tuesday through Saturday, 09:00-17:00
		for day := 1; day <= 5; day++ {
			err := staff.UpsertSchedule(ctx, &domain.StaffSchedule{
				ID:        uuid.NewString(),
				StaffID:   member.ID,
				DayOfWeek: day,
				StartTime: "09:00",
				EndTime:   "17:00",
				IsWorking: true,
			})
			if err != nil {
				log.Fatal("seed schedule: ", err)
			}
		}
	}

	log.Printf("seeded salon %q (%s)", salon.Slug, salon.ID)
	printToken(salon.ID)
}

func printToken(salonID string) {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("set JWT_SECRET to get an admin token: %v", err)
		return
	}
	token, err := jwtsvc.New(cfg.JWTSecret, 30*24*time.Hour).GenerateToken(salonID, "admin")
	if err != nil {
		log.Fatal("token: ", err)
	}
	fmt.Printf("admin token:\n%s\n", token)
}
