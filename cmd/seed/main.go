package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"fleetdesk/internal/database"
	"fleetdesk/internal/domain"
	"fleetdesk/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "fleetdesk.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM check_out_fees")
	db.Exec("DELETE FROM check_outs")
	db.Exec("DELETE FROM check_ins")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM fixed_charges")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM clients")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM organizations")

	ctx := context.Background()

	users := repository.NewUserRepository(db)
	vehicles := repository.NewVehicleRepository(db)
	clients := repository.NewClientRepository(db)
	reservations := repository.NewReservationRepository(db)
	fixedCharges := repository.NewFixedChargeRepository(db)
	orgs := repository.NewOrganizationRepository(db)

	// ================== ORGANIZATION ==================
	log.Println("Creating organization...")
	org := &domain.Organization{
		ID:             1,
		Name:           "Loca'Ouest",
		CurrencyCode:   "EUR",
		CurrencySymbol: "€",
	}
	if err := orgs.Save(ctx, org); err != nil {
		log.Fatal("seed organization:", err)
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@fleetdesk.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Administrateur",
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("seed admin:", err)
	}
	log.Println("Admin created: admin@fleetdesk.local / admin123")

	agentEmails := []string{"paul@fleetdesk.local", "lea@fleetdesk.local", "nadia@fleetdesk.local"}
	for i, email := range agentEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("agent123"), bcrypt.DefaultCost)
		agent := &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleAgent,
			Name:         fmt.Sprintf("Agent %d", i+1),
			Phone:        fmt.Sprintf("+33 6 12 34 56 %02d", i+10),
		}
		if err := users.Create(ctx, agent); err != nil {
			log.Fatal("seed agent:", err)
		}
	}

	// ================== VEHICLES ==================
	log.Println("Creating vehicles...")

	fleet := []domain.Vehicle{
		{
			Registration: "AB-123-CD", Make: "Renault", Model: "Clio", Year: 2022,
			Mileage: 41350, Status: domain.VehicleAvailable,
			DailyRate: 50, WeekendFlatRate: 90, DailyKmAllowance: 200, PerKmOverageRate: 0.5,
		},
		{
			Registration: "EF-456-GH", Make: "Peugeot", Model: "308", Year: 2023,
			Mileage: 18200, Status: domain.VehicleAvailable,
			DailyRate: 65, WeekendFlatRate: 120, DailyKmAllowance: 250, PerKmOverageRate: 0.6,
		},
		{
			Registration: "IJ-789-KL", Make: "Citroën", Model: "Berlingo", Year: 2021,
			Mileage: 87400, Status: domain.VehicleAvailable,
			DailyRate: 80, DailyKmAllowance: 0, UnlimitedMileage: true,
		},
		{
			Registration: "MN-012-OP", Make: "Dacia", Model: "Duster", Year: 2024,
			Mileage: 5100, Status: domain.VehicleMaintenance,
			DailyRate: 70, WeekendFlatRate: 130, DailyKmAllowance: 300, PerKmOverageRate: 0.4,
		},
		{
			// tariff not configured yet: estimates come back at zero
			// with a warning until someone fills in the daily rate
			Registration: "QR-345-ST", Make: "Renault", Model: "Master", Year: 2020,
			Mileage: 132000, Status: domain.VehicleAvailable,
		},
	}
	for i := range fleet {
		if err := vehicles.Create(ctx, &fleet[i]); err != nil {
			log.Fatal("seed vehicle:", err)
		}
	}

	// ================== CLIENTS ==================
	log.Println("Creating clients...")

	book := []domain.Client{
		{Name: "Marie Dupont", Email: "marie.dupont@example.com", Phone: "+33 6 98 76 54 32", LicenceNumber: "FR-987654", Address: "12 rue des Lilas, Nantes"},
		{Name: "Karim Benali", Email: "karim.benali@example.com", Phone: "+33 7 11 22 33 44", LicenceNumber: "FR-123456", Address: "3 avenue Foch, Rennes"},
		{Name: "Sophie Leroy", Email: "sophie.leroy@example.com", Phone: "+33 6 55 44 33 22", LicenceNumber: "FR-654321", Address: "8 quai de la Fosse, Nantes"},
	}
	for i := range book {
		if err := clients.Create(ctx, &book[i]); err != nil {
			log.Fatal("seed client:", err)
		}
	}

	// ================== FIXED CHARGES ==================
	log.Println("Creating fixed charges...")

	for _, fc := range []domain.FixedCharge{
		{Label: "Nettoyage", Amount: 30, Active: true},
		{Label: "Carburant manquant", Amount: 25, Active: true},
		{Label: "Siège bébé", Amount: 15, Active: true},
		{Label: "Retard de restitution", Amount: 40, Active: true},
	} {
		charge := fc
		if err := fixedCharges.Create(ctx, &charge); err != nil {
			log.Fatal("seed fixed charge:", err)
		}
	}

	// ================== RESERVATIONS ==================
	log.Println("Creating reservations...")

	demo := []domain.Reservation{
		{
			VehicleID: fleet[0].ID, ClientID: book[0].ID,
			StartDate: "2026-09-07", StartTime: "09:00",
			EndDate: "2026-09-10", EndTime: "09:00",
			EstimatedPrice: 128, Strategy: "Long séjour (-15%)",
			Status: domain.ReservationConfirmed,
		},
		{
			// Saturday pickup, weekend formula
			VehicleID: fleet[1].ID, ClientID: book[1].ID,
			StartDate: "2026-09-05", StartTime: "10:00",
			EndDate: "2026-09-07", EndTime: "10:00",
			EstimatedPrice: 120, Strategy: "Formule Weekend",
			Status: domain.ReservationPending,
		},
		{
			VehicleID: fleet[2].ID, ClientID: book[2].ID,
			StartDate: "2026-09-14",
			EndDate:   "2026-09-28",
			// 14 days at 80 with the 20% long-stay discount
			EstimatedPrice: 896, Strategy: "Long séjour (-20%)",
			Status: domain.ReservationPending,
		},
	}
	for i := range demo {
		if err := reservations.Create(ctx, &demo[i]); err != nil {
			log.Fatal("seed reservation:", err)
		}
	}

	log.Println("Seed complete.")
}
