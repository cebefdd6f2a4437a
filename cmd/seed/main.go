package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"cricketleague/internal/database"
	"cricketleague/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "league.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// ================== FEE CONFIGURATION ==================
	log.Println("Seeding fee configuration...")
	feeConfig := domain.FeeConfiguration{
		ConfigKey:       domain.FeeConfigKey,
		RegistrationFee: domain.DefaultRegistrationFee,
		GSTPercentage:   domain.DefaultGSTPercentage,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"registration_fee", "gst_percentage"}),
	}).Create(&feeConfig).Error; err != nil {
		log.Fatal("fee configuration seed failed:", err)
	}
	log.Printf("Fee configuration: base=%d gst=%d%%", feeConfig.RegistrationFee, feeConfig.GSTPercentage)

	// ================== ADMIN USER ==================
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin user")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("password hash failed:", err)
	}
	admin := domain.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "League Admin",
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
	}).Create(&admin).Error; err != nil {
		log.Fatal("admin seed failed:", err)
	}
	log.Println("Admin created:", email)
}
