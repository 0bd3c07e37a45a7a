package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"estimator/internal/database"
	"estimator/internal/domain"
	"estimator/internal/pricing"
	"estimator/internal/repository"
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "estimator.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// ================== SETTINGS ==================
	log.Println("Seeding default settings...")
	settingsRepo := repository.NewSettingsRepository(db)
	defaults := map[string]string{
		"hardware_markup":        "25.00",
		"parts_materials_markup": "30.00",
		"labor_rate":             "75.00",
		"labor_markup":           "0.00",
		"sales_rep_commission":   "5.00",
		"tax_rate":               "13.00",
		"company_name":           "Udora Safety",
		"company_phone":          "416 853 2603",
		"company_email":          "info@udorasafety.com",
		"warranty_terms":         "1 year parts and labor warranty",
		"payment_terms":          "Net 30 days",
	}
	if err := settingsRepo.SeedDefaults(ctx, defaults); err != nil {
		log.Fatal("Settings seed failed:", err)
	}

	// ================== CATEGORIES ==================
	productCategories := repository.NewProductCategoryRepository(db)
	seedCategories(ctx, productCategories, []domain.Category{
		{Name: "hardware", Label: "Hardware"},
		{Name: "parts_materials", Label: "Parts & Materials"},
		{Name: "labor", Label: "Labor"},
	})

	packageCategories := repository.NewPackageCategoryRepository(db)
	seedCategories(ctx, packageCategories, []domain.Category{
		{Name: "camera_systems", Label: "Camera Systems"},
		{Name: "access_control", Label: "Access Control"},
		{Name: "intrusion_detection", Label: "Intrusion Detection"},
		{Name: "fire_safety", Label: "Fire Safety"},
		{Name: "custom_packages", Label: "Custom Packages"},
	})

	// ================== ADMIN USER ==================
	log.Println("Creating admin user...")
	userRepo := repository.NewUserRepository(db)
	taken, err := userRepo.LoginTaken(ctx, "admin", "admin@udorasafety.com")
	if err != nil {
		log.Fatal("Admin lookup failed:", err)
	}
	if !taken {
		hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin := domain.User{
			Username:     "admin",
			Email:        "admin@udorasafety.com",
			PasswordHash: string(hash),
			FirstName:    "System",
			LastName:     "Administrator",
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, &admin); err != nil {
			log.Fatal("Admin create failed:", err)
		}
		log.Println("Admin created: admin / admin123")
	}

	// ================== SAMPLE PACKAGES ==================
	log.Println("Creating sample packages...")
	packageRepo := repository.NewPackageRepository(db)
	existing, err := packageRepo.GetAllActive(ctx)
	if err != nil {
		log.Fatal("Package lookup failed:", err)
	}
	if len(existing) == 0 {
		rates := pricing.Settings(defaults)
		for _, p := range samplePackages(rates) {
			pkg := p
			if err := packageRepo.Create(ctx, &pkg, false); err != nil {
				log.Fatal("Package seed failed:", err)
			}
		}
		log.Println("Sample camera packages created")
	}

	log.Println("Seed completed")
}

func seedCategories(ctx context.Context, repo *repository.CategoryRepository, categories []domain.Category) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		log.Fatal("Category lookup failed:", err)
	}
	if len(existing) > 0 {
		return
	}
	for _, c := range categories {
		category := c
		if err := repo.Create(ctx, &category); err != nil {
			log.Fatal("Category seed failed:", err)
		}
	}
}

// samplePackages builds the three starter camera bundles with markups
// taken from the seeded settings and totals computed by the pricing
// engine.
func samplePackages(rates pricing.Settings) []domain.Package {
	build := func(name, description string, items []domain.LineItem) domain.Package {
		for i := range items {
			items[i].MarkupPercent = pricing.DefaultMarkup(items[i].Category, rates)
		}
		items = pricing.Recalculate(items)
		return domain.Package{
			Name:        name,
			Description: description,
			Category:    "camera_systems",
			BasePrice:   pricing.BasePrice(items),
			Status:      domain.PackageActive,
			LineItems:   items,
		}
	}

	return []domain.Package{
		build("Basic Security Camera Package", "4-camera system for small homes and offices",
			[]domain.LineItem{
				{Description: "4MP IP Security Camera", Quantity: 4, UnitCost: 150.00, Category: domain.CategoryHardware},
				{Description: "4-Channel NVR System", Quantity: 1, UnitCost: 200.00, Category: domain.CategoryHardware},
				{Description: "Cat6 Network Cable (1000ft)", Quantity: 1, UnitCost: 120.00, Category: domain.CategoryPartsMaterials},
				{Description: "Power Supply 12V 10A", Quantity: 1, UnitCost: 80.00, Category: domain.CategoryHardware},
				{Description: "Installation and Configuration", Quantity: 8, UnitCost: 75.00, Category: domain.CategoryLabor},
			}),
		build("Professional Camera Package", "8-camera system with night vision for mid-size sites",
			[]domain.LineItem{
				{Description: "4MP IP Security Camera with Night Vision", Quantity: 8, UnitCost: 180.00, Category: domain.CategoryHardware},
				{Description: "8-Channel NVR System with 2TB HDD", Quantity: 1, UnitCost: 400.00, Category: domain.CategoryHardware},
				{Description: "PoE Switch 16-Port", Quantity: 1, UnitCost: 150.00, Category: domain.CategoryHardware},
				{Description: "Cat6 Network Cable (2000ft)", Quantity: 1, UnitCost: 200.00, Category: domain.CategoryPartsMaterials},
				{Description: "Professional Installation and Setup", Quantity: 16, UnitCost: 75.00, Category: domain.CategoryLabor},
			}),
		build("Enterprise Camera Package", "16-camera system with analytics for large facilities",
			[]domain.LineItem{
				{Description: "4MP IP Security Camera with Advanced Analytics", Quantity: 16, UnitCost: 220.00, Category: domain.CategoryHardware},
				{Description: "16-Channel Enterprise NVR with 8TB Storage", Quantity: 1, UnitCost: 800.00, Category: domain.CategoryHardware},
				{Description: "Managed PoE Switch 24-Port", Quantity: 1, UnitCost: 300.00, Category: domain.CategoryHardware},
				{Description: "UPS Battery Backup 1500VA", Quantity: 1, UnitCost: 200.00, Category: domain.CategoryHardware},
				{Description: "Cat6 Network Cable (3000ft)", Quantity: 1, UnitCost: 350.00, Category: domain.CategoryPartsMaterials},
				{Description: "Enterprise Installation and Configuration", Quantity: 24, UnitCost: 85.00, Category: domain.CategoryLabor},
			}),
	}
}
