// Seeds the store database with demo data: an admin account, categories,
// variant-priced products, a bundle deal and a campaign.
package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

func main() {
	_ = godotenv.Load()

	config.InitDB()
	defer config.CloseDB()

	if err := config.Migrate(config.StoreGorm); err != nil {
		log.Fatalf("❌ Failed to migrate schema: %v", err)
	}

	db := config.StoreGorm

	adminPassword, _ := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	admin := models.User{
		Name:     "Store Admin",
		Phone:    "03001234567",
		Email:    "admin@hajverystore.com",
		Password: string(adminPassword),
		Address:  "Hajvery Store, Main Market",
		Role:     models.RoleAdmin,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to seed admin: %v", err)
	}
	log.Printf("✅ Admin: %s", admin.Email)

	dairy := models.Category{Name: "Dairy"}
	snacks := models.Category{Name: "Snacks"}
	for _, category := range []*models.Category{&dairy, &snacks} {
		if err := db.Where("name = ?", category.Name).FirstOrCreate(category).Error; err != nil {
			log.Fatalf("❌ Failed to seed category %s: %v", category.Name, err)
		}
	}
	log.Println("✅ Categories seeded")

	salePrice := 240.0
	milk := models.Product{
		Name:        "Fresh Milk",
		Description: "Farm fresh milk, delivered daily",
		Brand:       "Nurpur",
		CategoryID:  dairy.ID,
		CategorySub: "Milk",
		Images: models.ImageList{
			"https://res.cloudinary.com/demo/products/milk_front.jpg",
			"https://res.cloudinary.com/demo/products/milk_back.jpg",
			"https://res.cloudinary.com/demo/products/milk_pour.jpg",
		},
		Stock: 50,
		Variants: models.VariantList{
			{Name: "1 Litre", Price: 260, IsOnSale: true, SalePrice: &salePrice},
			{Name: "500ml", Price: 140},
		},
	}
	biscuits := models.Product{
		Name:        "Chocolate Biscuits",
		Description: "Family pack chocolate chip biscuits",
		Brand:       "Peek Freans",
		CategoryID:  snacks.ID,
		CategorySub: "Biscuits",
		Images: models.ImageList{
			"https://res.cloudinary.com/demo/products/biscuits_pack.jpg",
			"https://res.cloudinary.com/demo/products/biscuits_open.jpg",
			"https://res.cloudinary.com/demo/products/biscuits_stack.jpg",
		},
		Stock: 120,
		Variants: models.VariantList{
			{Name: "Family Pack", Price: 180},
			{Name: "Snack Pack", Price: 60},
		},
	}
	for _, product := range []*models.Product{&milk, &biscuits} {
		if err := db.Where("name = ?", product.Name).FirstOrCreate(product).Error; err != nil {
			log.Fatalf("❌ Failed to seed product %s: %v", product.Name, err)
		}
	}
	log.Println("✅ Products seeded")

	deal := models.Deal{
		Title:       "Breakfast Bundle",
		Description: "Milk and biscuits together, cheaper",
		BannerImage: "https://placehold.co/600x200",
		Products: models.DealProductList{
			{ProductID: milk.ID, VariantName: "1 Litre"},
			{ProductID: biscuits.ID, VariantName: "Family Pack"},
		},
		Discount:   80,
		IsActive:   true,
		ValidFrom:  time.Now().UTC(),
		ValidUntil: time.Now().UTC().AddDate(0, 1, 0),
	}
	if err := db.Where("title = ?", deal.Title).FirstOrCreate(&deal).Error; err != nil {
		log.Fatalf("❌ Failed to seed deal: %v", err)
	}
	log.Println("✅ Deal seeded")

	campaign := models.Campaign{
		Title:     "Eid Sale",
		Banner:    "https://placehold.co/600x200",
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().AddDate(0, 0, 14),
		IsActive:  true,
		Products: models.CampaignProductList{
			{ProductID: biscuits.ID, SalePrice: 150},
		},
	}
	if err := db.Where("title = ?", campaign.Title).FirstOrCreate(&campaign).Error; err != nil {
		log.Fatalf("❌ Failed to seed campaign: %v", err)
	}
	log.Println("✅ Campaign seeded")

	log.Println("🚀 Seed complete")
}
