package seed

import (
	"log"

	"agencyhub_backend/internal/model"

	"gorm.io/gorm"
)

func SeedPlans(db *gorm.DB) {
	plans := []model.Plan{
		{
			Name:            "Starter Plan",
			Description:     "For freelancers and small agencies",
			Price:           29.99,
			Duration:        30,
			MaxLeads:        200,
			MaxCampaigns:    5,
			MaxAssets:       100,
			MaxGenerations:  50,
			StripeProductID: "prod_test_starter",
			StripePriceID:   "price_test_starter",
		},
		{
			Name:            "Agency Plan",
			Description:     "For growing marketing agencies",
			Price:           99.99,
			Duration:        30,
			MaxLeads:        5000,
			MaxCampaigns:    50,
			MaxAssets:       2000,
			MaxGenerations:  1000,
			StripeProductID: "prod_test_agency",
			StripePriceID:   "price_test_agency",
		},
		{
			Name:            "Enterprise Plan",
			Description:     "For large agencies and networks",
			Price:           299.99,
			Duration:        30,
			MaxLeads:        100000,
			MaxCampaigns:    1000,
			MaxAssets:       50000,
			MaxGenerations:  20000,
			StripeProductID: "prod_test_enterprise",
			StripePriceID:   "price_test_enterprise",
		},
	}

	for _, plan := range plans {
		var existing model.Plan
		if err := db.Where("name = ?", plan.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&plan).Error; err != nil {
				log.Printf("Could not seed plan %s: %v", plan.Name, err)
			} else {
				log.Printf("Seeded plan: %s", plan.Name)
			}
		}
	}
}
