package main

import (
	"log"

	"serviceconnect-server/database"
	"serviceconnect-server/models"
)

func strPtr(s string) *string { return &s }

func ratePtr(f float64) *float64 { return &f }

func seedServiceCategories() error {
	db := database.GetDB()

	categories := []models.ServiceCategory{
		{
			Name:        "Plumbing",
			Description: strPtr("Leak repair, fixture installation and pipe work"),
			IconURL:     strPtr("https://cdn.serviceconnect.io/icons/plumbing.png"),
			BaseRate:    ratePtr(45.00),
			IsActive:    true,
		},
		{
			Name:        "Electrical",
			Description: strPtr("Wiring, panel upgrades and electrical repair"),
			IconURL:     strPtr("https://cdn.serviceconnect.io/icons/electrical.png"),
			BaseRate:    ratePtr(55.00),
			IsActive:    true,
		},
		{
			Name:        "Cleaning",
			Description: strPtr("Home and office cleaning, one-off or recurring"),
			IconURL:     strPtr("https://cdn.serviceconnect.io/icons/cleaning.png"),
			BaseRate:    ratePtr(25.00),
			IsActive:    true,
		},
		{
			Name:        "Painting",
			Description: strPtr("Interior and exterior painting, prep and finishing"),
			IconURL:     strPtr("https://cdn.serviceconnect.io/icons/painting.png"),
			BaseRate:    ratePtr(35.00),
			IsActive:    true,
		},
		{
			Name:        "Carpentry",
			Description: strPtr("Doors, windows, furniture and lock repair"),
			IconURL:     strPtr("https://cdn.serviceconnect.io/icons/carpentry.png"),
			BaseRate:    ratePtr(40.00),
			IsActive:    true,
		},
		{
			Name:        "HVAC",
			Description: strPtr("Air conditioning and ventilation install and service"),
			IconURL:     strPtr("https://cdn.serviceconnect.io/icons/hvac.png"),
			BaseRate:    ratePtr(60.00),
			IsActive:    true,
		},
		{
			Name:        "Appliance Repair",
			Description: strPtr("Fridges, washing machines and other home appliances"),
			IconURL:     strPtr("https://cdn.serviceconnect.io/icons/appliance.png"),
			BaseRate:    ratePtr(50.00),
			IsActive:    true,
		},
		{
			Name:        "Landscaping",
			Description: strPtr("Garden maintenance, lawn care and outdoor work"),
			IconURL:     strPtr("https://cdn.serviceconnect.io/icons/landscaping.png"),
			BaseRate:    ratePtr(30.00),
			IsActive:    true,
		},
	}

	for _, category := range categories {
		var existing models.ServiceCategory
		if err := db.Where("name = ?", category.Name).First(&existing).Error; err != nil {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Failed to create category %s: %v", category.Name, err)
				return err
			}
			log.Printf("✅ Created category: %s", category.Name)
		} else {
			log.Printf("⏭️  Category already exists: %s", category.Name)
		}
	}

	return nil
}
