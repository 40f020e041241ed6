package database

import "time"

// Seed data for demo mode. First Load of a seeded collection returns these
// records; Reset restores them. The demo account they belong to is the one
// the auth service signs in when no backend is configured.

const DemoUserID = "demo-user-123"

// SeededCollections lists every collection that has non-empty seed content.
// Templates, campaigns and logs start empty and are simply wiped on reset.
var SeededCollections = []string{"clients", "appointments", "leads"}

func seedClients(now time.Time) []Record {
	return []Record{
		{
			"id":            "1",
			"user_id":       DemoUserID,
			"name":          "Sarah Johnson",
			"phone":         "(305) 555-0124",
			"email":         "sarah@email.com",
			"address":       "123 Oak Street, Miami, FL 33101",
			"cleaning_type": "Deep Clean",
			"frequency":     "Weekly",
			"total_paid":    float64(1200),
			"notes":         "Prefers organic products",
			"created_at":    now.AddDate(0, 0, -30).Format(time.RFC3339),
			"updated_at":    now.Format(time.RFC3339),
		},
		{
			"id":            "2",
			"user_id":       DemoUserID,
			"name":          "Michael Davis",
			"phone":         "(305) 555-0125",
			"email":         "michael@email.com",
			"address":       "456 Pine Avenue, Miami, FL 33102",
			"cleaning_type": "Regular",
			"frequency":     "Bi-weekly",
			"total_paid":    float64(800),
			"notes":         "Spare key hidden in the plant pot",
			"created_at":    now.AddDate(0, 0, -25).Format(time.RFC3339),
			"updated_at":    now.Format(time.RFC3339),
		},
		{
			"id":            "3",
			"user_id":       DemoUserID,
			"name":          "Jessica Brown",
			"phone":         "(305) 555-0126",
			"email":         "jessica@email.com",
			"address":       "789 Elm Drive, Miami, FL 33103",
			"cleaning_type": "Move In-Out",
			"frequency":     "One-time",
			"total_paid":    float64(350),
			"notes":         "Empty apartment, full clean",
			"created_at":    now.AddDate(0, 0, -20).Format(time.RFC3339),
			"updated_at":    now.Format(time.RFC3339),
		},
		{
			"id":            "4",
			"user_id":       DemoUserID,
			"name":          "Amanda Rodriguez",
			"phone":         "(305) 555-0127",
			"email":         "amanda@email.com",
			"address":       "321 Beach Road, Miami, FL 33104",
			"cleaning_type": "Airbnb",
			"frequency":     "Weekly",
			"total_paid":    float64(960),
			"notes":         "Turnover between guests, door code access",
			"created_at":    now.AddDate(0, 0, -15).Format(time.RFC3339),
			"updated_at":    now.Format(time.RFC3339),
		},
		{
			"id":            "5",
			"user_id":       DemoUserID,
			"name":          "Robert Wilson",
			"phone":         "(305) 555-0128",
			"email":         "robert@email.com",
			"address":       "654 Sunset Ave, Miami, FL 33105",
			"cleaning_type": "Regular",
			"frequency":     "Monthly",
			"total_paid":    float64(240),
			"notes":         "New client, first clean last month",
			"created_at":    now.AddDate(0, 0, -10).Format(time.RFC3339),
			"updated_at":    now.Format(time.RFC3339),
		},
	}
}

func seedAppointments(now time.Time) []Record {
	today := now.Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")
	return []Record{
		{
			"id":          "1",
			"user_id":     DemoUserID,
			"client_id":   "1",
			"date":        today,
			"time":        "09:00",
			"category":    "Deep Clean",
			"value":       float64(150),
			"status":      "scheduled",
			"notes":       "Full house clean",
			"bedrooms":    float64(3),
			"bathrooms":   float64(2),
			"square_feet": float64(1500),
			"created_at":  now.Format(time.RFC3339),
			"updated_at":  now.Format(time.RFC3339),
		},
		{
			"id":          "2",
			"user_id":     DemoUserID,
			"client_id":   "2",
			"date":        today,
			"time":        "13:00",
			"category":    "Regular",
			"value":       float64(80),
			"status":      "confirmed",
			"notes":       "Maintenance clean",
			"bedrooms":    float64(2),
			"bathrooms":   float64(1),
			"square_feet": float64(1000),
			"created_at":  now.Format(time.RFC3339),
			"updated_at":  now.Format(time.RFC3339),
		},
		{
			"id":          "3",
			"user_id":     DemoUserID,
			"client_id":   "3",
			"date":        tomorrow,
			"time":        "16:00",
			"category":    "Move In-Out",
			"value":       float64(200),
			"status":      "scheduled",
			"notes":       "Post move-out clean",
			"bedrooms":    float64(4),
			"bathrooms":   float64(3),
			"square_feet": float64(2000),
			"created_at":  now.Format(time.RFC3339),
			"updated_at":  now.Format(time.RFC3339),
		},
	}
}

func seedLeads(now time.Time) []Record {
	return []Record{
		{
			"id":         "1",
			"user_id":    DemoUserID,
			"name":       "Carlos Martinez",
			"phone":      "(305) 555-0129",
			"email":      "carlos@email.com",
			"address":    "987 Ocean Drive, Miami, FL 33106",
			"service":    "Deep Clean",
			"budget":     float64(180),
			"distance":   "2.3 miles",
			"status":     "new",
			"notes":      "Interested in weekly cleaning",
			"created_at": now.Add(-2 * time.Hour).Format(time.RFC3339),
			"updated_at": now.Format(time.RFC3339),
		},
		{
			"id":         "2",
			"user_id":    DemoUserID,
			"name":       "Lisa Parker",
			"phone":      "(305) 555-0130",
			"email":      "lisa@email.com",
			"address":    "456 Coral Way, Miami, FL 33107",
			"service":    "Regular Cleaning",
			"budget":     float64(120),
			"distance":   "1.8 miles",
			"status":     "new",
			"notes":      "Needs it for this weekend",
			"created_at": now.Add(-4 * time.Hour).Format(time.RFC3339),
			"updated_at": now.Format(time.RFC3339),
		},
	}
}

// SeedFor returns a fresh copy of the seed content for a collection. Unknown
// collections seed empty; absence of data is never an error.
func SeedFor(collection string) []Record {
	now := time.Now()
	switch collection {
	case "clients":
		return seedClients(now)
	case "appointments":
		return seedAppointments(now)
	case "leads":
		return seedLeads(now)
	default:
		return []Record{}
	}
}
