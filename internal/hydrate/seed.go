package hydrate

import (
	"time"

	"printsync/internal/model"
)

// SeedOrders is the demo dataset installed for a first-time actor when
// seeding is enabled. Shapes mirror the fixtures the UI was built against.
func SeedOrders(actor model.Actor) []model.Order {
	now := time.Now().UTC()
	college := actor.College
	if college == "" {
		college = "CBIT"
	}
	if actor.Role == model.RolePartner {
		return []model.Order{
			{
				ID:          "partner_order_1",
				OrderNumber: "QP-2024-P01",
				FileName:    "Student_Assignment.pdf",
				ShopName:    "My Shop",
				ShopEmail:   actor.Email,
				College:     college,
				Pages:       10,
				Copies:      2,
				Binding:     "No Binding",
				TotalCost:   30,
				Status:      model.StatusPending,
				StatusText:  model.StatusPending.Label(),
				CreatedAt:   now.Add(-1 * time.Hour),
				UpdatedAt:   now.Add(-30 * time.Minute),
				Customer:    &model.CustomerContact{Name: "Student User", Phone: "9876543210", Email: "student@cbit.ac.in"},
			},
			{
				ID:          "partner_order_2",
				OrderNumber: "QP-2024-P02",
				FileName:    "Project_Report.pdf",
				ShopName:    "My Shop",
				ShopEmail:   actor.Email,
				College:     college,
				Pages:       45,
				Color:       true,
				DoubleSided: true,
				Copies:      1,
				Binding:     "Spiral Bound",
				TotalCost:   180,
				Status:      model.StatusAccepted,
				StatusText:  model.StatusAccepted.Label(),
				CreatedAt:   now.Add(-3 * time.Hour),
				UpdatedAt:   now.Add(-2 * time.Hour),
				Customer:    &model.CustomerContact{Name: "Another Student", Phone: "9876543211", Email: "another@cbit.ac.in"},
			},
		}
	}
	return []model.Order{
		{
			ID:          "order_1",
			OrderNumber: "QP-2024-001",
			FileName:    "Assignment_Chapter_3.pdf",
			FileURL:     "https://example.com/uploads/Assignment_Chapter_3.pdf",
			ShopName:    "QuickPrint Hub - CBIT",
			ShopEmail:   "quickprint@cbit.ac.in",
			College:     college,
			Pages:       12,
			Copies:      1,
			Binding:     "Stapled",
			TotalCost:   45,
			Status:      model.StatusPending,
			StatusText:  model.StatusPending.Label(),
			CreatedAt:   now.Add(-2 * time.Hour),
			UpdatedAt:   now.Add(-1 * time.Hour),
			CustomerID:  actor.ID,
		},
		{
			ID:          "order_2",
			OrderNumber: "QP-2024-002",
			FileName:    "Research_Paper_Final.pdf",
			FileURL:     "https://example.com/uploads/Research_Paper_Final.pdf",
			ShopName:    "Print Express - JNTU",
			ShopEmail:   "printexpress@jntu.ac.in",
			College:     college,
			Pages:       25,
			Color:       true,
			DoubleSided: true,
			Copies:      1,
			Binding:     "Spiral Bound",
			TotalCost:   120,
			Status:      model.StatusAccepted,
			StatusText:  model.StatusAccepted.Label(),
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now.Add(-12 * time.Hour),
			CustomerID:  actor.ID,
		},
	}
}
