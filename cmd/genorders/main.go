package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"printsync/internal/ledger"
	"printsync/internal/model"
)

func main() {
	var count int
	var outputFile string
	flag.IntVar(&count, "count", 100, "number of orders to generate")
	flag.StringVar(&outputFile, "output", "all_orders.jsonl", "output ledger file")
	flag.Parse()

	if err := generateOrders(count, outputFile); err != nil {
		log.Fatalf("generation failed: %v", err)
	}
}

func generateOrders(count int, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	shops := []model.ShopSelection{
		{ShopName: "QuickPrint Hub - CBIT", ShopEmail: "quickprint@cbit.ac.in"},
		{ShopName: "Print Express - JNTU", ShopEmail: "printexpress@jntu.ac.in"},
		{ShopName: "Campus Copies - OU", ShopEmail: "campuscopies@ou.ac.in"},
	}
	bindings := []string{"No Binding", "Stapled", "Spiral Bound"}
	files := []string{"Assignment.pdf", "Lab_Record.pdf", "Project_Report.pdf", "Notes.pdf", "Thesis_Draft.pdf"}
	customers := []string{"u1", "u2", "u3"}

	base := time.Now().UTC().Add(-time.Duration(count*10) * time.Second)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	enc := json.NewEncoder(file)
	for i := 0; i < count; i++ {
		shop := shops[rng.Intn(len(shops))]
		pages := 1 + rng.Intn(60)
		copies := 1 + rng.Intn(3)
		ts := base.Add(time.Duration(i*10) * time.Second)
		o := model.Order{
			ID:          "order_" + uuid.NewString(),
			OrderNumber: fmt.Sprintf("QP-2024-%03d", i+1),
			FileName:    files[rng.Intn(len(files))],
			ShopName:    shop.ShopName,
			ShopEmail:   shop.ShopEmail,
			College:     "CBIT",
			Pages:       pages,
			Color:       rng.Intn(3) == 0,
			DoubleSided: rng.Intn(2) == 0,
			Copies:      copies,
			Binding:     bindings[rng.Intn(len(bindings))],
			TotalCost:   int64(pages * copies * (2 + rng.Intn(4))),
			Status:      model.StatusPending,
			StatusText:  model.StatusPending.Label(),
			Rev:         1,
			CreatedAt:   ts,
			UpdatedAt:   ts,
			CustomerID:  customers[rng.Intn(len(customers))],
		}
		e := ledger.Entry{
			OrderID: o.ID,
			Seq:     1,
			Status:  o.Status,
			Role:    model.RoleCustomer,
			TS:      ts,
			Order:   o,
		}
		if err := enc.Encode(&e); err != nil {
			return fmt.Errorf("encode order %d: %w", i+1, err)
		}
	}

	log.Printf("generated %d ledger entries to %s", count, outputFile)
	return nil
}
