// Package demo holds the hardcoded sample dataset used when the system runs
// without real data. It backs cmd/seed and the DEMO_MODE startup seed, and is
// always labeled as demo data — never silently substituted for live records.
package demo

import (
	"context"
	"errors"
	"log"

	"warehouse-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type warehouseSeed struct {
	Code     string
	Name     string
	Location string
	Capacity int
}

type categorySeed struct {
	Name        string
	Description string
}

type productSeed struct {
	Code         string
	Barcode      string
	Name         string
	Unit         string
	Price        float64
	Cost         float64
	Stock        int
	ReorderLevel int
	Warehouse    string // warehouse code
	Category     string // category name
}

type userSeed struct {
	Username string
	Email    string
	Phone    string
	Role     string
}

var warehouses = []warehouseSeed{
	{Code: "WH-MAIN", Name: "Main Warehouse", Location: "Cairo", Capacity: 1000},
	{Code: "WH-SUB", Name: "Secondary Warehouse", Location: "Giza", Capacity: 500},
	{Code: "WH-SUPPLY", Name: "Supply Depot", Location: "Alexandria", Capacity: 800},
}

var categories = []categorySeed{
	{Name: "Electronics", Description: "Electronic devices and accessories"},
	{Name: "Groceries", Description: "Food and daily consumables"},
	{Name: "Stationery", Description: "Office and school supplies"},
}

var products = []productSeed{
	{Code: "P-1001", Barcode: "6001001001001", Name: "Wireless Mouse", Unit: "pcs", Price: 25.50, Cost: 14.00, Stock: 120, ReorderLevel: 20, Warehouse: "WH-MAIN", Category: "Electronics"},
	{Code: "P-1002", Barcode: "6001001001002", Name: "USB-C Cable", Unit: "pcs", Price: 8.99, Cost: 3.20, Stock: 15, ReorderLevel: 30, Warehouse: "WH-MAIN", Category: "Electronics"},
	{Code: "P-2001", Barcode: "6002002002001", Name: "Rice 5kg", Unit: "bag", Price: 12.00, Cost: 9.50, Stock: 0, ReorderLevel: 10, Warehouse: "WH-SUB", Category: "Groceries"},
	{Code: "P-2002", Name: "Olive Oil 1L", Unit: "bottle", Price: 18.75, Cost: 13.00, Stock: 64, ReorderLevel: 12, Warehouse: "WH-SUB", Category: "Groceries"},
	{Code: "P-3001", Barcode: "6003003003001", Name: "Notebook A5", Unit: "pcs", Price: 3.25, Cost: 1.10, Stock: 200, ReorderLevel: 50, Warehouse: "WH-SUPPLY", Category: "Stationery"},
	{Code: "P-3002", Name: "Ballpoint Pen", Unit: "box", Price: 6.40, Cost: 2.80, Stock: 8, ReorderLevel: 25, Warehouse: "WH-SUPPLY", Category: "Stationery"},
}

var users = []userSeed{
	{Username: "admin", Email: "admin@example.com", Phone: "0123456789", Role: model.RoleAdmin},
	{Username: "manager", Email: "manager@example.com", Phone: "0123456790", Role: model.RoleManager},
	{Username: "staff", Email: "staff@example.com", Phone: "0123456791", Role: model.RoleStaff},
}

// demo accounts share one well-known password
const demoPassword = "demo1234"

// Seed loads the demo dataset. It is idempotent: rows that already exist
// (matched by code/name/email) are left untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	warehousesByCode := make(map[string]*model.Warehouse, len(warehouses))
	for _, w := range warehouses {
		row := model.Warehouse{
			Code:     w.Code,
			Name:     w.Name,
			Location: w.Location,
			Capacity: w.Capacity,
			Status:   model.WarehouseActive,
		}
		var existing model.Warehouse
		err := db.WithContext(ctx).Where("code = ?", w.Code).First(&existing).Error
		switch {
		case err == nil:
			warehousesByCode[w.Code] = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
			warehousesByCode[w.Code] = &row
		default:
			return err
		}
	}

	categoriesByName := make(map[string]*model.Category, len(categories))
	for _, c := range categories {
		row := model.Category{Name: c.Name, Description: c.Description}
		var existing model.Category
		err := db.WithContext(ctx).Where("name = ?", c.Name).First(&existing).Error
		switch {
		case err == nil:
			categoriesByName[c.Name] = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
			categoriesByName[c.Name] = &row
		default:
			return err
		}
	}

	for _, p := range products {
		var count int64
		if err := db.WithContext(ctx).Model(&model.Product{}).Where("code = ?", p.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		row := model.Product{
			Code:         p.Code,
			Name:         p.Name,
			Unit:         p.Unit,
			Price:        p.Price,
			Cost:         p.Cost,
			CurrentStock: p.Stock,
			ReorderLevel: p.ReorderLevel,
			Status:       model.StockStatus(p.Stock, p.ReorderLevel),
			WarehouseID:  warehousesByCode[p.Warehouse].ID,
		}
		if p.Barcode != "" {
			barcode := p.Barcode
			row.Barcode = &barcode
		}
		if cat, ok := categoriesByName[p.Category]; ok {
			row.CategoryID = &cat.ID
		}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	for _, u := range users {
		var count int64
		if err := db.WithContext(ctx).Model(&model.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		warehouseID := warehousesByCode[warehouses[0].Code].ID
		row := model.User{
			Username:    u.Username,
			Email:       u.Email,
			Phone:       u.Phone,
			Password:    string(hashed),
			Role:        u.Role,
			WarehouseID: &warehouseID,
			Status:      "active",
		}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}

	log.Printf("Demo dataset loaded: %d warehouses, %d categories, %d products, %d users",
		len(warehouses), len(categories), len(products), len(users))
	return nil
}
