package main

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	catalogapp "github.com/restopos/backend/internal/application/catalog"
	payrollapp "github.com/restopos/backend/internal/application/payroll"
	salesapp "github.com/restopos/backend/internal/application/sales"
	"github.com/shopspring/decimal"
)

type demoZone struct {
	Name   string
	Tables int
}

var demoZones = []demoZone{
	{Name: "Salón", Tables: 8},
	{Name: "Terraza", Tables: 4},
}

type demoProduct struct {
	Code          string
	Name          string
	Price         string
	Cost          string
	TrackStock    bool
	SendToKitchen bool
}

type demoCategory struct {
	Name     string
	Products []demoProduct
}

var demoMenu = []demoCategory{
	{Name: "Entradas", Products: []demoProduct{
		{Code: "ENT-001", Name: "Ceviche de camarón", Price: "8.50", Cost: "3.20", SendToKitchen: true},
		{Code: "ENT-002", Name: "Patacones con queso", Price: "3.75", Cost: "1.10", SendToKitchen: true},
		{Code: "ENT-003", Name: "Empanadas de verde", Price: "2.50", Cost: "0.80", SendToKitchen: true},
	}},
	{Name: "Platos fuertes", Products: []demoProduct{
		{Code: "PLT-001", Name: "Seco de pollo", Price: "7.00", Cost: "2.60", SendToKitchen: true},
		{Code: "PLT-002", Name: "Encebollado", Price: "5.50", Cost: "2.10", SendToKitchen: true},
		{Code: "PLT-003", Name: "Churrasco", Price: "9.25", Cost: "3.90", SendToKitchen: true},
		{Code: "PLT-004", Name: "Arroz marinero", Price: "11.50", Cost: "4.75", SendToKitchen: true},
	}},
	{Name: "Bebidas", Products: []demoProduct{
		{Code: "BEB-001", Name: "Jugo natural", Price: "2.00", Cost: "0.60", SendToKitchen: true},
		{Code: "BEB-002", Name: "Cola 500ml", Price: "1.25", Cost: "0.55", TrackStock: true},
		{Code: "BEB-003", Name: "Agua sin gas", Price: "1.00", Cost: "0.35", TrackStock: true},
		{Code: "BEB-004", Name: "Cerveza nacional", Price: "2.75", Cost: "1.20", TrackStock: true},
	}},
	{Name: "Postres", Products: []demoProduct{
		{Code: "POS-001", Name: "Tres leches", Price: "3.00", Cost: "0.90"},
		{Code: "POS-002", Name: "Helado de paila", Price: "2.50", Cost: "0.70"},
	}},
}

// initialStock is the quantity loaded for every stock-tracked demo product
var initialStock = decimal.NewFromInt(120)

func (p demoProduct) request(categoryID uuid.UUID) catalogapp.CreateProductRequest {
	return catalogapp.CreateProductRequest{
		CategoryID:    categoryID,
		Code:          p.Code,
		Name:          p.Name,
		Price:         decimal.RequireFromString(p.Price),
		Cost:          decimal.RequireFromString(p.Cost),
		TrackStock:    p.TrackStock,
		SendToKitchen: p.SendToKitchen,
	}
}

var positions = []string{"Mesero", "Cocinero", "Cajero", "Ayudante de cocina", "Administrador"}

// fakeEmployee builds an employee with a 10 digit id number and a salary between 460 and 900
func fakeEmployee(f *gofakeit.Faker) payrollapp.CreateEmployeeRequest {
	return payrollapp.CreateEmployeeRequest{
		FullName:   f.FirstName() + " " + f.LastName(),
		IDNumber:   f.Numerify("##########"),
		Position:   f.RandomString(positions),
		Phone:      f.Numerify("09########"),
		Email:      f.Email(),
		BaseSalary: decimal.NewFromInt(int64(f.IntRange(460, 900))),
		HireDate:   f.DateRange(time.Now().AddDate(-3, 0, 0), time.Now()),
	}
}

var paymentMethods = []string{"cash", "cash", "card", "transfer"}

// fakeSale builds a paid takeaway or delivery sale of one to four lines
func fakeSale(f *gofakeit.Faker, productIDs []uuid.UUID) salesapp.CreateSaleRequest {
	lines := f.IntRange(1, 4)
	items := make([]salesapp.SaleLineRequest, 0, lines)
	for i := 0; i < lines; i++ {
		items = append(items, salesapp.SaleLineRequest{
			ProductID: productIDs[f.IntRange(0, len(productIDs)-1)],
			Quantity:  decimal.NewFromInt(int64(f.IntRange(1, 3))),
		})
	}
	orderType := "takeaway"
	if f.Bool() {
		orderType = "delivery"
	}
	return salesapp.CreateSaleRequest{
		OrderType:    orderType,
		CustomerName: f.FirstName() + " " + f.LastName(),
		Items:        items,
		Payment:      &salesapp.PaymentRequest{Method: f.RandomString(paymentMethods)},
	}
}
