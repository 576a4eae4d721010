package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction is one row of the sales dataset. Records are written once by
// the CSV importer and never updated afterwards.
type Transaction struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	CustomerID     string `bson:"customerId" json:"customerId"`
	CustomerName   string `bson:"customerName" json:"customerName"`
	PhoneNumber    string `bson:"phoneNumber" json:"phoneNumber"`
	Gender         string `bson:"gender" json:"gender"`
	Age            int    `bson:"age" json:"age"`
	CustomerRegion string `bson:"customerRegion" json:"customerRegion"`
	CustomerType   string `bson:"customerType" json:"customerType"`

	ProductID       string   `bson:"productId" json:"productId"`
	ProductName     string   `bson:"productName" json:"productName"`
	Brand           string   `bson:"brand" json:"brand"`
	ProductCategory string   `bson:"productCategory" json:"productCategory"`
	Tags            []string `bson:"tags" json:"tags"`

	Quantity           int     `bson:"quantity" json:"quantity"`
	PricePerUnit       float64 `bson:"pricePerUnit" json:"pricePerUnit"`
	DiscountPercentage float64 `bson:"discountPercentage" json:"discountPercentage"`
	TotalAmount        float64 `bson:"totalAmount" json:"totalAmount"`
	FinalAmount        float64 `bson:"finalAmount" json:"finalAmount"`

	Date          time.Time `bson:"date" json:"date"`
	PaymentMethod string    `bson:"paymentMethod" json:"paymentMethod"`
	OrderStatus   string    `bson:"orderStatus" json:"orderStatus"`
	DeliveryType  string    `bson:"deliveryType" json:"deliveryType"`

	StoreID       string `bson:"storeId" json:"storeId"`
	StoreLocation string `bson:"storeLocation" json:"storeLocation"`
	SalespersonID string `bson:"salespersonId" json:"salespersonId"`
	EmployeeName  string `bson:"employeeName" json:"employeeName"`
}
