package importer

import (
	"strconv"
	"strings"
	"time"

	"backend/models"
)

// fieldAliases maps each canonical field to the source column names it may
// appear under, in lookup order. The export tool produces human-readable
// headers; re-exports of already-imported data use the camelCase names.
var fieldAliases = map[string][]string{
	"customerId":         {"Customer ID", "customerId"},
	"customerName":       {"Customer Name", "customerName"},
	"phoneNumber":        {"Phone Number", "phoneNumber"},
	"gender":             {"Gender", "gender"},
	"age":                {"Age", "age"},
	"customerRegion":     {"Customer Region", "customerRegion"},
	"customerType":       {"Customer Type", "customerType"},
	"productId":          {"Product ID", "productId"},
	"productName":        {"Product Name", "productName"},
	"brand":              {"Brand", "brand"},
	"productCategory":    {"Product Category", "productCategory"},
	"tags":               {"Tags", "tags"},
	"quantity":           {"Quantity", "quantity"},
	"pricePerUnit":       {"Price per Unit", "pricePerUnit"},
	"discountPercentage": {"Discount Percentage", "discountPercentage"},
	"totalAmount":        {"Total Amount", "totalAmount"},
	"finalAmount":        {"Final Amount", "finalAmount"},
	"date":               {"Date", "date"},
	"paymentMethod":      {"Payment Method", "paymentMethod"},
	"orderStatus":        {"Order Status", "orderStatus"},
	"deliveryType":       {"Delivery Type", "deliveryType"},
	"storeId":            {"Store ID", "storeId"},
	"storeLocation":      {"Store Location", "storeLocation"},
	"salespersonId":      {"Salesperson ID", "salespersonId"},
	"employeeName":       {"Employee Name", "employeeName"},
}

// TransformRecord maps a raw CSV row (column name -> cell value) onto a
// canonical Transaction. Numeric cells that fail to parse become zero, a
// lossy policy inherited from the upstream export pipeline.
func TransformRecord(record map[string]string) models.Transaction {
	return models.Transaction{
		CustomerID:     field(record, "customerId"),
		CustomerName:   field(record, "customerName"),
		PhoneNumber:    field(record, "phoneNumber"),
		Gender:         field(record, "gender"),
		Age:            parseInt(field(record, "age")),
		CustomerRegion: field(record, "customerRegion"),
		CustomerType:   field(record, "customerType"),

		ProductID:       field(record, "productId"),
		ProductName:     field(record, "productName"),
		Brand:           field(record, "brand"),
		ProductCategory: field(record, "productCategory"),
		Tags:            parseTags(field(record, "tags")),

		Quantity:           parseInt(field(record, "quantity")),
		PricePerUnit:       parseFloat(field(record, "pricePerUnit")),
		DiscountPercentage: parseFloat(field(record, "discountPercentage")),
		TotalAmount:        parseFloat(field(record, "totalAmount")),
		FinalAmount:        parseFloat(field(record, "finalAmount")),

		Date:          parseDate(field(record, "date")),
		PaymentMethod: field(record, "paymentMethod"),
		OrderStatus:   field(record, "orderStatus"),
		DeliveryType:  field(record, "deliveryType"),

		StoreID:       field(record, "storeId"),
		StoreLocation: field(record, "storeLocation"),
		SalespersonID: field(record, "salespersonId"),
		EmployeeName:  field(record, "employeeName"),
	}
}

// requiredStringFields must be non-empty for a record to be kept. The
// numeric required fields (age, quantity, pricePerUnit) are always present
// after coercion, zero included; only the date can still be invalid.
var requiredStringFields = []string{
	"customerId", "customerName", "phoneNumber", "gender", "customerRegion",
	"productId", "productName", "productCategory", "paymentMethod",
}

var requiredAccessors = map[string]func(models.Transaction) string{
	"customerId":      func(t models.Transaction) string { return t.CustomerID },
	"customerName":    func(t models.Transaction) string { return t.CustomerName },
	"phoneNumber":     func(t models.Transaction) string { return t.PhoneNumber },
	"gender":          func(t models.Transaction) string { return t.Gender },
	"customerRegion":  func(t models.Transaction) string { return t.CustomerRegion },
	"productId":       func(t models.Transaction) string { return t.ProductID },
	"productName":     func(t models.Transaction) string { return t.ProductName },
	"productCategory": func(t models.Transaction) string { return t.ProductCategory },
	"paymentMethod":   func(t models.Transaction) string { return t.PaymentMethod },
}

// ValidateRecord reports whether a transformed record has every required
// field. Records failing this are dropped from the import, not fixed up.
func ValidateRecord(t models.Transaction) bool {
	for _, name := range requiredStringFields {
		if requiredAccessors[name](t) == "" {
			return false
		}
	}
	return !t.Date.IsZero()
}

func field(record map[string]string, name string) string {
	for _, key := range fieldAliases[name] {
		if v, ok := record[key]; ok && v != "" {
			return v
		}
	}
	return ""
}

func parseTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseDate handles the M/D/YYYY dates the export tool writes, then falls
// back to common layouts. An unparsable date comes back as the zero time and
// the record is dropped by validation.
func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, "/") == 2 {
		if t, err := time.Parse("1/2/2006", raw); err == nil {
			return t
		}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
