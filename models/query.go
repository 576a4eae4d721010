package models

import "time"

// Filters is the request-scoped filter set. Empty slices and nil bounds mean
// "no constraint" for that dimension.
type Filters struct {
	Regions        []string
	Genders        []string
	Categories     []string
	Tags           []string
	PaymentMethods []string
	AgeMin         *int
	AgeMax         *int
	DateFrom       *time.Time
	DateTo         *time.Time
}

// QueryParams is everything a transaction listing request carries.
type QueryParams struct {
	Search   string
	Filters  Filters
	SortBy   string
	Page     int
	PageSize int
}

type PaginatedResult struct {
	Items      []Transaction `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

type AgeRange struct {
	Min int `bson:"minAge" json:"min"`
	Max int `bson:"maxAge" json:"max"`
}

// FilterOptions lists the distinct values present in the store for each
// filterable dimension, used by the frontend to build its facet widgets.
type FilterOptions struct {
	Regions        []string `json:"regions"`
	Genders        []string `json:"genders"`
	Categories     []string `json:"categories"`
	Tags           []string `json:"tags"`
	PaymentMethods []string `json:"paymentMethods"`
	AgeRange       AgeRange `json:"ageRange"`
}

// Stats are computed over the whole dataset, never scoped to filters.
type Stats struct {
	TotalTransactions int64   `bson:"totalTransactions" json:"totalTransactions"`
	TotalRevenue      float64 `bson:"totalRevenue" json:"totalRevenue"`
	AverageOrderValue float64 `bson:"averageOrderValue" json:"averageOrderValue"`
	TotalQuantitySold int64   `bson:"totalQuantitySold" json:"totalQuantitySold"`
}
