package service

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/models"
)

// BuildFilterQuery turns the filter set into a Mongo query. Every empty or
// unset dimension contributes no clause, so an empty filter set matches the
// whole collection.
func BuildFilterQuery(f models.Filters) bson.M {
	query := bson.M{}

	if len(f.Regions) > 0 {
		query["customerRegion"] = bson.M{"$in": f.Regions}
	}
	if len(f.Genders) > 0 {
		query["gender"] = bson.M{"$in": f.Genders}
	}
	if len(f.Categories) > 0 {
		query["productCategory"] = bson.M{"$in": f.Categories}
	}
	if len(f.Tags) > 0 {
		query["tags"] = bson.M{"$in": f.Tags}
	}
	if len(f.PaymentMethods) > 0 {
		query["paymentMethod"] = bson.M{"$in": f.PaymentMethods}
	}

	if f.AgeMin != nil || f.AgeMax != nil {
		age := bson.M{}
		if f.AgeMin != nil {
			age["$gte"] = *f.AgeMin
		}
		if f.AgeMax != nil {
			age["$lte"] = *f.AgeMax
		}
		query["age"] = age
	}

	if f.DateFrom != nil || f.DateTo != nil {
		date := bson.M{}
		if f.DateFrom != nil {
			date["$gte"] = *f.DateFrom
		}
		if f.DateTo != nil {
			// The upper bound is a calendar day; stretch it to the last
			// instant of that day so the whole day is included.
			date["$lte"] = endOfDay(*f.DateTo)
		}
		query["date"] = date
	}

	return query
}

// BuildSearchQuery matches the trimmed term as a case-insensitive substring
// of the customer name or phone number. The term is quoted with
// regexp.QuoteMeta so regex metacharacters in user input match literally.
func BuildSearchQuery(term string) bson.M {
	term = strings.TrimSpace(term)
	if term == "" {
		return bson.M{}
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"customerName": pattern},
		bson.M{"phoneNumber": pattern},
	}}
}

// BuildSortQuery maps a sort key to a Mongo sort document. Unknown keys fall
// back to newest-first.
func BuildSortQuery(sortBy string) bson.D {
	switch sortBy {
	case "date-asc":
		return bson.D{{Key: "date", Value: 1}}
	case "quantity-desc":
		return bson.D{{Key: "quantity", Value: -1}}
	case "quantity-asc":
		return bson.D{{Key: "quantity", Value: 1}}
	case "name-asc":
		return bson.D{{Key: "customerName", Value: 1}}
	case "name-desc":
		return bson.D{{Key: "customerName", Value: -1}}
	default:
		return bson.D{{Key: "date", Value: -1}}
	}
}

// CombineQueries ANDs the non-empty queries together. No queries (or all
// empty) yields bson.M{}, which matches everything.
func CombineQueries(queries ...bson.M) bson.M {
	parts := make([]bson.M, 0, len(queries))
	for _, q := range queries {
		if len(q) > 0 {
			parts = append(parts, q)
		}
	}

	switch len(parts) {
	case 0:
		return bson.M{}
	case 1:
		return parts[0]
	default:
		return bson.M{"$and": parts}
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}
