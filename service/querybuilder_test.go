package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/models"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestBuildFilterQueryEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, BuildFilterQuery(models.Filters{}))
}

func TestBuildFilterQueryFacets(t *testing.T) {
	q := BuildFilterQuery(models.Filters{
		Regions:        []string{"North", "South"},
		Genders:        []string{"Female"},
		Categories:     []string{"Electronics"},
		Tags:           []string{"sale"},
		PaymentMethods: []string{"Card", "Cash"},
	})

	assert.Equal(t, bson.M{"$in": []string{"North", "South"}}, q["customerRegion"])
	assert.Equal(t, bson.M{"$in": []string{"Female"}}, q["gender"])
	assert.Equal(t, bson.M{"$in": []string{"Electronics"}}, q["productCategory"])
	assert.Equal(t, bson.M{"$in": []string{"sale"}}, q["tags"])
	assert.Equal(t, bson.M{"$in": []string{"Card", "Cash"}}, q["paymentMethod"])
}

func TestBuildFilterQueryAgeBounds(t *testing.T) {
	q := BuildFilterQuery(models.Filters{AgeMin: intPtr(18)})
	assert.Equal(t, bson.M{"$gte": 18}, q["age"])

	q = BuildFilterQuery(models.Filters{AgeMax: intPtr(65)})
	assert.Equal(t, bson.M{"$lte": 65}, q["age"])

	q = BuildFilterQuery(models.Filters{AgeMin: intPtr(18), AgeMax: intPtr(65)})
	assert.Equal(t, bson.M{"$gte": 18, "$lte": 65}, q["age"])
}

func TestBuildFilterQueryDateUpperBoundCoversWholeDay(t *testing.T) {
	dateTo := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	q := BuildFilterQuery(models.Filters{DateTo: timePtr(dateTo)})

	dateClause, ok := q["date"].(bson.M)
	assert.True(t, ok)

	upper := dateClause["$lte"].(time.Time)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999000000, time.UTC), upper)

	// a record stamped anywhere on the 15th falls inside the bound
	assert.False(t, upper.Before(time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)))
}

func TestBuildSearchQueryEmptyTermMatchesEverything(t *testing.T) {
	assert.Equal(t, bson.M{}, BuildSearchQuery(""))
	assert.Equal(t, bson.M{}, BuildSearchQuery("   "))
}

func TestBuildSearchQueryMatchesNameOrPhone(t *testing.T) {
	q := BuildSearchQuery("  987 ")

	or, ok := q["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 2)

	name := or[0].(bson.M)["customerName"].(primitive.Regex)
	phone := or[1].(bson.M)["phoneNumber"].(primitive.Regex)
	assert.Equal(t, "987", name.Pattern)
	assert.Equal(t, "i", name.Options)
	assert.Equal(t, "987", phone.Pattern)
}

func TestBuildSearchQueryEscapesRegexMetacharacters(t *testing.T) {
	q := BuildSearchQuery(".*")
	or := q["$or"].(bson.A)
	name := or[0].(bson.M)["customerName"].(primitive.Regex)
	assert.Equal(t, `\.\*`, name.Pattern)
}

func TestBuildSortQuery(t *testing.T) {
	tests := []struct {
		sortBy string
		want   bson.D
	}{
		{"date-desc", bson.D{{Key: "date", Value: -1}}},
		{"date-asc", bson.D{{Key: "date", Value: 1}}},
		{"quantity-desc", bson.D{{Key: "quantity", Value: -1}}},
		{"quantity-asc", bson.D{{Key: "quantity", Value: 1}}},
		{"name-asc", bson.D{{Key: "customerName", Value: 1}}},
		{"name-desc", bson.D{{Key: "customerName", Value: -1}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildSortQuery(tt.sortBy), tt.sortBy)
	}
}

func TestBuildSortQueryFallsBackToDateDesc(t *testing.T) {
	fallback := bson.D{{Key: "date", Value: -1}}
	assert.Equal(t, fallback, BuildSortQuery(""))
	assert.Equal(t, fallback, BuildSortQuery("price-desc"))
	assert.Equal(t, fallback, BuildSortQuery("garbage"))
}

func TestCombineQueries(t *testing.T) {
	filter := bson.M{"gender": bson.M{"$in": []string{"Male"}}}
	search := bson.M{"$or": bson.A{bson.M{"customerName": "x"}}}

	assert.Equal(t, bson.M{}, CombineQueries())
	assert.Equal(t, bson.M{}, CombineQueries(bson.M{}, bson.M{}))
	assert.Equal(t, filter, CombineQueries(filter, bson.M{}))
	assert.Equal(t, bson.M{"$and": []bson.M{filter, search}}, CombineQueries(filter, search))
}
