package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"backend/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	filterOptionsCacheKey = "sales:filter-options"
	statsCacheKey         = "sales:stats"
	cacheTTL              = 5 * time.Minute
)

// Store is what the service needs from the persistence layer. *store.SalesStore
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	Find(ctx context.Context, filter bson.M, sortSpec bson.D, skip, limit int64) ([]models.Transaction, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Distinct(ctx context.Context, field string) ([]string, error)
	AgeRange(ctx context.Context) (models.AgeRange, error)
	Stats(ctx context.Context) (models.Stats, error)
	FindByID(ctx context.Context, id string) (*models.Transaction, error)
}

// SalesService answers read queries over the imported dataset. The Redis
// cache is optional: with a nil client every call goes straight to the store.
// Caching facet lists and stats is safe because the dataset never changes
// after import.
type SalesService struct {
	store Store
	cache *redis.Client
	log   *zap.Logger
}

func NewSalesService(store Store, cache *redis.Client, log *zap.Logger) *SalesService {
	return &SalesService{store: store, cache: cache, log: log}
}

// Query returns one page of transactions plus the total match count. The
// page fetch and the count run concurrently against the same effective
// predicate, so the two numbers are consistent with each other.
func (s *SalesService) Query(ctx context.Context, params models.QueryParams) (*models.PaginatedResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	query := CombineQueries(BuildFilterQuery(params.Filters), BuildSearchQuery(params.Search))
	sortSpec := BuildSortQuery(params.SortBy)
	skip := int64(page-1) * int64(pageSize)

	var (
		items []models.Transaction
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.store.Find(gctx, query, sortSpec, skip, int64(pageSize))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.Count(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.Transaction{}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &models.PaginatedResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetFilterOptions collects the distinct values for every facet plus the
// observed age range. The six scans are independent reads and run
// concurrently.
func (s *SalesService) GetFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	var cached models.FilterOptions
	if s.cacheGet(ctx, filterOptionsCacheKey, &cached) {
		return &cached, nil
	}

	opts := &models.FilterOptions{}
	g, gctx := errgroup.WithContext(ctx)

	distinct := func(field string, dst *[]string) func() error {
		return func() error {
			values, err := s.store.Distinct(gctx, field)
			if err != nil {
				return err
			}
			*dst = values
			return nil
		}
	}
	g.Go(distinct("customerRegion", &opts.Regions))
	g.Go(distinct("gender", &opts.Genders))
	g.Go(distinct("productCategory", &opts.Categories))
	g.Go(distinct("tags", &opts.Tags))
	g.Go(distinct("paymentMethod", &opts.PaymentMethods))
	g.Go(func() error {
		ageRange, err := s.store.AgeRange(gctx)
		if err != nil {
			return err
		}
		opts.AgeRange = ageRange
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, filterOptionsCacheKey, opts)
	return opts, nil
}

// GetStats reports the dashboard summary over the entire dataset, ignoring
// any active filters.
func (s *SalesService) GetStats(ctx context.Context) (*models.Stats, error) {
	var cached models.Stats
	if s.cacheGet(ctx, statsCacheKey, &cached) {
		return &cached, nil
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, statsCacheKey, &stats)
	return &stats, nil
}

func (s *SalesService) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return s.store.FindByID(ctx, id)
}

func (s *SalesService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (s *SalesService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
