package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backend/models"
	"backend/service"
	"backend/store"
	"backend/utils"
)

const dateParamLayout = "2006-01-02"

type SalesController struct {
	service *service.SalesService
	log     *zap.Logger
}

func NewSalesController(svc *service.SalesService, log *zap.Logger) *SalesController {
	return &SalesController{service: svc, log: log}
}

// GetTransactions serves the paginated, filtered transaction listing.
func (sc *SalesController) GetTransactions(c *gin.Context) {
	params := models.QueryParams{
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sortBy", "date-desc"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 10),
		Filters: models.Filters{
			Regions:        c.QueryArray("regions"),
			Genders:        c.QueryArray("genders"),
			Categories:     c.QueryArray("categories"),
			Tags:           c.QueryArray("tags"),
			PaymentMethods: c.QueryArray("paymentMethods"),
		},
	}

	var ok bool
	if params.Filters.AgeMin, ok = optionalIntQuery(c, "ageMin"); !ok {
		c.JSON(http.StatusBadRequest, utils.Error("ageMin must be an integer"))
		return
	}
	if params.Filters.AgeMax, ok = optionalIntQuery(c, "ageMax"); !ok {
		c.JSON(http.StatusBadRequest, utils.Error("ageMax must be an integer"))
		return
	}
	if params.Filters.DateFrom, ok = optionalDateQuery(c, "dateFrom"); !ok {
		c.JSON(http.StatusBadRequest, utils.Error("dateFrom must be a YYYY-MM-DD date"))
		return
	}
	if params.Filters.DateTo, ok = optionalDateQuery(c, "dateTo"); !ok {
		c.JSON(http.StatusBadRequest, utils.Error("dateTo must be a YYYY-MM-DD date"))
		return
	}

	result, err := sc.service.Query(c.Request.Context(), params)
	if err != nil {
		sc.log.Error("transaction query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.Error("Failed to retrieve transactions"))
		return
	}
	c.JSON(http.StatusOK, utils.Success(result, "Transactions retrieved successfully"))
}

// GetTransaction serves a single transaction by id.
func (sc *SalesController) GetTransaction(c *gin.Context) {
	tx, err := sc.service.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, utils.Error("Transaction not found"))
		return
	}
	if err != nil {
		sc.log.Error("transaction lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.Error("Failed to retrieve transaction"))
		return
	}
	c.JSON(http.StatusOK, utils.Success(tx, "Transaction retrieved successfully"))
}

// GetFilters serves the facet value lists for the filter panel.
func (sc *SalesController) GetFilters(c *gin.Context) {
	options, err := sc.service.GetFilterOptions(c.Request.Context())
	if err != nil {
		sc.log.Error("filter options query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.Error("Failed to retrieve filter options"))
		return
	}
	c.JSON(http.StatusOK, utils.Success(options, "Filter options retrieved successfully"))
}

// GetStats serves the dashboard summary cards.
func (sc *SalesController) GetStats(c *gin.Context) {
	stats, err := sc.service.GetStats(c.Request.Context())
	if err != nil {
		sc.log.Error("stats query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.Error("Failed to retrieve statistics"))
		return
	}
	c.JSON(http.StatusOK, utils.Success(stats, "Statistics retrieved successfully"))
}

func intQuery(c *gin.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return n
}

func optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}

func optionalDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateParamLayout, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
