package utils

import (
	"context"
	"time"

	"go.uber.org/zap"

	"backend/models"
)

type StatsProvider interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}

// LogDailyStats is run by the scheduler once a day so the ops log carries a
// snapshot of the dataset the service is answering from.
func LogDailyStats(svc StatsProvider, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := svc.GetStats(ctx)
	if err != nil {
		log.Warn("daily stats snapshot failed", zap.Error(err))
		return
	}

	log.Info("daily sales snapshot",
		zap.Int64("transactions", stats.TotalTransactions),
		zap.Float64("revenue", stats.TotalRevenue),
		zap.Float64("averageOrder", stats.AverageOrderValue),
		zap.Int64("quantitySold", stats.TotalQuantitySold))
}
