package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Bajrangipanjiyar/studio/internal/models"
)

type DashboardStats struct {
	TotalOrders     int64
	RunningOrders   int64
	CompletedOrders int64
}

func (s *Store) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	stats.TotalOrders, err = s.bookings.CountDocuments(ctx, bson.M{})
	if err != nil {
		return stats, fmt.Errorf("failed to count bookings: %w", err)
	}

	stats.RunningOrders, err = s.bookings.CountDocuments(ctx, bson.M{"status": models.StatusRunning})
	if err != nil {
		return stats, fmt.Errorf("failed to count running bookings: %w", err)
	}

	stats.CompletedOrders, err = s.bookings.CountDocuments(ctx, bson.M{"status": models.StatusCompleted})
	if err != nil {
		return stats, fmt.Errorf("failed to count completed bookings: %w", err)
	}

	return stats, nil
}
