package database

import (
	"context"
	"time"
)

type PoolStats struct {
	MaxOpenConns      int           `json:"max_open_connections"`
	OpenConns         int           `json:"open_connections"`
	InUse             int           `json:"in_use"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed"`
}

type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
	Stats        PoolStats     `json:"stats"`
	Timestamp    time.Time     `json:"timestamp"`
}

func (db *DB) GetPoolStats() PoolStats {
	stats := db.Stats()
	return PoolStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}

// Health pings the database with a short deadline and reports pool state.
func (db *DB) Health(ctx context.Context) HealthCheck {
	start := time.Now()
	check := HealthCheck{
		Status:    "healthy",
		Stats:     db.GetPoolStats(),
		Timestamp: start,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		check.Status = "unhealthy"
		check.Error = err.Error()
	}
	check.ResponseTime = time.Since(start)

	return check
}
