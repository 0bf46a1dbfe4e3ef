package handlers

import (
	"context"
	"database/sql"
	"log"
	"math"
	"net/http"
	"time"

	"aqi-prediction-api/models"
	"aqi-prediction-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db    *gorm.DB
	cache *services.CacheService
}

func NewDashboardHandler(db *gorm.DB, cache *services.CacheService) *DashboardHandler {
	return &DashboardHandler{db: db, cache: cache}
}

type DashboardStats struct {
	Predictions     int64 `json:"predictions"`
	CitiesMonitored int64 `json:"citiesMonitored"`
	AlertsIssued    int64 `json:"alertsIssued"`
}

type DashboardData struct {
	LatestAQI   float64        `json:"latestAQI"`
	Category    string         `json:"category"`
	HealthRisk  string         `json:"healthRisk"`
	LastUpdated *string        `json:"lastUpdated"`
	Trend       float64        `json:"trend"`
	Stats       DashboardStats `json:"stats"`
}

type DashboardResponse struct {
	Success bool          `json:"success"`
	Data    DashboardData `json:"data"`
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var cached DashboardResponse
	if err := h.cache.Get(ctx, services.DashboardCacheKey, &cached); err == nil && h.summaryCurrent(ctx, cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	resp, err := h.buildSummary(ctx)
	if err != nil {
		log.Printf("dashboard query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}

	// Synchronous write: a detached write could land after a newer
	// invalidation and pin a stale summary for the full TTL.
	if err := h.cache.Set(ctx, services.DashboardCacheKey, resp, 30*time.Second); err != nil {
		log.Printf("dashboard cache write failed: %v", err)
	}

	c.JSON(http.StatusOK, resp)
}

// summaryCurrent reports whether a cached summary still matches the
// stored row count. A summary written concurrently with a prediction
// can survive the invalidation in the prediction pipeline, so the
// count is always re-checked against the store before serving from
// cache; anything heavier than the count still comes from the cache.
func (h *DashboardHandler) summaryCurrent(ctx context.Context, cached DashboardResponse) bool {
	if !cached.Success {
		return false
	}
	var total int64
	if err := h.db.WithContext(ctx).Model(&models.Prediction{}).Count(&total).Error; err != nil {
		return false
	}
	return cached.Data.Stats.Predictions == total
}

func (h *DashboardHandler) buildSummary(ctx context.Context) (DashboardResponse, error) {
	db := h.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Prediction{}).Count(&total).Error; err != nil {
		return DashboardResponse{}, err
	}

	if total == 0 {
		return DashboardResponse{
			Success: true,
			Data: DashboardData{
				Category:   "Unknown",
				HealthRisk: "No data",
				Stats:      DashboardStats{},
			},
		}, nil
	}

	var latest models.Prediction
	if err := db.Order("created_at DESC").First(&latest).Error; err != nil {
		return DashboardResponse{}, err
	}

	var cities int64
	if err := db.Model(&models.Prediction{}).Distinct("location").Count(&cities).Error; err != nil {
		return DashboardResponse{}, err
	}

	now := time.Now().UTC()
	lastAvg, err := h.windowAvg(db, now.AddDate(0, 0, -7), now)
	if err != nil {
		return DashboardResponse{}, err
	}
	prevAvg, err := h.windowAvg(db, now.AddDate(0, 0, -14), now.AddDate(0, 0, -7))
	if err != nil {
		return DashboardResponse{}, err
	}

	lastUpdated := latest.CreatedAt.UTC().Format(time.RFC3339)

	return DashboardResponse{
		Success: true,
		Data: DashboardData{
			LatestAQI:   round2(latest.PredictedAQI),
			Category:    latest.Category,
			HealthRisk:  "Based on latest AQI prediction",
			LastUpdated: &lastUpdated,
			Trend:       computeTrend(lastAvg, prevAvg),
			Stats: DashboardStats{
				Predictions:     total,
				CitiesMonitored: cities,
				AlertsIssued:    total,
			},
		},
	}, nil
}

// windowAvg returns the average predicted AQI over [from, to), or nil
// when the window holds no rows.
func (h *DashboardHandler) windowAvg(db *gorm.DB, from, to time.Time) (*float64, error) {
	var avg sql.NullFloat64
	err := db.Model(&models.Prediction{}).
		Select("AVG(predicted_aqi)").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&avg).Error
	if err != nil || !avg.Valid {
		return nil, err
	}
	v := avg.Float64
	return &v, nil
}

// computeTrend is the week-over-week change of the average AQI as a
// percentage, rounded to 2 decimal places. It is 0 whenever either
// window is empty or the previous average is 0.
func computeTrend(lastAvg, prevAvg *float64) float64 {
	if lastAvg == nil || prevAvg == nil || *prevAvg == 0 {
		return 0
	}
	return round2((*prevAvg - *lastAvg) / *prevAvg * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
