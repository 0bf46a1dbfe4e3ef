package handlers

import (
	"log"
	"net/http"

	"aqi-prediction-api/services"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	svc *services.PredictionService
}

func NewPredictionHandler(svc *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{svc: svc}
}

// Numeric fields are pointers so an explicit 0 satisfies the required
// binding.
type PredictRequest struct {
	State    string   `json:"state" binding:"required"`
	Location string   `json:"location" binding:"required"`
	AreaType string   `json:"area_type" binding:"required"`
	SO2      *float64 `json:"so2" binding:"required"`
	NO2      *float64 `json:"no2" binding:"required"`
	RSPM     *float64 `json:"rspm" binding:"required"`
}

type PredictResponse struct {
	PredictedAQI float64 `json:"predicted_aqi"`
	AQICategory  string  `json:"aqi_category"`
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.svc.Predict(c.Request.Context(), services.PredictionInput{
		State:    req.State,
		Location: req.Location,
		AreaType: req.AreaType,
		SO2:      *req.SO2,
		NO2:      *req.NO2,
		RSPM:     *req.RSPM,
	})
	if err != nil {
		// Internal detail stays in the logs, never in the response.
		log.Printf("predict failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	c.JSON(http.StatusOK, PredictResponse{
		PredictedAQI: record.PredictedAQI,
		AQICategory:  record.Category,
	})
}
