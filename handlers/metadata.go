package handlers

import (
	"net/http"

	"aqi-prediction-api/services"

	"github.com/gin-gonic/gin"
)

type MetadataHandler struct {
	svc *services.PredictionService
}

func NewMetadataHandler(svc *services.PredictionService) *MetadataHandler {
	return &MetadataHandler{svc: svc}
}

// GetMetadata returns the full known vocabulary for client-side form
// population. Served straight from the in-memory vocabularies, which
// never change for the process lifetime.
func (h *MetadataHandler) GetMetadata(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"states":     h.svc.States().Classes(),
		"locations":  h.svc.Locations().Classes(),
		"area_types": h.svc.AreaTypes().Classes(),
	})
}
