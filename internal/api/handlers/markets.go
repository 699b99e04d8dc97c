package handlers

import (
	"net/http"

	"ercot-lmp-viewer/internal/api/models"
	"ercot-lmp-viewer/internal/model"

	"github.com/gin-gonic/gin"
)

// ListMarkets handles GET /api/v1/markets
func ListMarkets(c *gin.Context) {
	markets := []models.MarketInfo{
		{
			ID:          string(model.SelectDAM),
			Name:        "Day-Ahead Market",
			Description: "Hourly prices settled the day before delivery.",
		},
		{
			ID:          string(model.SelectRTM),
			Name:        "Real-Time Market",
			Description: "Prices settled near real time, averaged to hourly.",
		},
		{
			ID:          string(model.SelectBoth),
			Name:        "Day-Ahead and Real-Time",
			Description: "Both markets on a shared hourly axis for comparison.",
		},
	}
	c.JSON(http.StatusOK, gin.H{"markets": markets})
}
