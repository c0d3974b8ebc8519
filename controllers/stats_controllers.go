package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/services"
	"github.com/restsoft-app/restsoft-pos/utils"
)

type StatsController struct {
	App *services.App
}

func NewStatsController(app *services.App) *StatsController {
	return &StatsController{App: app}
}

// GetStats -> bucketed revenue for one chart period, optionally
// narrowed to one channel
func (sc *StatsController) GetStats(c *gin.Context) {
	period := c.DefaultQuery("period", services.PeriodDay)
	origin := c.Query("origin")

	report, err := sc.App.Stats(c.Request.Context(), period, origin)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales statistics", report)
}
