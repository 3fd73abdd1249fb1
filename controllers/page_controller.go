// controllers/page_controller.go
package controllers

import (
	"net/http"
	"time"

	"habitlog/middlewares"
	"habitlog/models"
	"habitlog/services"

	"github.com/gin-gonic/gin"
)

type PageController struct {
	Staging services.Staging
	Loc     *time.Location
}

func NewPageController(staging services.Staging, loc *time.Location) *PageController {
	return &PageController{Staging: staging, Loc: loc}
}

// ShowForm renders the entry form with the current staged list. Outcome
// banners ride in on query params from the redirect after each action.
func (pc *PageController) ShowForm(c *gin.Context) {
	staged, err := pc.Staging.List(c.Request.Context(), middlewares.SessionID(c))
	if err != nil {
		staged = nil
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Error":         err.Error(),
			"Today":         time.Now().In(pc.Loc).Format("2006-01-02"),
			"ExerciseTypes": models.ExerciseTypes,
			"ActivityTypes": models.ActivityTypes,
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Today":         time.Now().In(pc.Loc).Format("2006-01-02"),
		"ExerciseTypes": models.ExerciseTypes,
		"ActivityTypes": models.ActivityTypes,
		"Staged":        staged,
		"SlotsLeft":     models.MaxActivitySlots - len(staged),
		"Saved":         c.Query("saved"),
		"Error":         c.Query("error"),
	})
}
