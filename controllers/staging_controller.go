// controllers/staging_controller.go
package controllers

import (
	"net/http"

	"habitlog/middlewares"
	"habitlog/models"
	"habitlog/services"

	"github.com/gin-gonic/gin"
)

type StagingController struct {
	Staging services.Staging
}

func NewStagingController(staging services.Staging) *StagingController {
	return &StagingController{Staging: staging}
}

// AddActivity stages one activity for the current session's pending day.
func (sc *StagingController) AddActivity(c *gin.Context) {
	a := models.Activity{
		Type:  c.PostForm("type"),
		Mins:  atoi(c.PostForm("mins")),
		Notes: c.PostForm("notes"),
	}
	if err := sc.Staging.Add(c.Request.Context(), middlewares.SessionID(c), a); err != nil {
		redirectError(c, err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ListActivities returns the staged list as JSON.
func (sc *StagingController) ListActivities(c *gin.Context) {
	staged, err := sc.Staging.List(c.Request.Context(), middlewares.SessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if staged == nil {
		staged = []models.Activity{}
	}
	c.JSON(http.StatusOK, gin.H{"activities": staged})
}

// ClearActivities empties the staged list without submitting the day.
func (sc *StagingController) ClearActivities(c *gin.Context) {
	if err := sc.Staging.Clear(c.Request.Context(), middlewares.SessionID(c)); err != nil {
		redirectError(c, err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
