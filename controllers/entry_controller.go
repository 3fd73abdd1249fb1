// controllers/entry_controller.go
package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"habitlog/middlewares"
	"habitlog/models"
	"habitlog/services"

	"github.com/gin-gonic/gin"
)

type EntryController struct {
	Assembler *services.AssemblerService
	Staging   services.Staging
	RT        *services.RealtimeHub
}

func NewEntryController(asm *services.AssemblerService, staging services.Staging, rt *services.RealtimeHub) *EntryController {
	return &EntryController{Assembler: asm, Staging: staging, RT: rt}
}

// CreateEntry handles the day's final submission: fold staged activities
// into the row, append it, clear staging, notify open report views.
func (ec *EntryController) CreateEntry(c *gin.Context) {
	sid := middlewares.SessionID(c)

	entry := models.DailyLogEntry{
		Date:         c.PostForm("date"),
		Satisfaction: atoi(c.DefaultPostForm("satisfaction", "3")),
		Neuralgia:    atoi(c.DefaultPostForm("neuralgia", "1")),
		Exercise1:    formExercise(c, "ex1"),
		Exercise2:    formExercise(c, "ex2"),
		Insights:     c.PostForm("insights"),
	}

	if entry.Date == "" {
		redirectError(c, "date is required")
		return
	}
	if entry.Satisfaction < 1 || entry.Satisfaction > 5 || entry.Neuralgia < 1 || entry.Neuralgia > 5 {
		redirectError(c, "ratings must be between 1 and 5")
		return
	}

	staged, err := ec.Staging.List(c.Request.Context(), sid)
	if err != nil {
		redirectError(c, err.Error())
		return
	}

	if err := ec.Assembler.Submit(c.Request.Context(), entry, staged); err != nil {
		redirectError(c, err.Error())
		return
	}

	// The day is persisted; staging is spent.
	if err := ec.Staging.Clear(c.Request.Context(), sid); err != nil {
		redirectError(c, err.Error())
		return
	}

	ec.RT.BroadcastEntrySaved(entry.Date)
	c.Redirect(http.StatusSeeOther, "/?saved="+url.QueryEscape(entry.Date))
}

func formExercise(c *gin.Context, prefix string) models.Exercise {
	return models.Exercise{
		Type:  c.DefaultPostForm(prefix+"_type", "None"),
		Mins:  atof(c.PostForm(prefix + "_mins")),
		Miles: atof(c.PostForm(prefix + "_miles")),
	}
}

func redirectError(c *gin.Context, msg string) {
	c.Redirect(http.StatusSeeOther, "/?error="+url.QueryEscape(msg))
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
