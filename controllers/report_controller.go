// controllers/report_controller.go
package controllers

import (
	"net/http"
	"time"

	"habitlog/services"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

func selectedMonth(c *gin.Context) string {
	return c.DefaultQuery("month", time.Now().Month().String())
}

// ShowReport renders the month's raw table; the charts load in a frame
// from /report/charts so both stay on one page.
func (rc *ReportController) ShowReport(c *gin.Context) {
	month := selectedMonth(c)
	rep, err := rc.Reports.Monthly(c.Request.Context(), month)
	if err != nil {
		c.HTML(http.StatusOK, "report.html", gin.H{
			"Month":  month,
			"Months": monthNames,
			"Error":  err.Error(),
		})
		return
	}
	c.HTML(http.StatusOK, "report.html", gin.H{
		"Month":  month,
		"Months": monthNames,
		"Report": rep,
	})
}

// ShowCharts renders the bar and line charts for the selected month.
func (rc *ReportController) ShowCharts(c *gin.Context) {
	month := selectedMonth(c)
	rep, err := rc.Reports.Monthly(c.Request.Context(), month)
	if err != nil {
		c.String(http.StatusInternalServerError, "charts unavailable: %v", err)
		return
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Minutes by activity for " + month}))
	cats := make([]string, 0, len(rep.MinutesByCategory))
	mins := make([]opts.BarData, 0, len(rep.MinutesByCategory))
	for _, cm := range rep.MinutesByCategory {
		cats = append(cats, cm.Category)
		mins = append(mins, opts.BarData{Value: cm.Mins})
	}
	bar.SetXAxis(cats).AddSeries("Minutes", mins)

	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Daily ratings for " + month}))
	dates := make([]string, 0, len(rep.Ratings))
	sat := make([]opts.LineData, 0, len(rep.Ratings))
	neu := make([]opts.LineData, 0, len(rep.Ratings))
	for _, r := range rep.Ratings {
		dates = append(dates, r.Date)
		sat = append(sat, opts.LineData{Value: r.Satisfaction})
		neu = append(neu, opts.LineData{Value: r.Neuralgia})
	}
	line.SetXAxis(dates).
		AddSeries("Satisfaction", sat).
		AddSeries("Neuralgia", neu)

	page := components.NewPage()
	page.AddCharts(bar, line)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := page.Render(c.Writer); err != nil {
		c.String(http.StatusInternalServerError, "chart render failed: %v", err)
	}
}

// GetReportJSON serves the same long-form data the charts use.
func (rc *ReportController) GetReportJSON(c *gin.Context) {
	rep, err := rc.Reports.Monthly(c.Request.Context(), selectedMonth(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}
