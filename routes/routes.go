package routes

import (
	"embed"
	"html/template"

	"habitlog/controllers"
	"habitlog/middlewares"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Controllers struct {
	Page     *controllers.PageController
	Entry    *controllers.EntryController
	Staging  *controllers.StagingController
	Report   *controllers.ReportController
	Realtime *controllers.RealtimeController
}

func SetupRouter(cs Controllers) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))
	r.Use(middlewares.SessionMiddleware())

	r.GET("/", cs.Page.ShowForm)
	r.POST("/entries", cs.Entry.CreateEntry)

	act := r.Group("/activities")
	{
		act.POST("", cs.Staging.AddActivity)
		act.GET("", cs.Staging.ListActivities)
		act.POST("/clear", cs.Staging.ClearActivities)
	}

	rep := r.Group("/report")
	{
		rep.GET("", cs.Report.ShowReport)
		rep.GET("/charts", cs.Report.ShowCharts)
	}
	r.GET("/api/report", cs.Report.GetReportJSON)

	r.GET("/ws", cs.Realtime.EntriesWS)

	return r
}
