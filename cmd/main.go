package main

import (
	"log"

	"habitlog/config"
	"habitlog/controllers"
	"habitlog/routes"
	"habitlog/services"
)

func main() {
	config.Init()

	sheet := services.NewSheetService(
		config.Sheets, config.Drive,
		config.App.SpreadsheetName, config.App.FolderID, config.ServiceAccountEmail,
	)

	var staging services.Staging
	switch config.App.StagingBackend {
	case "sheet":
		staging = services.NewSheetStaging(sheet)
	default:
		staging = services.NewMemoryStaging()
	}

	assembler := services.NewAssemblerService(sheet, config.App.Timezone)
	reports := services.NewReportService(sheet)
	hub := services.NewRealtimeHub()

	r := routes.SetupRouter(routes.Controllers{
		Page:     controllers.NewPageController(staging, config.App.Timezone),
		Entry:    controllers.NewEntryController(assembler, staging, hub),
		Staging:  controllers.NewStagingController(staging),
		Report:   controllers.NewReportController(reports),
		Realtime: controllers.NewRealtimeController(hub),
	})

	if err := r.Run(":" + config.App.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
