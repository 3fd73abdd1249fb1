package config

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type AppConfig struct {
	Port            string
	SpreadsheetName string
	FolderID        string
	StagingBackend  string
	Timezone        *time.Location
}

var (
	Sheets *sheets.Service
	Drive  *drive.Service

	// ServiceAccountEmail is read from the credentials file and used to
	// share newly created spreadsheets with the service identity.
	ServiceAccountEmail string

	App AppConfig
)

// Init loads .env and builds the shared Google clients. Fatal on boot
// failures; request-path errors never come through here.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	App.Port = getenv("PORT", "8080")
	App.SpreadsheetName = getenv("SPREADSHEET_NAME", "Daily Activity Log")
	App.FolderID = os.Getenv("DRIVE_FOLDER_ID")
	App.StagingBackend = getenv("STAGING_BACKEND", "memory")

	tz := getenv("TIMEZONE", "America/New_York")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", tz, err)
	}
	App.Timezone = loc

	credFile := getenv("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	raw, err := os.ReadFile(credFile)
	if err != nil {
		log.Fatalf("Unable to read credentials file %s: %v", credFile, err)
	}
	var sa struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(raw, &sa); err != nil {
		log.Fatalf("Malformed credentials file %s: %v", credFile, err)
	}
	ServiceAccountEmail = sa.ClientEmail

	ctx := context.Background()
	opts := []option.ClientOption{
		option.WithCredentialsJSON(raw),
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveScope),
	}

	Sheets, err = sheets.NewService(ctx, opts...)
	if err != nil {
		log.Fatalf("Failed to create Sheets client: %v", err)
	}
	Drive, err = drive.NewService(ctx, opts...)
	if err != nil {
		log.Fatalf("Failed to create Drive client: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
