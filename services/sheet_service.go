package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"habitlog/models"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

const (
	// LogTab is the append-only daily log, StagingTab the scratch buffer
	// for pending activities.
	LogTab     = "Sheet1"
	StagingTab = "Temp_Activities"

	// StagingRange covers the ten staging rows below the tab header.
	StagingRange = StagingTab + "!A2:C11"
)

var StagingHeader = []string{"Activity", "Mins", "Notes"}

// ErrSpreadsheetNotFound reports that no spreadsheet with the configured
// name exists yet. OpenOrCreate handles it by creating one.
var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

// ConnectionError wraps a failed call to the spreadsheet backend. These are
// surfaced to the user and never retried.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("spreadsheet connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// RowStore is the contract the rest of the app has with the spreadsheet:
// append a row, read a tab, blank a range. SheetService implements it
// against Google Sheets; tests implement it in memory.
type RowStore interface {
	AppendRow(ctx context.Context, tab string, values []interface{}) error
	ReadAll(ctx context.Context, tab string) ([][]interface{}, error)
	ClearRange(ctx context.Context, rangeRef string) error
}

// SheetService wraps the Sheets and Drive APIs for the one spreadsheet the
// app owns. The resolved spreadsheet id is cached for the life of the
// process; row data never is.
type SheetService struct {
	sheets   *sheets.Service
	drive    *drive.Service
	name     string
	folderID string
	saEmail  string

	mu            sync.Mutex
	spreadsheetID string
}

func NewSheetService(sheetsSvc *sheets.Service, driveSvc *drive.Service, name, folderID, saEmail string) *SheetService {
	return &SheetService{
		sheets:   sheetsSvc,
		drive:    driveSvc,
		name:     name,
		folderID: folderID,
		saEmail:  saEmail,
	}
}

// OpenOrCreate resolves the spreadsheet by name, creating it on first use
// with the fixed header row and the staging tab. Idempotent; safe to call
// before every operation.
func (s *SheetService) OpenOrCreate(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spreadsheetID != "" {
		return s.spreadsheetID, nil
	}

	id, err := s.find(ctx)
	if errors.Is(err, ErrSpreadsheetNotFound) {
		id, err = s.create(ctx)
	}
	if err != nil {
		return "", err
	}

	// The staging tab is ensured on every resolve, not just on create:
	// spreadsheets made by earlier revisions predate Temp_Activities.
	if err := s.ensureStagingTab(ctx, id); err != nil {
		return "", err
	}

	s.spreadsheetID = id
	return id, nil
}

func (s *SheetService) find(ctx context.Context) (string, error) {
	q := fmt.Sprintf("name = %q and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", s.name)
	list, err := s.drive.Files.List().Q(q).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", &ConnectionError{Op: "find", Err: err}
	}
	if len(list.Files) == 0 {
		return "", ErrSpreadsheetNotFound
	}
	return list.Files[0].Id, nil
}

func (s *SheetService) create(ctx context.Context) (string, error) {
	f := &drive.File{
		Name:     s.name,
		MimeType: "application/vnd.google-apps.spreadsheet",
	}
	if s.folderID != "" {
		f.Parents = []string{s.folderID}
	}
	created, err := s.drive.Files.Create(f).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", &ConnectionError{Op: "create", Err: err}
	}
	id := created.Id

	// Grant the service identity edit access so subsequent writes succeed.
	if s.saEmail != "" {
		perm := &drive.Permission{Type: "user", Role: "writer", EmailAddress: s.saEmail}
		if _, err := s.drive.Permissions.Create(id, perm).Context(ctx).Do(); err != nil {
			return "", &ConnectionError{Op: "share", Err: err}
		}
	}

	if err := s.writeHeader(ctx, id, LogTab, models.Header()); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SheetService) writeHeader(ctx context.Context, id, tab string, header []string) error {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.sheets.Spreadsheets.Values.Update(id, tab+"!A1", vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return &ConnectionError{Op: "write header", Err: err}
	}
	return nil
}

func (s *SheetService) ensureStagingTab(ctx context.Context, id string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: StagingTab},
			},
		}},
	}
	if _, err := s.sheets.Spreadsheets.BatchUpdate(id, req).Context(ctx).Do(); err != nil {
		// The API rejects a duplicate title with a 400; that means the tab
		// is already there. Any other failure surfaces.
		var ge *googleapi.Error
		if errors.As(err, &ge) && ge.Code == 400 && strings.Contains(ge.Message, "already exists") {
			return nil
		}
		return &ConnectionError{Op: "add staging tab", Err: err}
	}
	return s.writeHeader(ctx, id, StagingTab, StagingHeader)
}

func (s *SheetService) AppendRow(ctx context.Context, tab string, values []interface{}) error {
	id, err := s.OpenOrCreate(ctx)
	if err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	_, err = s.sheets.Spreadsheets.Values.Append(id, tab+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return &ConnectionError{Op: "append", Err: err}
	}
	return nil
}

// ReadAll returns every row of the tab including the header. An empty tab
// returns no rows; that is the valid "no data yet" state, not an error.
func (s *SheetService) ReadAll(ctx context.Context, tab string) ([][]interface{}, error) {
	id, err := s.OpenOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := s.sheets.Spreadsheets.Values.Get(id, tab).Context(ctx).Do()
	if err != nil {
		return nil, &ConnectionError{Op: "read", Err: err}
	}
	return resp.Values, nil
}

func (s *SheetService) ClearRange(ctx context.Context, rangeRef string) error {
	id, err := s.OpenOrCreate(ctx)
	if err != nil {
		return err
	}
	_, err = s.sheets.Spreadsheets.Values.Clear(id, rangeRef, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return &ConnectionError{Op: "clear", Err: err}
	}
	return nil
}
