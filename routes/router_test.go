package routes_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"habitlog/controllers"
	"habitlog/models"
	"habitlog/routes"
	"habitlog/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu   sync.Mutex
	tabs map[string][][]interface{}
}

func newFakeStore() *fakeStore {
	f := &fakeStore{tabs: make(map[string][][]interface{})}
	header := make([]interface{}, 0, len(models.Header()))
	for _, h := range models.Header() {
		header = append(header, h)
	}
	f.tabs[services.LogTab] = [][]interface{}{header}
	return f
}

func (f *fakeStore) AppendRow(_ context.Context, tab string, values []interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs[tab] = append(f.tabs[tab], values)
	return nil
}

func (f *fakeStore) ReadAll(_ context.Context, tab string) ([][]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.tabs[tab]
	out := make([][]interface{}, len(rows))
	copy(out, rows)
	return out, nil
}

func (f *fakeStore) ClearRange(_ context.Context, rangeRef string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rangeRef == services.StagingRange {
		if rows := f.tabs[services.StagingTab]; len(rows) > 1 {
			f.tabs[services.StagingTab] = rows[:1]
		}
	}
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	staging := services.NewMemoryStaging()
	hub := services.NewRealtimeHub()

	r := routes.SetupRouter(routes.Controllers{
		Page:     controllers.NewPageController(staging, time.UTC),
		Entry:    controllers.NewEntryController(services.NewAssemblerService(store, time.UTC), staging, hub),
		Staging:  controllers.NewStagingController(staging),
		Report:   controllers.NewReportController(services.NewReportService(store)),
		Realtime: controllers.NewRealtimeController(hub),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func getBody(t *testing.T, client *http.Client, u string) string {
	t.Helper()
	resp, err := client.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func postForm(t *testing.T, client *http.Client, u string, form url.Values) string {
	t.Helper()
	resp, err := client.PostForm(u, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode) // after redirect
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestFormPageRenders(t *testing.T) {
	srv, _ := newTestServer(t)
	body := getBody(t, newClient(t), srv.URL+"/")

	assert.Contains(t, body, "Daily Activity Log")
	assert.Contains(t, body, "Exercise 1")
	assert.Contains(t, body, "No activities staged yet")
}

func TestStageActivityShowsUpOnForm(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)

	body := postForm(t, client, srv.URL+"/activities", url.Values{
		"type": {"Walking"}, "mins": {"20"}, "notes": {"park loop"},
	})
	assert.Contains(t, body, "Walking")
	assert.Contains(t, body, "park loop")

	// a different browser session sees nothing
	other := getBody(t, newClient(t), srv.URL+"/")
	assert.Contains(t, other, "No activities staged yet")
}

func TestStageSentinelTypeIsRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	body := postForm(t, newClient(t), srv.URL+"/activities", url.Values{
		"type": {"None"}, "mins": {"5"},
	})
	assert.Contains(t, body, "activity type is required")
}

func TestClearListEmptiesStaging(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)

	for _, typ := range []string{"Walking", "Stretching", "Hobby"} {
		postForm(t, client, srv.URL+"/activities", url.Values{"type": {typ}, "mins": {"10"}})
	}
	postForm(t, client, srv.URL+"/activities/clear", nil)

	resp, err := client.Get(srv.URL + "/activities")
	require.NoError(t, err)
	defer resp.Body.Close()
	var out struct {
		Activities []models.Activity `json:"activities"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out.Activities)
}

func TestSubmitEntryAppendsRowAndClearsStaging(t *testing.T) {
	srv, store := newTestServer(t)
	client := newClient(t)

	postForm(t, client, srv.URL+"/activities", url.Values{
		"type": {"Meditation"}, "mins": {"15"},
	})

	body := postForm(t, client, srv.URL+"/entries", url.Values{
		"date":         {"2024-03-01"},
		"satisfaction": {"4"},
		"neuralgia":    {"1"},
		"ex1_type":     {"Run"},
		"ex1_mins":     {"30"},
		"ex1_miles":    {"3.0"},
		"ex2_type":     {"None"},
		"insights":     {"ok"},
	})
	assert.Contains(t, body, "Successfully saved entry for 2024-03-01")
	assert.Contains(t, body, "No activities staged yet")

	rows, err := store.ReadAll(context.Background(), services.LogTab)
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + one entry

	row := rows[1]
	require.Len(t, row, len(models.Header()))
	assert.Equal(t, "2024-03-01", row[0])
	assert.Equal(t, 4, row[1])
	assert.Equal(t, "Run", row[3])
	assert.Equal(t, "Meditation", row[9])
	assert.Equal(t, 15, row[10])
	assert.Equal(t, "None", row[12]) // second slot padded
}

func TestSubmitEntryValidatesRatings(t *testing.T) {
	srv, store := newTestServer(t)
	body := postForm(t, newClient(t), srv.URL+"/entries", url.Values{
		"date":         {"2024-03-01"},
		"satisfaction": {"9"},
		"neuralgia":    {"1"},
	})
	assert.Contains(t, body, "ratings must be between 1 and 5")

	rows, err := store.ReadAll(context.Background(), services.LogTab)
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}

func TestReportJSONFiltersByMonth(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)

	for _, date := range []string{"2024-03-01", "2024-04-02"} {
		postForm(t, client, srv.URL+"/entries", url.Values{
			"date":         {date},
			"satisfaction": {"4"},
			"neuralgia":    {"1"},
			"ex1_type":     {"Run"},
			"ex1_mins":     {"30"},
		})
	}

	resp, err := client.Get(srv.URL + "/api/report?month=March")
	require.NoError(t, err)
	defer resp.Body.Close()

	var rep services.MonthlyReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "2024-03-01", rep.Rows[0].Date)
	require.Len(t, rep.Exercises, 1)
	assert.Equal(t, "Run", rep.Exercises[0].Type)
}

func TestReportPageRendersTable(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)

	postForm(t, client, srv.URL+"/entries", url.Values{
		"date":         {"2024-03-01"},
		"satisfaction": {"4"},
		"neuralgia":    {"1"},
		"insights":     {"slept well"},
	})

	body := getBody(t, client, srv.URL+"/report?month=March")
	assert.Contains(t, body, "2024-03-01")
	assert.Contains(t, body, "slept well")
	assert.True(t, strings.Contains(body, "/report/charts?month=March"))
}

func submitDay(t *testing.T, client *http.Client, base, date string) {
	t.Helper()
	body := postForm(t, client, base+"/entries", url.Values{
		"date":         {date},
		"satisfaction": {"4"},
		"neuralgia":    {"1"},
	})
	assert.Contains(t, body, "Successfully saved entry for "+date)
}

func TestEntrySavedBroadcastReachesOpenViews(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	submitDay(t, client, srv.URL, "2024-03-01")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "entry.saved")
	assert.Contains(t, string(msg), "2024-03-01")
}

func TestDepartedViewDoesNotBlockLaterSubmissions(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newClient(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// give the server's read loop a moment to unregister
	time.Sleep(50 * time.Millisecond)

	submitDay(t, client, srv.URL, "2024-03-01")
	submitDay(t, client, srv.URL, "2024-03-02")
}
