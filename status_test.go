package paladins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smoketree/paladins-go/internal/testutil"
)

const fixtureServerStatus = `[
	{"environment":"live","platform":"pc","status":"UP","limited_access":false,"version":"5.10"},
	{"environment":"live","platform":"ps4","status":"UP","limited_access":true,"version":"5.10"},
	{"environment":"live","platform":"xbox","status":"DOWN","limited_access":false,"version":"5.10"},
	{"environment":"pts","platform":"","status":"UP","limited_access":false,"version":"5.11"}
]`

// fixtureStatusSummary is a statuspage.io summary with a Paladins group, one
// unrelated group, and an incident touching the PS4 component.
func fixtureStatusSummary(t *testing.T) string {
	t.Helper()
	return mustJSON(t, map[string]any{
		"page": map[string]any{"updated_at": "2023-10-11T11:58:00Z"},
		"components": []map[string]any{
			{"id": "grp1", "name": "Paladins", "status": "partial_outage", "group": true},
			{"id": "grp2", "name": "Smite", "status": "operational", "group": true},
			{"id": "c-pc", "name": "PC", "status": "operational", "group_id": "grp1"},
			{"id": "c-ps4", "name": "PS4", "status": "partial_outage", "group_id": "grp1"},
			{"id": "c-xbox", "name": "Xbox", "status": "major_outage", "group_id": "grp1"},
			{"id": "c-smite", "name": "PC", "status": "operational", "group_id": "grp2"},
		},
		"incidents": []map[string]any{
			{
				"name":       "PS4 login issues",
				"status":     "investigating",
				"impact":     "minor",
				"updated_at": "2023-10-11T11:30:00Z",
				"components": []map[string]any{{"id": "c-ps4"}},
			},
			{
				"name":       "Smite servers down",
				"status":     "identified",
				"impact":     "major",
				"updated_at": "2023-10-11T11:00:00Z",
				"components": []map[string]any{{"id": "c-smite"}},
			},
		},
		"scheduled_maintenances": []map[string]any{},
	})
}

func serveStatusPage(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

func respondSummary(t *testing.T, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/summary.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestGetServerStatusMerged(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("gethirezserverstatus", testutil.Respond(fixtureServerStatus))
	pageURL := serveStatusPage(t, respondSummary(t, fixtureStatusSummary(t)))
	client := newTestClient(t, api, WithStatusPageURL(pageURL))

	status, err := client.GetServerStatus(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"pc", "ps4", "xbox", "pts"}, status.Platforms)

	pc := status.Statuses["pc"]
	assert.True(t, pc.Up)
	assert.False(t, pc.LimitedAccess)
	assert.Equal(t, "5.10", pc.Version)
	assert.Equal(t, "PC", pc.Component.Name)
	assert.True(t, pc.Component.Operational())

	ps4 := status.Statuses["ps4"]
	assert.True(t, ps4.Up)
	assert.True(t, ps4.LimitedAccess)
	assert.Equal(t, "partial_outage", ps4.Component.Status)

	// the test server reports through the environment field
	pts := status.Statuses["pts"]
	assert.Equal(t, "pts", pts.Platform)
	assert.Equal(t, "5.11", pts.Version)

	assert.False(t, status.AllUp())
	assert.True(t, status.LimitedAccess())

	// only incidents touching the group's own components survive
	require.Len(t, status.Incidents, 1)
	assert.Equal(t, "PS4 login issues", status.Incidents[0].Name)
	assert.Equal(t, []string{"PS4"}, status.Incidents[0].Components)
}

func TestGetServerStatusCached(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("gethirezserverstatus", testutil.Respond(fixtureServerStatus))
	pageURL := serveStatusPage(t, respondSummary(t, fixtureStatusSummary(t)))
	client := newTestClient(t, api, WithStatusPageURL(pageURL))
	now := testTime
	client.now = func() time.Time { return now }
	ctx := context.Background()

	first, err := client.GetServerStatus(ctx, false)
	require.NoError(t, err)

	// within a minute the snapshot is served from memory
	now = testTime.Add(30 * time.Second)
	again, err := client.GetServerStatus(ctx, false)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, api.Calls("gethirezserverstatus"))

	// a minute later it refetches
	now = testTime.Add(2 * time.Minute)
	refreshed, err := client.GetServerStatus(ctx, false)
	require.NoError(t, err)
	assert.NotSame(t, first, refreshed)
	assert.Equal(t, 2, api.Calls("gethirezserverstatus"))

	// forceRefresh bypasses a fresh snapshot
	_, err = client.GetServerStatus(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 3, api.Calls("gethirezserverstatus"))
}

func TestGetServerStatusAPIDownPageUp(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("gethirezserverstatus", testutil.RespondStatus(http.StatusServiceUnavailable))
	pageURL := serveStatusPage(t, respondSummary(t, fixtureStatusSummary(t)))
	client := newTestClient(t, api, WithStatusPageURL(pageURL))

	status, err := client.GetServerStatus(context.Background(), false)
	require.NoError(t, err)

	// platform entries are synthesized off the page components
	assert.Equal(t, []string{"pc", "ps4", "xbox"}, status.Platforms)
	assert.True(t, status.Statuses["pc"].Up)
	assert.False(t, status.Statuses["ps4"].Up)
	assert.False(t, status.Statuses["xbox"].Up)
	assert.Empty(t, status.Statuses["pc"].Version)
	require.Len(t, status.Incidents, 1)
}

func TestGetServerStatusBothDown(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("gethirezserverstatus", testutil.RespondStatus(http.StatusServiceUnavailable))
	pageURL := serveStatusPage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newTestClient(t, api, WithStatusPageURL(pageURL))

	_, err := client.GetServerStatus(context.Background(), false)
	assert.True(t, IsNotFound(err))
}

func TestGetServerStatusServesStaleOnFailure(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("gethirezserverstatus", testutil.Respond(fixtureServerStatus))
	pageBody := fixtureStatusSummary(t)
	pageDown := false
	pageURL := serveStatusPage(t, func(w http.ResponseWriter, r *http.Request) {
		if pageDown {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(pageBody))
	})
	client := newTestClient(t, api, WithStatusPageURL(pageURL))
	ctx := context.Background()

	first, err := client.GetServerStatus(ctx, false)
	require.NoError(t, err)

	// both sources fail afterwards; the stored snapshot is served
	api.Handle("gethirezserverstatus", testutil.RespondStatus(http.StatusServiceUnavailable))
	pageDown = true
	stale, err := client.GetServerStatus(ctx, true)
	require.NoError(t, err)
	assert.Same(t, first, stale)
}

func TestGetServerStatusPageUnavailable(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("gethirezserverstatus", testutil.Respond(fixtureServerStatus))
	pageURL := serveStatusPage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newTestClient(t, api, WithStatusPageURL(pageURL))

	// the API status alone still makes a full snapshot, minus page extras
	status, err := client.GetServerStatus(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, status.Statuses["pc"].Up)
	assert.Empty(t, status.Statuses["pc"].Component.Name)
	assert.Empty(t, status.Incidents)
}

func TestServerStatusEqual(t *testing.T) {
	build := func(pcUp, ps4Limited bool) *ServerStatus {
		return &ServerStatus{
			Statuses: map[string]PlatformStatus{
				"pc":  {Platform: "pc", Up: pcUp, Version: "5.10"},
				"ps4": {Platform: "ps4", Up: true, LimitedAccess: ps4Limited},
			},
			Platforms: []string{"pc", "ps4"},
		}
	}

	status := build(true, false)
	assert.False(t, status.Equal(nil))
	assert.True(t, status.Equal(build(true, false)))
	assert.False(t, status.Equal(build(false, false)))
	assert.False(t, status.Equal(build(true, true)))

	// versions and timestamps don't participate
	other := build(true, false)
	entry := other.Statuses["pc"]
	entry.Version = "5.11"
	other.Statuses["pc"] = entry
	other.Timestamp = testTime
	assert.True(t, status.Equal(other))

	// a platform disappearing breaks equality
	delete(other.Statuses, "ps4")
	assert.False(t, status.Equal(other))
}

func TestServerStatusPTSDoesNotCount(t *testing.T) {
	status := &ServerStatus{
		Statuses: map[string]PlatformStatus{
			"pc":  {Platform: "pc", Up: true},
			"pts": {Platform: "pts", Up: false, LimitedAccess: true},
		},
	}
	assert.True(t, status.AllUp())
	assert.False(t, status.LimitedAccess())
}
