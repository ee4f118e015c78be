package board_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ward28/wardbot/internal/board"
	"github.com/ward28/wardbot/internal/ward"
)

// Friday before Sunday 2024-06-09.
var fetchNow = time.Date(2024, time.June, 7, 12, 0, 0, 0, time.UTC)

const (
	membersBoardID  = "board-1"
	interviewListID = "list-interviews"
	extendListID    = "list-extend"
)

// newTrelloServer serves a canned members board and two card lists, and
// records the credentials of the last request.
func newTrelloServer(t *testing.T) (*httptest.Server, *string) {
	t.Helper()

	var lastKeyToken string

	mux := http.NewServeMux()

	respond := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux.HandleFunc("/boards/"+membersBoardID+"/members", func(w http.ResponseWriter, r *http.Request) {
		lastKeyToken = r.URL.Query().Get("key") + ":" + r.URL.Query().Get("token")
		respond(w, []map[string]string{
			{"id": "M1", "fullName": "Alice Anderson"},
			{"id": "M2", "fullName": "Bob Brown"},
		})
	})

	mux.HandleFunc("/lists/"+interviewListID+"/cards", func(w http.ResponseWriter, r *http.Request) {
		lastKeyToken = r.URL.Query().Get("key") + ":" + r.URL.Query().Get("token")
		respond(w, []map[string]any{
			{
				"id":        "c1",
				"name":      "Carol Clark",
				"due":       "2024-06-09T21:40:00.000Z",
				"idMembers": []string{"M1"},
				"labels":    []map[string]string{{"id": "l1", "name": "Temple Recommend"}},
			},
			{
				// Due the following week, must be filtered out.
				"id":        "c2",
				"name":      "Dan Duke",
				"due":       "2024-06-16T20:00:00.000Z",
				"idMembers": []string{"M1"},
			},
			{
				// No assignee, must be filtered out.
				"id":        "c3",
				"name":      "Eve Ellis",
				"due":       "2024-06-09T20:00:00.000Z",
				"idMembers": []string{},
			},
			{
				// Earlier the same day, sorts first.
				"id":        "c4",
				"name":      "Frank Field",
				"due":       "2024-06-09T19:30:00.000Z",
				"idMembers": []string{"M1"},
				"labels":    []map[string]string{{"id": "l2", "name": "Youth Interview"}},
			},
		})
	})

	mux.HandleFunc("/lists/"+extendListID+"/cards", func(w http.ResponseWriter, r *http.Request) {
		respond(w, []map[string]any{
			{
				"id":        "c5",
				"name":      "Grace Green as Organist",
				"due":       "2024-06-09T22:10:00.000Z",
				"idMembers": []string{"M2"},
			},
			{
				// Title not in the expected form, must be skipped.
				"id":        "c6",
				"name":      "Unlabeled card",
				"due":       "2024-06-09T22:20:00.000Z",
				"idMembers": []string{"M2"},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, &lastKeyToken
}

func TestFetcherGroupedByMember(t *testing.T) {
	t.Parallel()

	server, lastKeyToken := newTrelloServer(t)

	client := board.NewClient("the-key", "the-token", board.WithBaseURL(server.URL))
	fetcher := board.NewFetcher(
		client,
		membersBoardID,
		[]string{interviewListID},
		[]board.CallingList{{ID: extendListID, Stage: ward.StageNeedsCallingExtended}},
		board.WithFetcherClock(func() time.Time { return fetchNow }),
	)

	grouped, err := fetcher.GroupedByMember(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "the-key:the-token", *lastKeyToken)

	require.Len(t, grouped, 2)

	m1 := grouped["M1"]
	require.Len(t, m1, 2, "off-Sunday and unassigned cards are dropped")
	assert.Equal(t, "Frank Field", m1[0].Name, "groups sort by due time")
	assert.Equal(t, "Carol Clark", m1[1].Name)
	assert.Equal(t, board.KindInterview, m1[0].Kind)
	assert.Equal(t, "Temple Recommend", m1[1].Purpose)
	assert.Equal(t, "Alice Anderson", m1[0].Assigned)

	m2 := grouped["M2"]
	require.Len(t, m2, 1, "malformed calling titles are skipped")
	assert.Equal(t, board.KindCalling, m2[0].Kind)
	assert.Equal(t, "Grace Green", m2[0].Name)
	assert.Equal(t, "Organist", m2[0].Calling)
	assert.Equal(t, ward.StageNeedsCallingExtended, m2[0].Stage)
	assert.Equal(t, "Bob Brown", m2[0].Assigned)
}

func TestFetcherPropagatesAPIErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := board.NewClient("k", "t", board.WithBaseURL(server.URL))
	fetcher := board.NewFetcher(client, membersBoardID, []string{interviewListID}, nil)

	_, err := fetcher.GroupedByMember(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	due := time.Date(2024, time.June, 9, 15, 40, 0, 0, time.UTC)

	t.Run("interview line", func(t *testing.T) {
		t.Parallel()

		line := board.FormatEntry(board.Entry{
			Kind:    board.KindInterview,
			Name:    "Carol Clark",
			Due:     due,
			Purpose: "Temple Recommend",
		})
		assert.Equal(t, "• 3:40pm w/ Carol Clark - Temple Recommend", line)
	})

	t.Run("calling line includes the stage wording", func(t *testing.T) {
		t.Parallel()

		line := board.FormatEntry(board.Entry{
			Kind:    board.KindCalling,
			Name:    "Grace Green",
			Due:     due,
			Calling: "Organist",
			Stage:   ward.StageNeedsSettingApart,
		})
		assert.Equal(t, "• 3:40pm w/ Grace Green - Set apart as Organist", line)
	})
}
