package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justsurfingit/talent-matrix/internal/cache"
	"github.com/justsurfingit/talent-matrix/internal/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceGraphQL = `{"data":{"matchedUser":{
  "submitStats":{"acSubmissionNum":[
    {"difficulty":"All","count":120,"submissions":300},
    {"difficulty":"Easy","count":70,"submissions":150},
    {"difficulty":"Medium","count":45,"submissions":130}
  ]},
  "tagProblemCounts":{
    "advanced":[{"tagName":"Array","problemsSolved":9}],
    "intermediate":[{"tagName":"Greedy","problemsSolved":5}],
    "fundamental":[{"tagName":"DP","problemsSolved":5}]
  }}}}`

func leetCodeServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		var q struct {
			Variables map[string]string `json:"variables"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.NotEmpty(t, q.Variables["username"])
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestFetchStatsParsesAndRanksTopics(t *testing.T) {
	srv, _ := leetCodeServer(t, http.StatusOK, aliceGraphQL)
	svc := NewLeetCodeService(httpclient.New(httpclient.Options{}), srv.URL, nil)

	stats := svc.FetchStats(context.Background(), "alice")
	require.True(t, stats.Available())
	assert.Equal(t, 120, stats.Total)
	assert.Equal(t, 70, stats.Easy)
	assert.Equal(t, 45, stats.Medium)
	assert.Equal(t, 0, stats.Hard)
	assert.Equal(t, []TopicCount{
		{TopicName: "Array", Solved: 9},
		{TopicName: "DP", Solved: 5},
		{TopicName: "Greedy", Solved: 5},
	}, stats.Topics)
}

func TestRankTopicsIsStable(t *testing.T) {
	topics := []TopicCount{{"DP", 5}, {"Greedy", 5}, {"Array", 9}}
	RankTopics(topics)
	assert.Equal(t, []TopicCount{{"Array", 9}, {"DP", 5}, {"Greedy", 5}}, topics)
}

func TestFetchStatsUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unknown user", http.StatusOK, `{"data":{"matchedUser":null}}`},
		{"graphql errors", http.StatusOK, `{"errors":[{"message":"rate limited"}],"data":{}}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"malformed body", http.StatusOK, `{"data":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := leetCodeServer(t, tt.status, tt.body)
			svc := NewLeetCodeService(httpclient.New(httpclient.Options{}), srv.URL, nil)

			stats := svc.FetchStats(context.Background(), "ghost")
			assert.False(t, stats.Available())
			assert.NotEmpty(t, stats.Note)
		})
	}
}

func TestFetchStatsEmptyUsernameSkipsRequest(t *testing.T) {
	srv, calls := leetCodeServer(t, http.StatusOK, aliceGraphQL)
	svc := NewLeetCodeService(httpclient.New(httpclient.Options{}), srv.URL, nil)

	stats := svc.FetchStats(context.Background(), "  ")
	assert.False(t, stats.Available())
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestFetchStatsCachesOnlyAvailableResults(t *testing.T) {
	store := cache.NewMemory(time.Minute)

	okSrv, okCalls := leetCodeServer(t, http.StatusOK, aliceGraphQL)
	svc := NewLeetCodeService(httpclient.New(httpclient.Options{}), okSrv.URL, store)
	svc.FetchStats(context.Background(), "alice")
	svc.FetchStats(context.Background(), "alice")
	assert.Equal(t, int32(1), atomic.LoadInt32(okCalls))

	missSrv, missCalls := leetCodeServer(t, http.StatusOK, `{"data":{"matchedUser":null}}`)
	svc = NewLeetCodeService(httpclient.New(httpclient.Options{}), missSrv.URL, store)
	svc.FetchStats(context.Background(), "ghost")
	svc.FetchStats(context.Background(), "ghost")
	assert.Equal(t, int32(2), atomic.LoadInt32(missCalls))
}

func TestUnavailableStatsMarshalsNoteOnly(t *testing.T) {
	b, err := json.Marshal(UnavailableStats("LeetCode data unavailable"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"note":"LeetCode data unavailable"}`, string(b))
}
