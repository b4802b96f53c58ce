package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justsurfingit/talent-matrix/internal/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchVocabulary(t *testing.T) {
	text := `We need strong C++ and C# skills, experience with Node.js. Familiarity
with CI/CD pipelines, machine   learning and Postgres. Bonus: Golang.`

	got := MatchVocabulary(text, SkillVocabulary)
	assert.Equal(t, []string{"Golang", "C++", "C#", "Node.js", "Machine Learning", "CI/CD"}, got)
}

func TestMatchVocabularyWholeWordsOnly(t *testing.T) {
	assert.Empty(t, MatchVocabulary("JavaScript developers wanted", []string{"Java"}))
	assert.Empty(t, MatchVocabulary("learning about machines", []string{"Machine Learning"}))
	assert.Equal(t, []string{"Java"}, MatchVocabulary("Core JAVA.", []string{"Java"}))
}

func TestMatchVocabularyEnglishWordsNeedExactCase(t *testing.T) {
	assert.Empty(t, MatchVocabulary("the rest of the team this spring and express ideas", SkillVocabulary))
	assert.Equal(t, []string{"Express", "Spring Boot", "Spring", "REST"},
		MatchVocabulary("APIs in Express, services on Spring Boot, REST everywhere.", SkillVocabulary))
}

func TestScrapeSkillsKeepsOrderAndIsolatesFailures(t *testing.T) {
	var inflight, peak int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inflight, 1)
		defer atomic.AddInt32(&inflight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)

		switch r.URL.Path {
		case "/jobs/1":
			fmt.Fprint(w, `<html><body><nav>Kubernetes jobs</nav>
<div class="show-more-less-html__markup">Python and SQL required</div></body></html>`)
		case "/jobs/2":
			w.WriteHeader(http.StatusNotFound)
		case "/jobs/3":
			fmt.Fprint(w, `<html><body><p>Docker, AWS</p></body></html>`)
		default:
			fmt.Fprint(w, `<html><body>Java</body></html>`)
		}
	}))
	defer srv.Close()

	listings := []JobListing{
		{Position: "A", JobURL: srv.URL + "/jobs/1"},
		{Position: "B", JobURL: srv.URL + "/jobs/2"},
		{Position: "C", JobURL: srv.URL + "/jobs/3"},
		{Position: "D"},
		{Position: "E", JobURL: srv.URL + "/jobs/5"},
	}
	svc := NewScraperService(httpclient.New(httpclient.Options{}), time.Second, 2)

	out := svc.ScrapeSkills(context.Background(), listings)
	require.Len(t, out, len(listings))

	for i := range listings {
		assert.Equal(t, listings[i].Position, out[i].Position)
	}
	assert.Equal(t, []string{"Python", "SQL"}, out[0].Skills)
	assert.Equal(t, []string{}, out[1].Skills)
	assert.NotEmpty(t, out[1].ScrapeError)
	assert.Equal(t, []string{"AWS", "Docker"}, out[2].Skills)
	assert.Equal(t, []string{}, out[3].Skills)
	assert.Empty(t, out[3].ScrapeError)
	assert.Equal(t, []string{"Java"}, out[4].Skills)

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestScrapeSkillsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	svc := NewScraperService(httpclient.New(httpclient.Options{}), 50*time.Millisecond, 1)
	out := svc.ScrapeSkills(context.Background(), []JobListing{{Position: "Slow", JobURL: srv.URL}})

	require.Len(t, out, 1)
	assert.Empty(t, out[0].Skills)
	assert.NotEmpty(t, out[0].ScrapeError)
}
