package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/justsurfingit/talent-matrix/internal/cache"
	"github.com/justsurfingit/talent-matrix/internal/httpclient"
)

const leetCodeQuery = `
query userProfile($username: String!) {
  matchedUser(username: $username) {
    submitStats: submitStatsGlobal {
      acSubmissionNum { difficulty count submissions }
    }
    tagProblemCounts {
      advanced { tagName problemsSolved }
      intermediate { tagName problemsSolved }
      fundamental { tagName problemsSolved }
    }
  }
}`

type TopicCount struct {
	TopicName string `json:"topicName"`
	Solved    int    `json:"solved"`
}

// LeetCodeStats is either a set of solved counts or, when Note is set, the
// "unavailable" result.
type LeetCodeStats struct {
	Total  int          `json:"total"`
	Easy   int          `json:"easy"`
	Medium int          `json:"medium"`
	Hard   int          `json:"hard"`
	Topics []TopicCount `json:"topics"`
	Note   string       `json:"note,omitempty"`
}

// UnavailableStats is what the pipeline gets when LeetCode cannot answer.
func UnavailableStats(note string) LeetCodeStats {
	return LeetCodeStats{Note: note}
}

func (s LeetCodeStats) Available() bool {
	return s.Note == ""
}

// MarshalJSON keeps the unavailable result down to its note.
func (s LeetCodeStats) MarshalJSON() ([]byte, error) {
	if !s.Available() {
		return json.Marshal(struct {
			Note string `json:"note"`
		}{s.Note})
	}
	type plain LeetCodeStats
	return json.Marshal(plain(s))
}

type LeetCodeService struct {
	client   *httpclient.Client
	endpoint string
	cache    cache.Store
}

func NewLeetCodeService(client *httpclient.Client, endpoint string, store cache.Store) *LeetCodeService {
	return &LeetCodeService{client: client, endpoint: endpoint, cache: store}
}

type leetCodeResponse struct {
	Data struct {
		MatchedUser *struct {
			SubmitStats struct {
				AcSubmissionNum []struct {
					Difficulty  string `json:"difficulty"`
					Count       int    `json:"count"`
					Submissions int    `json:"submissions"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
			TagProblemCounts struct {
				Advanced     []leetCodeTag `json:"advanced"`
				Intermediate []leetCodeTag `json:"intermediate"`
				Fundamental  []leetCodeTag `json:"fundamental"`
			} `json:"tagProblemCounts"`
		} `json:"matchedUser"`
	} `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

type leetCodeTag struct {
	TagName        string `json:"tagName"`
	ProblemsSolved int    `json:"problemsSolved"`
}

// FetchStats never fails: every problem turns into UnavailableStats.
func (s *LeetCodeService) FetchStats(ctx context.Context, username string) LeetCodeStats {
	username = strings.TrimSpace(username)
	if username == "" {
		return UnavailableStats("LeetCode username not provided")
	}

	key := cache.Key("leetcode", username)
	var cached LeetCodeStats
	if cache.GetJSON(ctx, s.cache, key, &cached) && cached.Available() {
		return cached
	}

	stats, err := s.fetch(ctx, username)
	if err != nil {
		slog.Warn("leetcode stats unavailable", "username", username, "error", err)
		return UnavailableStats("LeetCode data unavailable")
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, stats); err != nil {
			slog.Warn("caching leetcode stats", "error", err)
		}
	}
	return stats
}

func (s *LeetCodeService) fetch(ctx context.Context, username string) (LeetCodeStats, error) {
	body, err := json.Marshal(map[string]any{
		"query":     leetCodeQuery,
		"variables": map[string]string{"username": username},
	})
	if err != nil {
		return LeetCodeStats{}, fmt.Errorf("leetcode: encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return LeetCodeStats{}, fmt.Errorf("leetcode: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")

	resp, err := s.client.Do(req)
	if err != nil {
		return LeetCodeStats{}, fmt.Errorf("leetcode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return LeetCodeStats{}, fmt.Errorf("leetcode: unexpected status %d", resp.StatusCode)
	}

	var out leetCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return LeetCodeStats{}, fmt.Errorf("leetcode: decoding response: %w", err)
	}
	if len(out.Errors) > 0 {
		return LeetCodeStats{}, fmt.Errorf("leetcode: query returned %d errors", len(out.Errors))
	}
	user := out.Data.MatchedUser
	if user == nil {
		return LeetCodeStats{}, fmt.Errorf("leetcode: user %q not found", username)
	}

	stats := LeetCodeStats{Topics: []TopicCount{}}
	for _, n := range user.SubmitStats.AcSubmissionNum {
		switch n.Difficulty {
		case "All":
			stats.Total = n.Count
		case "Easy":
			stats.Easy = n.Count
		case "Medium":
			stats.Medium = n.Count
		case "Hard":
			stats.Hard = n.Count
		}
	}

	tags := user.TagProblemCounts
	for _, group := range [][]leetCodeTag{tags.Fundamental, tags.Intermediate, tags.Advanced} {
		for _, t := range group {
			stats.Topics = append(stats.Topics, TopicCount{TopicName: t.TagName, Solved: t.ProblemsSolved})
		}
	}
	RankTopics(stats.Topics)
	return stats, nil
}

// RankTopics orders topics by solved count, highest first. Equal counts keep
// the order the provider returned them in.
func RankTopics(topics []TopicCount) {
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Solved > topics[j].Solved
	})
}
