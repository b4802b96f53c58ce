package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/justsurfingit/talent-matrix/internal/httpclient"
	"github.com/justsurfingit/talent-matrix/internal/models"
	"golang.org/x/sync/errgroup"
)

type LeetCodeSummary struct {
	Solved int `json:"solved"`
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type CodeforcesSummary struct {
	Rating    int    `json:"rating"`
	Rank      string `json:"rank"`
	MaxRating int    `json:"maxRating"`
}

// LinkedProfile stands in for platforms without a public stats API.
type LinkedProfile struct {
	Status   string `json:"status"`
	Username string `json:"username"`
}

// CodingStats holds one entry per platform; nil means not linked or not
// reachable.
type CodingStats struct {
	LeetCode   *LeetCodeSummary   `json:"leetcode"`
	Codeforces *CodeforcesSummary `json:"codeforces"`
	HackerRank *LinkedProfile     `json:"hackerrank"`
	CodeChef   *LinkedProfile     `json:"codechef"`
}

type GitHubRepo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
	Desc  string `json:"desc"`
	Tags  string `json:"tags"`
}

type CodingStatsService struct {
	client        *httpclient.Client
	leetcode      StatsFetcher
	codeforcesURL string
	githubURL     string
}

func NewCodingStatsService(client *httpclient.Client, leetcode StatsFetcher, codeforcesURL, githubURL string) *CodingStatsService {
	return &CodingStatsService{
		client:        client,
		leetcode:      leetcode,
		codeforcesURL: strings.TrimRight(codeforcesURL, "/"),
		githubURL:     strings.TrimRight(githubURL, "/"),
	}
}

// Collect gathers the student's coding stats and recent GitHub repositories.
// Each source fails on its own and leaves its slot empty.
func (s *CodingStatsService) Collect(ctx context.Context, student *models.Student) (CodingStats, []GitHubRepo) {
	var (
		stats CodingStats
		repos = []GitHubRepo{}
	)

	g, ctx := errgroup.WithContext(ctx)

	if u := UsernameFromURL(student.LeetcodeURL); u != "" {
		g.Go(func() error {
			lc := s.leetcode.FetchStats(ctx, u)
			if lc.Available() {
				stats.LeetCode = &LeetCodeSummary{Solved: lc.Total, Easy: lc.Easy, Medium: lc.Medium, Hard: lc.Hard}
			}
			return nil
		})
	}
	if u := UsernameFromURL(student.CodeforcesURL); u != "" {
		g.Go(func() error {
			cf, err := s.codeforces(ctx, u)
			if err != nil {
				slog.Warn("codeforces stats unavailable", "handle", u, "error", err)
				return nil
			}
			stats.Codeforces = cf
			return nil
		})
	}
	if u := strings.TrimSpace(student.GithubUsername); u != "" {
		g.Go(func() error {
			r, err := s.githubRepos(ctx, u)
			if err != nil {
				slog.Warn("github repos unavailable", "username", u, "error", err)
				return nil
			}
			repos = r
			return nil
		})
	}
	g.Wait()

	if u := UsernameFromURL(student.HackerrankURL); u != "" {
		stats.HackerRank = &LinkedProfile{Status: "Linked", Username: u}
	}
	if u := UsernameFromURL(student.CodechefURL); u != "" {
		stats.CodeChef = &LinkedProfile{Status: "Linked", Username: u}
	}
	return stats, repos
}

func (s *CodingStatsService) codeforces(ctx context.Context, handle string) (*CodeforcesSummary, error) {
	var out struct {
		Status string              `json:"status"`
		Result []CodeforcesSummary `json:"result"`
	}
	endpoint := fmt.Sprintf("%s/user.info?handles=%s", s.codeforcesURL, url.QueryEscape(handle))
	if err := s.getJSON(ctx, endpoint, &out); err != nil {
		return nil, fmt.Errorf("codeforces: %w", err)
	}
	if out.Status != "OK" || len(out.Result) == 0 {
		return nil, fmt.Errorf("codeforces: status %q", out.Status)
	}
	return &out.Result[0], nil
}

func (s *CodingStatsService) githubRepos(ctx context.Context, username string) ([]GitHubRepo, error) {
	var raw []struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		HTMLURL     string  `json:"html_url"`
		Description *string `json:"description"`
		Language    *string `json:"language"`
	}
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=5", s.githubURL, url.PathEscape(username))
	if err := s.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}

	repos := []GitHubRepo{}
	for _, r := range raw {
		if r.Description == nil || strings.TrimSpace(*r.Description) == "" {
			continue
		}
		tags := "Code"
		if r.Language != nil && *r.Language != "" {
			tags = *r.Language
		}
		repos = append(repos, GitHubRepo{
			ID:    r.ID,
			Title: r.Name,
			Link:  r.HTMLURL,
			Desc:  strings.TrimSpace(*r.Description),
			Tags:  tags,
		})
	}
	return repos, nil
}

func (s *CodingStatsService) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// UsernameFromURL returns the last path segment of a profile link, so
// "https://leetcode.com/u/alice/" gives "alice". A bare username is returned
// as is.
func UsernameFromURL(profileURL string) string {
	s := strings.TrimSpace(profileURL)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
