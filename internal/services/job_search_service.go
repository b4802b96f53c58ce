package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/justsurfingit/talent-matrix/internal/cache"
	"github.com/justsurfingit/talent-matrix/internal/httpclient"
)

const (
	DefaultRole       = "Software Engineer"
	MaxRolesPerSearch = 3

	linkedInPageSize = 25
)

// JobListing is one normalized search result.
type JobListing struct {
	Position string `json:"position"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Date     string `json:"date"`
	JobURL   string `json:"jobUrl"`
	Salary   string `json:"salary,omitempty"`
}

var (
	datePostedCodes = map[string]string{"24hr": "r86400", "past week": "r604800", "past month": "r2592000"}
	jobTypeCodes    = map[string]string{
		"full time": "F", "part time": "P", "contract": "C",
		"temporary": "T", "volunteer": "V", "internship": "I",
	}
	remoteCodes     = map[string]string{"on-site": "1", "remote": "2", "hybrid": "3"}
	salaryCodes     = map[string]string{"40000+": "1", "60000+": "2", "80000+": "3", "100000+": "4", "120000+": "5"}
	experienceCodes = map[string]string{
		"internship": "1", "entry level": "2", "associate": "3",
		"senior": "4", "director": "5", "executive": "6",
	}
)

// SearchOptions are the LinkedIn search filters. Empty strings mean no filter.
type SearchOptions struct {
	Keyword         string
	Location        string
	DateSincePosted string
	JobType         string
	RemoteFilter    string
	ExperienceLevel string
	Salary          string
	Limit           int
	Page            int
}

func DefaultSearchOptions(keyword, location string) SearchOptions {
	return SearchOptions{
		Keyword:         keyword,
		Location:        location,
		DateSincePosted: "past Week",
		JobType:         "full time",
		RemoteFilter:    "remote",
		Salary:          "100000+",
		ExperienceLevel: "entry level",
		Limit:           10,
		Page:            0,
	}
}

func (o SearchOptions) Validate() error {
	checks := []struct {
		field string
		value string
		codes map[string]string
	}{
		{"date", o.DateSincePosted, datePostedCodes},
		{"jobType", o.JobType, jobTypeCodes},
		{"remote", o.RemoteFilter, remoteCodes},
		{"level", o.ExperienceLevel, experienceCodes},
		{"salary", o.Salary, salaryCodes},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		if _, ok := c.codes[strings.ToLower(c.value)]; !ok {
			return fmt.Errorf("%w: %s %q", ErrInvalidSearchOption, c.field, c.value)
		}
	}
	if o.Limit < 0 || o.Page < 0 {
		return fmt.Errorf("%w: limit and page must not be negative", ErrInvalidSearchOption)
	}
	return nil
}

type JobSearchService struct {
	client   *httpclient.Client
	endpoint string
	cache    cache.Store
}

func NewJobSearchService(client *httpclient.Client, endpoint string, store cache.Store) *JobSearchService {
	return &JobSearchService{client: client, endpoint: endpoint, cache: store}
}

// Search runs one LinkedIn query and returns at most opts.Limit listings.
func (s *JobSearchService) Search(ctx context.Context, opts SearchOptions) ([]JobListing, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Limit == 0 {
		opts.Limit = 10
	}

	key := cache.Key("jobs", opts.cacheParts()...)
	var cached []JobListing
	if cache.GetJSON(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	listings := []JobListing{}
	start := opts.Page * linkedInPageSize
	for len(listings) < opts.Limit {
		page, err := s.fetchPage(ctx, s.buildURL(opts, start))
		if err != nil {
			return nil, err
		}
		listings = append(listings, page...)
		if len(page) < linkedInPageSize {
			break
		}
		start += linkedInPageSize
	}
	if len(listings) > opts.Limit {
		listings = listings[:opts.Limit]
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, listings); err != nil {
			slog.Warn("caching job search", "keyword", opts.Keyword, "error", err)
		}
	}
	return listings, nil
}

// SearchRoles queries each suggested role with the default filters and merges
// the results, dropping listings already seen.
func (s *JobSearchService) SearchRoles(ctx context.Context, roles []string, location string) ([]JobListing, error) {
	queries := make([]string, 0, MaxRolesPerSearch)
	for _, r := range roles {
		if r = strings.TrimSpace(r); r != "" {
			queries = append(queries, r)
		}
		if len(queries) == MaxRolesPerSearch {
			break
		}
	}
	if len(queries) == 0 {
		queries = []string{DefaultRole}
	}

	seen := map[string]bool{}
	all := []JobListing{}
	for _, role := range queries {
		listings, err := s.Search(ctx, DefaultSearchOptions(role, location))
		if err != nil {
			return nil, stageErr(KindJobFetch, "job search", fmt.Errorf("role %q: %w", role, err))
		}
		for _, l := range listings {
			k := listingKey(l)
			if seen[k] {
				continue
			}
			seen[k] = true
			all = append(all, l)
		}
	}
	return all, nil
}

func listingKey(l JobListing) string {
	if l.JobURL != "" {
		return strings.ToLower(l.JobURL)
	}
	return strings.ToLower(l.Position + "|" + l.Company)
}

func (s *JobSearchService) buildURL(opts SearchOptions, start int) string {
	params := url.Values{}
	params.Set("keywords", opts.Keyword)
	params.Set("location", opts.Location)
	setCode := func(param, value string, codes map[string]string) {
		if code, ok := codes[strings.ToLower(value)]; ok {
			params.Set(param, code)
		}
	}
	setCode("f_TPR", opts.DateSincePosted, datePostedCodes)
	setCode("f_JT", opts.JobType, jobTypeCodes)
	setCode("f_WT", opts.RemoteFilter, remoteCodes)
	setCode("f_SB2", opts.Salary, salaryCodes)
	setCode("f_E", opts.ExperienceLevel, experienceCodes)
	params.Set("start", strconv.Itoa(start))
	return fmt.Sprintf("%s?%s", s.endpoint, params.Encode())
}

func (s *JobSearchService) fetchPage(ctx context.Context, searchURL string) ([]JobListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("linkedin: building request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin: executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("linkedin: parsing HTML: %w", err)
	}
	return parseJobCards(doc), nil
}

func parseJobCards(doc *goquery.Document) []JobListing {
	listings := []JobListing{}
	doc.Find("li").Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find(".base-search-card__title").Text())
		if title == "" {
			return
		}
		date, _ := s.Find("time").Attr("datetime")
		link, _ := s.Find("a.base-card__full-link").Attr("href")
		if i := strings.IndexByte(link, '?'); i >= 0 {
			link = link[:i]
		}
		listings = append(listings, JobListing{
			Position: title,
			Company:  strings.TrimSpace(s.Find(".base-search-card__subtitle").Text()),
			Location: strings.TrimSpace(s.Find(".job-search-card__location").Text()),
			Date:     strings.TrimSpace(date),
			JobURL:   strings.TrimSpace(link),
			Salary:   strings.Join(strings.Fields(s.Find(".job-search-card__salary-info").Text()), " "),
		})
	})
	return listings
}

func (o SearchOptions) cacheParts() []string {
	return []string{
		o.Keyword, o.Location, o.DateSincePosted, o.JobType, o.RemoteFilter,
		o.ExperienceLevel, o.Salary, strconv.Itoa(o.Limit), strconv.Itoa(o.Page),
	}
}
