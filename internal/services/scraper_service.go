package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/justsurfingit/talent-matrix/internal/httpclient"
	"golang.org/x/sync/errgroup"
)

// SkillVocabulary is the fixed list of skills looked for in job postings,
// spelled the way they are reported.
var SkillVocabulary = []string{
	// languages
	"Java", "Python", "JavaScript", "TypeScript", "Golang", "C++", "C#", "Rust",
	"Kotlin", "Swift", "Ruby", "PHP", "Scala", "SQL", "Bash",
	// web
	"HTML", "CSS", "React", "Angular", "Vue", "Next.js", "Node.js", "Express",
	"Django", "Flask", "FastAPI", "Spring Boot", "Spring", ".NET", "GraphQL", "REST",
	// data
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "Kafka", "RabbitMQ",
	"Spark", "Hadoop", "Pandas", "NumPy", "TensorFlow", "PyTorch", "Machine Learning",
	"Deep Learning", "NLP", "Data Structures", "Algorithms",
	// infra
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "Linux", "Git",
	"Jenkins", "CI/CD", "Microservices", "System Design",
}

// exactCaseTerms are skills that are also everyday English words. They only
// match when written with the same capitalisation.
var exactCaseTerms = map[string]bool{"REST": true, "Spring": true, "Express": true}

// ScrapedListing is a listing together with the skills its posting mentions.
type ScrapedListing struct {
	JobListing
	Skills      []string `json:"skills"`
	ScrapeError string   `json:"scrape_error,omitempty"`
}

type ScraperService struct {
	client      *httpclient.Client
	timeout     time.Duration
	concurrency int
	vocabulary  []string
}

func NewScraperService(client *httpclient.Client, timeout time.Duration, concurrency int) *ScraperService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ScraperService{
		client:      client,
		timeout:     timeout,
		concurrency: concurrency,
		vocabulary:  SkillVocabulary,
	}
}

// ScrapeSkills fetches every posting and matches it against the vocabulary.
// The result has one entry per listing, in the same order. A posting that
// cannot be fetched gets no skills and a ScrapeError; the batch goes on.
func (s *ScraperService) ScrapeSkills(ctx context.Context, listings []JobListing) []ScrapedListing {
	out := make([]ScrapedListing, len(listings))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, listing := range listings {
		g.Go(func() error {
			out[i] = s.scrapeOne(ctx, listing)
			return nil
		})
	}
	g.Wait()
	return out
}

func (s *ScraperService) scrapeOne(ctx context.Context, listing JobListing) ScrapedListing {
	result := ScrapedListing{JobListing: listing, Skills: []string{}}
	if listing.JobURL == "" {
		return result
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.postingText(ctx, listing.JobURL)
	if err != nil {
		slog.Warn("scraping posting", "url", listing.JobURL, "error", err)
		result.ScrapeError = err.Error()
		return result
	}
	result.Skills = MatchVocabulary(text, s.vocabulary)
	return result
}

func (s *ScraperService) postingText(ctx context.Context, postingURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, postingURL, nil)
	if err != nil {
		return "", fmt.Errorf("scraper: building request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("scraper: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scraper: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("scraper: parsing HTML: %w", err)
	}
	text := doc.Find(".show-more-less-html__markup, .description__text").First().Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Find("body").Text()
	}
	return text, nil
}

// MatchVocabulary returns the vocabulary terms that occur in text as whole
// words, ignoring case except for exactCaseTerms. Multi-word terms must
// appear as a contiguous run of words. Matches are returned in vocabulary
// order.
func MatchVocabulary(text string, vocabulary []string) []string {
	raw := splitWords(text)
	folded := make([]string, len(raw))
	for i, w := range raw {
		folded[i] = strings.ToLower(w)
	}
	rawPos := wordPositions(raw)
	foldedPos := wordPositions(folded)

	matched := []string{}
	for _, term := range vocabulary {
		tokens, positions := folded, foldedPos
		termTokens := tokenize(term)
		if exactCaseTerms[term] {
			tokens, positions = raw, rawPos
			termTokens = splitWords(term)
		}
		if len(termTokens) == 0 {
			continue
		}
		if containsRun(tokens, positions[termTokens[0]], termTokens) {
			matched = append(matched, term)
		}
	}
	return matched
}

func wordPositions(words []string) map[string][]int {
	positions := make(map[string][]int, len(words))
	for i, w := range words {
		positions[w] = append(positions[w], i)
	}
	return positions
}

func containsRun(tokens []string, starts []int, run []string) bool {
next:
	for _, start := range starts {
		if start+len(run) > len(tokens) {
			continue
		}
		for j := 1; j < len(run); j++ {
			if tokens[start+j] != run[j] {
				continue next
			}
		}
		return true
	}
	return false
}

func tokenize(text string) []string {
	return splitWords(strings.ToLower(text))
}

// splitWords breaks text into words, keeping the + # . characters that
// appear in names like C++, C# and Node.js.
func splitWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.')
	})
	words := fields[:0]
	for _, f := range fields {
		if f = strings.TrimRight(f, "."); f != "" {
			words = append(words, f)
		}
	}
	return words
}
