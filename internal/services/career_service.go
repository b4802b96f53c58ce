package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/talent-matrix/internal/dtos"
	"golang.org/x/sync/errgroup"
)

type ResumeTextExtractor interface {
	ExtractText(ctx context.Context, url string) (string, error)
}

type StatsFetcher interface {
	FetchStats(ctx context.Context, username string) LeetCodeStats
}

type RoleSuggester interface {
	SuggestRoles(ctx context.Context, resumeText string, stats LeetCodeStats) (*CandidateProfile, error)
}

type JobSearcher interface {
	SearchRoles(ctx context.Context, roles []string, location string) ([]JobListing, error)
}

type SkillScraper interface {
	ScrapeSkills(ctx context.Context, listings []JobListing) []ScrapedListing
}

type SkillLister interface {
	SkillNames(studentID uint) ([]string, error)
}

// CareerResult is the outcome of one analysis. With NoJobs set, only
// AnalysisID, Profile and Stats are filled in.
type CareerResult struct {
	AnalysisID string
	Profile    *CandidateProfile
	Stats      LeetCodeStats
	JobsFound  int
	Report     *GapReport
	NoJobs     bool
}

type CareerService struct {
	Resume   ResumeTextExtractor
	Stats    StatsFetcher
	Roles    RoleSuggester
	Jobs     JobSearcher
	Scraper  SkillScraper
	Students SkillLister

	StageTimeout    time.Duration
	DefaultLocation string
}

// Analyze runs resume+stats, role suggestion, job search, posting scrape and
// gap report, in that order. Resume, role and job failures abort the run;
// LeetCode and single postings degrade instead.
func (s *CareerService) Analyze(ctx context.Context, req *dtos.CareerAnalysisRequest) (*CareerResult, error) {
	result := &CareerResult{AnalysisID: uuid.NewString()}
	log := slog.With("analysis_id", result.AnalysisID)

	var declared []string
	if req.StudentID != 0 && s.Students != nil {
		names, err := s.Students.SkillNames(req.StudentID)
		if err != nil {
			return nil, err
		}
		declared = names
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = s.DefaultLocation
	}

	log.Info("analysis started", "username", req.Username, "student_id", req.StudentID)

	var resumeText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sctx, cancel := s.stageContext(gctx)
		defer cancel()
		text, err := s.Resume.ExtractText(sctx, req.ResumeURL)
		if err != nil {
			return withKind(err, KindDownload, "resume download")
		}
		resumeText = text
		return nil
	})
	g.Go(func() error {
		sctx, cancel := s.stageContext(gctx)
		defer cancel()
		result.Stats = s.Stats.FetchStats(sctx, req.Username)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("resume extraction failed", "error", err)
		return nil, err
	}
	log.Info("profile inputs ready", "resume_chars", len([]rune(resumeText)), "leetcode_available", result.Stats.Available())

	sctx, cancel := s.stageContext(ctx)
	profile, err := s.Roles.SuggestRoles(sctx, resumeText, result.Stats)
	cancel()
	if err != nil {
		err = withKind(err, KindAnalysis, "role suggestion")
		log.Error("role suggestion failed", "error", err)
		return nil, err
	}
	result.Profile = profile
	log.Info("roles suggested", "roles", profile.SuggestedJobRoles)

	sctx, cancel = s.stageContext(ctx)
	listings, err := s.Jobs.SearchRoles(sctx, profile.SuggestedJobRoles, location)
	cancel()
	if err != nil {
		err = withKind(err, KindJobFetch, "job search")
		log.Error("job search failed", "error", err)
		return nil, err
	}
	if len(listings) == 0 {
		log.Info("no jobs found", "location", location)
		result.NoJobs = true
		return result, nil
	}
	log.Info("jobs found", "count", len(listings))

	scraped := s.Scraper.ScrapeSkills(ctx, listings)
	failed := 0
	for _, l := range scraped {
		if l.ScrapeError != "" {
			failed++
		}
	}
	log.Info("postings scraped", "count", len(scraped), "failed", failed)

	userSkills := append(append([]string{}, profile.VerifiedSkills...), declared...)
	report := GenerateGapReport(userSkills, scraped)
	result.Report = &report
	result.JobsFound = len(scraped)

	log.Info("analysis finished", "top_missing", report.TopMissingSkills)
	return result, nil
}

func (s *CareerService) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StageTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.StageTimeout)
}

// withKind tags err with kind unless a stage already classified it.
func withKind(err error, kind ErrorKind, stage string) error {
	if KindOf(err) != "" {
		return err
	}
	return stageErr(kind, stage, err)
}
