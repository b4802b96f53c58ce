package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scraped(position string, skills ...string) ScrapedListing {
	return ScrapedListing{JobListing: JobListing{Position: position}, Skills: skills}
}

func TestGapReportSingleListing(t *testing.T) {
	report := GenerateGapReport([]string{"python"}, []ScrapedListing{scraped("Data Engineer", "Python", "SQL")})

	require.Len(t, report.Jobs, 1)
	job := report.Jobs[0]
	assert.Equal(t, 1, job.MatchScore)
	assert.Equal(t, []string{"Python"}, job.MatchedSkills)
	assert.Equal(t, []string{"SQL"}, job.MissingSkills)
	assert.Equal(t, 50, job.MatchPercent)
	assert.Equal(t, []string{"SQL"}, report.TopMissingSkills)
}

func TestGapReportRankingIsStable(t *testing.T) {
	listings := []ScrapedListing{
		scraped("A", "Docker", "Kubernetes", "Go"),
		scraped("B", "kubernetes", "AWS", "Docker"),
		scraped("C", "AWS", "Terraform"),
	}
	report := GenerateGapReport(nil, listings)

	assert.Equal(t, []MissingSkillCount{
		{Skill: "Docker", Count: 2},
		{Skill: "Kubernetes", Count: 2},
		{Skill: "AWS", Count: 2},
		{Skill: "Go", Count: 1},
		{Skill: "Terraform", Count: 1},
	}, report.MissingSkillsRanking)
	assert.Equal(t, []string{"Docker", "Kubernetes", "AWS", "Go", "Terraform"}, report.TopMissingSkills)
}

func TestGapReportIgnoresUserSkillOrder(t *testing.T) {
	listings := []ScrapedListing{
		scraped("A", "Java", "Spring", "SQL"),
		scraped("B", "React", "TypeScript", "SQL"),
	}
	first := GenerateGapReport([]string{"SQL", "React", "Java"}, listings)
	second := GenerateGapReport([]string{"java", "Java", "react", "sql"}, listings)
	assert.Equal(t, first, second)
}

func TestGapReportDedupesRequiredSkills(t *testing.T) {
	report := GenerateGapReport([]string{"Go"}, []ScrapedListing{scraped("A", "Go", "GO", " go ", "")})
	job := report.Jobs[0]
	assert.Equal(t, []string{"Go"}, job.RequiredSkills)
	assert.Equal(t, 100, job.MatchPercent)
	assert.Empty(t, report.MissingSkillsRanking)
}

func TestGapReportListingWithoutSkills(t *testing.T) {
	l := scraped("Unknown")
	l.ScrapeError = "scraper: unexpected status 404"
	report := GenerateGapReport([]string{"Go"}, []ScrapedListing{l})

	job := report.Jobs[0]
	assert.Equal(t, 0, job.MatchScore)
	assert.Equal(t, 0, job.MatchPercent)
	assert.Equal(t, []string{}, job.RequiredSkills)
	assert.Equal(t, l.ScrapeError, job.ScrapeError)
}
