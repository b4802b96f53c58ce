package services

import (
	"math"
	"sort"
	"strings"
)

// JobAnalysis is how one listing's required skills line up with the user's.
type JobAnalysis struct {
	JobListing
	RequiredSkills []string `json:"required_skills"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	MatchScore     int      `json:"match_score"`
	MatchPercent   int      `json:"match_percent"`
	ScrapeError    string   `json:"scrape_error,omitempty"`
}

type MissingSkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// GapReport is the per-listing breakdown plus the skills missing most often.
type GapReport struct {
	Jobs                 []JobAnalysis       `json:"jobs"`
	MissingSkillsRanking []MissingSkillCount `json:"missing_skills_ranking"`
	TopMissingSkills     []string            `json:"top_missing_skills"`
}

// GenerateGapReport compares userSkills with the skills of every listing.
// Names are compared without case. The result only depends on the set of
// user skills, not their order.
func GenerateGapReport(userSkills []string, listings []ScrapedListing) GapReport {
	have := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		if s = strings.TrimSpace(s); s != "" {
			have[strings.ToLower(s)] = true
		}
	}

	report := GapReport{
		Jobs:                 make([]JobAnalysis, 0, len(listings)),
		MissingSkillsRanking: []MissingSkillCount{},
		TopMissingSkills:     []string{},
	}
	// index into MissingSkillsRanking by lower-cased name
	rank := map[string]int{}

	for _, l := range listings {
		a := JobAnalysis{
			JobListing:     l.JobListing,
			RequiredSkills: dedupeFold(l.Skills),
			MatchedSkills:  []string{},
			MissingSkills:  []string{},
			ScrapeError:    l.ScrapeError,
		}
		for _, skill := range a.RequiredSkills {
			key := strings.ToLower(skill)
			if have[key] {
				a.MatchedSkills = append(a.MatchedSkills, skill)
				continue
			}
			a.MissingSkills = append(a.MissingSkills, skill)

			if i, ok := rank[key]; ok {
				report.MissingSkillsRanking[i].Count++
			} else {
				rank[key] = len(report.MissingSkillsRanking)
				report.MissingSkillsRanking = append(report.MissingSkillsRanking, MissingSkillCount{Skill: skill, Count: 1})
			}
		}
		a.MatchScore = len(a.MatchedSkills)
		if n := len(a.RequiredSkills); n > 0 {
			a.MatchPercent = int(math.Round(100 * float64(a.MatchScore) / float64(n)))
		}
		report.Jobs = append(report.Jobs, a)
	}

	sort.SliceStable(report.MissingSkillsRanking, func(i, j int) bool {
		return report.MissingSkillsRanking[i].Count > report.MissingSkillsRanking[j].Count
	})
	for _, m := range report.MissingSkillsRanking {
		report.TopMissingSkills = append(report.TopMissingSkills, m.Skill)
	}
	return report
}

func dedupeFold(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
