package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/justsurfingit/talent-matrix/internal/httpclient"
	"github.com/ledongthuc/pdf"
)

const (
	// MaxResumeChars caps the resume text handed to later stages.
	MaxResumeChars = 15000

	maxResumeBytes = 20 << 20
)

// ExtractedSkillSet maps a skill category from a resume (e.g. "fundamental",
// "advanced") to the skill names listed under it, in resume order.
type ExtractedSkillSet map[string][]string

type ResumeService struct {
	client *httpclient.Client
	parse  func([]byte) (string, error)
}

func NewResumeService(client *httpclient.Client) *ResumeService {
	return &ResumeService{client: client, parse: pdfText}
}

// ExtractText downloads the PDF at url and returns its plain text, truncated
// to MaxResumeChars runes. It makes a single attempt.
func (s *ResumeService) ExtractText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", stageErr(KindDownload, "resume download", fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/pdf,*/*")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", stageErr(KindDownload, "resume download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", stageErr(KindDownload, "resume download", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResumeBytes))
	if err != nil {
		return "", stageErr(KindDownload, "resume download", fmt.Errorf("reading body: %w", err))
	}

	text, err := s.parse(data)
	if err != nil {
		return "", stageErr(KindParse, "resume parse", err)
	}
	return TruncateRunes(text, MaxResumeChars), nil
}

// ExtractSkills reads the resume at url and returns its skills section.
func (s *ResumeService) ExtractSkills(ctx context.Context, url string) (ExtractedSkillSet, string, error) {
	text, err := s.ExtractText(ctx, url)
	if err != nil {
		return nil, "", err
	}
	return ParseSkillSection(text), text, nil
}

func pdfText(data []byte) (text string, err error) {
	// the pdf package panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return string(b), nil
}

// TruncateRunes returns at most max runes of s.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

var skillHeadings = map[string]bool{
	"skills": true, "technical skills": true, "key skills": true,
	"core skills": true, "skills & tools": true, "skills and tools": true,
}

var sectionHeadings = map[string]bool{
	"education": true, "experience": true, "work experience": true,
	"projects": true, "certifications": true, "achievements": true,
	"internships": true, "publications": true, "interests": true,
	"languages": true, "summary": true, "objective": true,
	"extracurricular activities": true, "awards": true,
}

// ParseSkillSection finds the skills heading in resume text and groups the
// skills listed under it by category. "Languages: Go, Python" lands under
// "languages"; uncategorised lines go to "general".
func ParseSkillSection(text string) ExtractedSkillSet {
	set := ExtractedSkillSet{}
	seen := map[string]map[string]bool{}

	add := func(category, raw string) {
		for _, skill := range splitSkills(raw) {
			if seen[category] == nil {
				seen[category] = map[string]bool{}
			}
			key := strings.ToLower(skill)
			if seen[category][key] {
				continue
			}
			seen[category][key] = true
			set[category] = append(set[category], skill)
		}
	}

	inSection := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		heading := strings.ToLower(strings.TrimSuffix(trimmed, ":"))

		if !inSection {
			if skillHeadings[heading] {
				inSection = true
			}
			continue
		}
		if sectionHeadings[heading] {
			break
		}
		if trimmed == "" {
			continue
		}

		if category, rest, ok := strings.Cut(trimmed, ":"); ok && strings.TrimSpace(category) != "" {
			add(strings.ToLower(strings.TrimSpace(category)), rest)
			continue
		}
		add("general", trimmed)
	}
	return set
}

func splitSkills(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '•'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
