package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/talent-matrix/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/xeipuuv/gojsonschema"
)

// CandidateProfile is what the model reports about a candidate.
type CandidateProfile struct {
	CandidateSummary  string   `json:"candidate_summary"`
	VerifiedSkills    []string `json:"verified_skills"`
	LeetCodeLevel     string   `json:"leetcode_level"`
	SuggestedJobRoles []string `json:"suggested_job_roles"`
}

const candidateProfileSchema = `{
  "type": "object",
  "required": ["candidate_summary", "verified_skills"],
  "properties": {
    "candidate_summary": {"type": "string"},
    "verified_skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "leetcode_level": {"type": ["string", "null"]},
    "suggested_job_roles": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`

const careerCoachPrompt = `You are an expert Career Coach.
Analyze the Resume and LeetCode stats.

Reply with a single JSON object and nothing else, using this structure:
{
    "candidate_summary": "String",
    "verified_skills": ["Skill A", "Skill B"],
    "leetcode_level": "String",
    "suggested_job_roles": ["Role 1", "Role 2"]
}`

var schemaLoader = gojsonschema.NewStringLoader(candidateProfileSchema)

type LLMService struct {
	Client llms.Model
}

// NewLLMService builds the completion client for the configured provider.
func NewLLMService(ctx context.Context, cfg *config.Config) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, errors.New("llm: no API key configured for provider " + cfg.LLMProvider)
	}

	var (
		llm llms.Model
		err error
	)
	switch cfg.LLMProvider {
	case "googleai":
		llm, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.LLMAPIKey),
			googleai.WithDefaultModel(cfg.LLMModel),
		)
	case "openai":
		llm, err = openai.New(
			openai.WithToken(cfg.LLMAPIKey),
			openai.WithBaseURL(cfg.LLMBaseURL),
			openai.WithModel(cfg.LLMModel),
		)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("llm: creating %s client: %w", cfg.LLMProvider, err)
	}
	return &LLMService{Client: llm}, nil
}

// SuggestRoles asks the model for a candidate profile built from the resume
// text and the LeetCode stats. One attempt; any failure is an analysis error.
func (s *LLMService) SuggestRoles(ctx context.Context, resumeText string, stats LeetCodeStats) (*CandidateProfile, error) {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return nil, stageErr(KindAnalysis, "role suggestion", fmt.Errorf("encoding stats: %w", err))
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, careerCoachPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf("RESUME TEXT: %s\nLEETCODE STATS: %s", resumeText, statsJSON)),
	}

	resp, err := s.Client.GenerateContent(ctx, messages)
	if err != nil {
		return nil, stageErr(KindAnalysis, "role suggestion", fmt.Errorf("completion failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, stageErr(KindAnalysis, "role suggestion", errors.New("completion returned no choices"))
	}

	profile, err := ParseCandidateProfile(resp.Choices[0].Content)
	if err != nil {
		return nil, stageErr(KindAnalysis, "role suggestion", err)
	}
	return profile, nil
}

// ParseCandidateProfile reads the JSON object out of a raw completion,
// tolerating markdown fences and chatter around the object. Each "{" is tried
// in turn, so braces in leading prose do not hide the real object.
func ParseCandidateProfile(raw string) (*CandidateProfile, error) {
	body := stripFences(raw)
	var firstErr error
	for i := 0; i < len(body); i++ {
		if body[i] != '{' {
			continue
		}
		profile, err := decodeProfile(body[i:])
		if err == nil {
			return profile, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		return nil, errors.New("no JSON object in completion")
	}
	return nil, firstErr
}

// decodeProfile decodes the object at the start of s and ignores what follows.
func decodeProfile(s string) (*CandidateProfile, error) {
	var obj json.RawMessage
	if err := json.NewDecoder(strings.NewReader(s)).Decode(&obj); err != nil {
		return nil, fmt.Errorf("completion is not valid JSON: %w", err)
	}

	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(obj))
	if err != nil {
		return nil, fmt.Errorf("completion is not valid JSON: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("completion does not match profile schema: %s", strings.Join(msgs, "; "))
	}

	var profile CandidateProfile
	if err := json.Unmarshal(obj, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
