package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/Manohar-jami/Job-Portal-Api/internal/apperrors"
	"github.com/Manohar-jami/Job-Portal-Api/internal/auth"
	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
)

const maxExtractionInput = 20000

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw text of a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "company": "Name of the company",
    "location": "Job location or 'Remote'",
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements.",
    "salary": "Yearly salary as a single integer if explicitly mentioned, otherwise null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// LLMService drafts job postings from free text.
type LLMService struct {
	Client llms.Model
}

func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

// ExtractJobDetails asks the model for a draft posting. Only recruiters may
// use it; the draft is not stored.
func (s *LLMService) ExtractJobDetails(ctx context.Context, caller auth.Principal, rawText string) (*dtos.JobDraft, error) {
	if err := requireRole(caller, models.RoleRecruiter, "Only recruiters can post jobs."); err != nil {
		return nil, err
	}
	if s == nil || s.Client == nil {
		return nil, apperrors.New(apperrors.KindUnavailable, "Job extraction is not configured", nil)
	}
	rawText = truncateUTF8(rawText, maxExtractionInput)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawText))
	if err != nil {
		return nil, apperrors.New(apperrors.KindUpstream, "AI extraction failed", err)
	}
	draft, err := parseJobDraft(resp)
	if err != nil {
		return nil, apperrors.New(apperrors.KindUpstream, "AI extraction returned malformed JSON", err)
	}
	return draft, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// parseJobDraft tolerates markdown fences around the model output.
func parseJobDraft(raw string) (*dtos.JobDraft, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var out struct {
		Title       *string          `json:"title"`
		Description *string          `json:"description"`
		Company     *string          `json:"company"`
		Location    *string          `json:"location"`
		Salary      *json.RawMessage `json:"salary"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		return nil, err
	}
	draft := &dtos.JobDraft{
		Title:       deref(out.Title),
		Description: deref(out.Description),
		Company:     deref(out.Company),
		Location:    deref(out.Location),
	}
	if out.Salary != nil {
		var salary int
		if err := json.Unmarshal(*out.Salary, &salary); err == nil {
			draft.Salary = &salary
		}
	}
	return draft, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
