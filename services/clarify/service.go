package clarify

import (
	"context"
	"strings"
	"time"

	"mechanicbook/models"

	"go.uber.org/zap"
)

// NoDescription is the summary used when the customer wrote nothing.
const NoDescription = "No free-text description provided yet."

// QA is an answered question handed to a Summarizer.
type QA struct {
	Question string
	Answer   string
}

// Summarizer condenses the customer's notes and answers into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, notes string, pairs []QA) (string, error)
}

type ClarifyService interface {
	Clarify(ctx context.Context, req models.ClarifyRequest) (*models.ClarifyResponse, error)
}

type DefaultClarifyService struct {
	Questions  []string
	Summarizer Summarizer
	Timeout    time.Duration
	Logger     *zap.Logger
}

func NewClarifyService(summarizer Summarizer, logger *zap.Logger) *DefaultClarifyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultClarifyService{
		Questions:  models.DefaultClarifierQuestions,
		Summarizer: summarizer,
		Timeout:    8 * time.Second,
		Logger:     logger,
	}
}

// Clarify returns the questions still unanswered, or the full list when every one has an answer.
func (s *DefaultClarifyService) Clarify(ctx context.Context, req models.ClarifyRequest) (*models.ClarifyResponse, error) {
	questions := s.Questions
	if len(questions) == 0 {
		questions = models.DefaultClarifierQuestions
	}
	notes := strings.TrimSpace(req.Notes)

	var next []string
	var pairs []QA
	for i, q := range questions {
		if i < len(req.Answers) && strings.TrimSpace(req.Answers[i]) != "" {
			pairs = append(pairs, QA{Question: q, Answer: strings.TrimSpace(req.Answers[i])})
			continue
		}
		next = append(next, q)
	}

	resp := &models.ClarifyResponse{
		PromptSummary: notes,
		Questions:     next,
		Completed:     len(next) == 0,
	}
	if resp.Completed {
		resp.Questions = append([]string(nil), questions...)
	}
	if notes == "" {
		resp.PromptSummary = NoDescription
	}

	if s.Summarizer != nil && (notes != "" || len(pairs) > 0) {
		if summary := s.summarize(ctx, notes, pairs); summary != "" {
			resp.PromptSummary = summary
		}
	}
	return resp, nil
}

func (s *DefaultClarifyService) summarize(ctx context.Context, notes string, pairs []QA) string {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	summary, err := s.Summarizer.Summarize(ctx, notes, pairs)
	if err != nil {
		s.Logger.Debug("Clarify summary fell back to notes", zap.Error(err))
		return ""
	}
	return summary
}
