package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/SAP-F-2025/quiz-generation-service/internal/errors"
	"github.com/SAP-F-2025/quiz-generation-service/internal/llm"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/SAP-F-2025/quiz-generation-service/pkg/monitoring"
	"golang.org/x/sync/errgroup"
)

const reasonInvalidRecord = "invalid_record"

// Request is one generation run. A zero count disables that type.
type Request struct {
	Text       string
	Difficulty models.Difficulty
	MCQCount   int
	TFCount    int
	WHCount    int
}

func (r Request) Count(t models.QuestionType) int {
	switch t {
	case models.QuestionMCQ:
		return r.MCQCount
	case models.QuestionTF:
		return r.TFCount
	case models.QuestionWH:
		return r.WHCount
	}
	return 0
}

// TypeReport records what happened to one question type.
type TypeReport struct {
	Type      models.QuestionType `json:"type"`
	Requested int                 `json:"requested"`
	Parsed    int                 `json:"parsed"`
	Kept      int                 `json:"kept"`
	Dropped   int                 `json:"dropped"`
	Failure   string              `json:"failure,omitempty"`
}

// Report summarizes degradation across a run. Degradation never fails the run.
type Report struct {
	Types    []TypeReport `json:"types"`
	Warnings []string     `json:"warnings,omitempty"`
}

// Degraded counts failed arrays plus dropped records.
func (r Report) Degraded() int {
	n := 0
	for _, t := range r.Types {
		n += t.Dropped
		if t.Failure != "" {
			n++
		}
	}
	return n
}

// Result holds the typed questions of a run. Slices are never nil.
type Result struct {
	MCQ    []models.MCQQuestion `json:"mcq_questions"`
	TF     []models.TFQuestion  `json:"tf_questions"`
	WH     []models.WHQuestion  `json:"wh_questions"`
	Report Report               `json:"report"`
}

type Generator struct {
	completer llm.Completer
	timeout   time.Duration
	logger    utils.Logger
}

func NewGenerator(completer llm.Completer, timeout time.Duration, logger utils.Logger) *Generator {
	return &Generator{
		completer: completer,
		timeout:   timeout,
		logger:    logger.With("component", "generator"),
	}
}

// Generate calls the model once per enabled type, all concurrently. The first
// call error cancels the others and fails the run with a GenerationError.
// Unparseable replies only degrade the affected type to an empty array.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	replies := make([]string, len(models.QuestionTypes))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, qt := range models.QuestionTypes {
		prompt := BuildPrompt(qt, req.Count(qt), req.Difficulty, req.Text)
		if prompt == "" {
			continue
		}
		eg.Go(func() error {
			reply, err := g.completer.Complete(egCtx, prompt)
			if err != nil {
				return apperrors.NewGenerationError(string(qt), err)
			}
			replies[i] = reply
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		g.logger.ErrorContext(ctx, "Question generation failed", "error", err)
		return nil, err
	}

	result := &Result{
		MCQ: []models.MCQQuestion{},
		TF:  []models.TFQuestion{},
		WH:  []models.WHQuestion{},
	}

	for i, qt := range models.QuestionTypes {
		requested := req.Count(qt)
		if requested <= 0 {
			continue
		}

		report := TypeReport{Type: qt, Requested: requested}
		var failure *ParseFailure

		switch qt {
		case models.QuestionMCQ:
			var items []models.MCQQuestion
			items, failure = Parse[models.MCQQuestion](replies[i])
			report.Parsed = len(items)
			result.MCQ = filter(items, cleanMCQ)
			report.Kept = len(result.MCQ)
		case models.QuestionTF:
			var items []models.TFQuestion
			items, failure = Parse[models.TFQuestion](replies[i])
			report.Parsed = len(items)
			result.TF = filter(items, cleanTF)
			report.Kept = len(result.TF)
		case models.QuestionWH:
			var items []models.WHQuestion
			items, failure = Parse[models.WHQuestion](replies[i])
			report.Parsed = len(items)
			result.WH = filter(items, cleanWH)
			report.Kept = len(result.WH)
		}

		report.Dropped = report.Parsed - report.Kept
		g.recordDegradation(ctx, &result.Report, &report, failure)
		result.Report.Types = append(result.Report.Types, report)
	}

	g.logger.InfoContext(ctx, "Questions generated",
		"mcq", len(result.MCQ),
		"tf", len(result.TF),
		"wh", len(result.WH),
		"degraded", result.Report.Degraded())
	return result, nil
}

func (g *Generator) recordDegradation(ctx context.Context, report *Report, tr *TypeReport, failure *ParseFailure) {
	if failure != nil {
		tr.Failure = string(failure.Reason)
		monitoring.ParseDegradations.WithLabelValues(string(tr.Type), string(failure.Reason)).Inc()
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%s questions could not be read from the model reply", typeLabel(tr.Type)))
		g.logger.WarnContext(ctx, "Model reply not parseable",
			"question_type", tr.Type,
			"reason", failure.Reason,
			"error", failure.Err)
	}
	if tr.Dropped > 0 {
		monitoring.ParseDegradations.WithLabelValues(string(tr.Type), reasonInvalidRecord).Add(float64(tr.Dropped))
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d malformed %s questions were discarded", tr.Dropped, typeLabel(tr.Type)))
	}
}

func filter[T any](items []T, clean func(T) (T, bool)) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if cleaned, ok := clean(item); ok {
			out = append(out, cleaned)
		}
	}
	return out
}

// cleanMCQ keeps questions with text, at least two options, and exactly one correct option.
func cleanMCQ(q models.MCQQuestion) (models.MCQQuestion, bool) {
	q.Question = strings.TrimSpace(q.Question)
	q.Explanation = strings.TrimSpace(q.Explanation)
	if q.Question == "" || len(q.Options) < 2 || q.CorrectCount() != 1 {
		return q, false
	}
	options := make([]models.MCQOption, len(q.Options))
	for i, opt := range q.Options {
		opt.Text = strings.TrimSpace(opt.Text)
		if opt.Text == "" {
			return q, false
		}
		options[i] = opt
	}
	q.Options = options
	return q, true
}

func cleanTF(q models.TFQuestion) (models.TFQuestion, bool) {
	q.Question = strings.TrimSpace(q.Question)
	q.Explanation = strings.TrimSpace(q.Explanation)
	return q, q.Question != ""
}

func cleanWH(q models.WHQuestion) (models.WHQuestion, bool) {
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.TrimSpace(q.Answer)
	return q, q.Question != "" && q.Answer != ""
}
