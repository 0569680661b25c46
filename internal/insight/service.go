package insight

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/metrics"

	"github.com/openai/openai-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultModel    = "openai/gpt-4o-mini"
	SuccessTTL      = 24 * time.Hour
	FailureTTL      = 5 * time.Minute
	generateTimeout = 20 * time.Second

	temperature = 0.4
	maxTokens   = 120
)

var errEmptyCompletion = errors.New("empty completion")

// Service produces one insight per day and preference set.
type Service struct {
	tracer trace.Tracer
	llm    LLMClient
	store  Store
	model  string
	group  singleflight.Group
	now    func() time.Time
}

// NewService builds the generator. A nil llm disables generation and every
// call returns the static disabled message.
func NewService(tracer trace.Tracer, llm LLMClient, store Store, model string) *Service {
	if store == nil {
		store = NewMemoryStore()
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Service{
		tracer: tracer,
		llm:    llm,
		store:  store,
		model:  model,
		now:    time.Now,
	}
}

func (s *Service) Enabled() bool { return s.llm != nil }

// Daily returns the insight for prefs and today's UTC date. It never
// fails: provider trouble yields the fallback text.
func (s *Service) Daily(ctx context.Context, prefs domain.InsightPreferences) domain.Insight {
	ctx, span := s.tracer.Start(ctx, "insight.daily")
	defer span.End()

	if !s.Enabled() {
		metrics.RecordInsightGeneration("disabled")
		return domain.Insight{Text: DisabledText, GeneratedAt: s.now().UTC(), Source: domain.InsightFallback}
	}

	prefs = Normalize(prefs)
	key := Key(prefs, s.now())
	span.SetAttributes(attribute.String("insight.key", key))

	if v, ok := s.store.Get(ctx, key); ok {
		span.SetAttributes(attribute.Bool("insight.cached", true))
		return v
	}

	v, _, shared := s.group.Do(key, func() (interface{}, error) {
		if v, ok := s.store.Get(ctx, key); ok {
			return v, nil
		}
		// generation outlives any single caller
		genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), generateTimeout)
		defer cancel()
		return s.generate(genCtx, key, prefs), nil
	})
	span.SetAttributes(attribute.Bool("insight.shared", shared))
	return v.(domain.Insight)
}

func (s *Service) generate(ctx context.Context, key string, prefs domain.InsightPreferences) domain.Insight {
	text, err := s.callLLM(ctx, prefs)
	if err != nil {
		log.Printf("insight generation failed for %s: %v", key, err)
		metrics.RecordInsightGeneration("failed")
		out := domain.Insight{Text: UnavailableText, GeneratedAt: s.now().UTC(), Source: domain.InsightFallback}
		s.store.Set(ctx, key, out, FailureTTL)
		return out
	}

	metrics.RecordInsightGeneration("generated")
	out := domain.Insight{Text: text, GeneratedAt: s.now().UTC(), Source: domain.InsightGenerated}
	s.store.Set(ctx, key, out, SuccessTTL)
	return out
}

func (s *Service) callLLM(ctx context.Context, prefs domain.InsightPreferences) (string, error) {
	ctx, span := s.tracer.Start(ctx, "insight.llm-call")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", s.model))

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildUserPrompt(prefs)),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", errEmptyCompletion
	}
	span.SetAttributes(attribute.Int("llm.reply_length", len(text)))
	return text, nil
}
