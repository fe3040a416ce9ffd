package faq

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/knowledge"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/retrieval"
)

const (
	// DefaultDistanceScale is the distance at which confidence reaches 0.
	DefaultDistanceScale = 10.0

	// DefaultContextK is how many records LookupInfo puts in its context.
	DefaultContextK = 2

	// NoAnswer is returned by GetAnswer when the knowledge base is empty.
	NoAnswer = "I don't have information about that in my knowledge base."

	// NoContext is returned by GetContext when there is nothing to show.
	NoContext = "No relevant information found in knowledge base."
)

// AnswerResponse is the best single match for a query. MatchedQuestion and
// Distance are nil when nothing matched.
type AnswerResponse struct {
	Question        string   `json:"question"`
	Answer          string   `json:"answer"`
	Confidence      float64  `json:"confidence"`
	MatchedQuestion *string  `json:"matched_question"`
	Distance        *float64 `json:"distance"`
}

// Searcher is the part of retrieval.Searcher the service needs.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]retrieval.SearchResult, error)
}

// Service answers queries from a corpus and the searcher built over it.
type Service struct {
	searcher Searcher
	corpus   *knowledge.Corpus
	scale    float64
	contextK int
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDistanceScale overrides DefaultDistanceScale. Non-positive values are
// ignored.
func WithDistanceScale(scale float64) Option {
	return func(s *Service) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

// WithContextK overrides DefaultContextK. Values below 1 are ignored.
func WithContextK(k int) Option {
	return func(s *Service) {
		if k >= 1 {
			s.contextK = k
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a Service. corpus must be the corpus searcher was
// built from, so that result indexes line up with records.
func NewService(searcher Searcher, corpus *knowledge.Corpus, opts ...Option) *Service {
	s := &Service{
		searcher: searcher,
		corpus:   corpus,
		scale:    DefaultDistanceScale,
		contextK: DefaultContextK,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Corpus returns the corpus the service answers from.
func (s *Service) Corpus() *knowledge.Corpus {
	return s.corpus
}

// DistanceScale returns the calibration scale in use.
func (s *Service) DistanceScale() float64 {
	return s.scale
}

// Confidence maps a squared distance to [0, 1]: 1 at distance 0, falling
// linearly to 0 at distance scale and beyond.
func Confidence(distance, scale float64) float64 {
	c := 1.0 - distance/scale
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// GetAnswer returns the closest record's answer for query.
func (s *Service) GetAnswer(ctx context.Context, query string) (AnswerResponse, error) {
	results, err := s.search(ctx, query, 1)
	if err != nil {
		return AnswerResponse{}, err
	}

	if len(results) == 0 {
		return AnswerResponse{
			Question:   query,
			Answer:     NoAnswer,
			Confidence: 0,
		}, nil
	}

	hit := results[0]
	rec := s.corpus.Record(hit.RecordIndex)
	distance := hit.Distance

	resp := AnswerResponse{
		Question:        query,
		Answer:          rec.Answer,
		Confidence:      Confidence(distance, s.scale),
		MatchedQuestion: &rec.Question,
		Distance:        &distance,
	}

	s.logger.Debug("answered query",
		zap.String("query", query),
		zap.Int("record", rec.Index),
		zap.Float64("distance", distance),
		zap.Float64("confidence", resp.Confidence))

	return resp, nil
}

// GetContext renders the k closest records as "Q: ...\nA: ..." blocks,
// closest first, separated by a blank line. The layout is what the agent
// prompt expects; change both together.
func (s *Service) GetContext(ctx context.Context, query string, k int) (string, error) {
	results, err := s.search(ctx, query, k)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return NoContext, nil
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		rec := s.corpus.Record(r.RecordIndex)
		parts = append(parts, fmt.Sprintf("Q: %s\nA: %s", rec.Question, rec.Answer))
	}
	return strings.Join(parts, "\n\n"), nil
}

// LookupInfo is the function exposed to the language model: GetContext with
// the configured k.
func (s *Service) LookupInfo(ctx context.Context, query string) (string, error) {
	s.logger.Info("lookup called", zap.String("query", query))
	return s.GetContext(ctx, query, s.contextK)
}

func (s *Service) search(ctx context.Context, query string, k int) ([]retrieval.SearchResult, error) {
	results, err := s.searcher.Search(ctx, query, k)
	if err != nil {
		s.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("searching knowledge base: %w", err)
	}
	for _, r := range results {
		if r.RecordIndex < 0 || r.RecordIndex >= s.corpus.Len() {
			return nil, fmt.Errorf("search returned record %d outside corpus of %d", r.RecordIndex, s.corpus.Len())
		}
	}
	return results, nil
}
