package faq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/embedder"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/embedder/embeddertest"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/knowledge"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/retrieval"
)

func newService(t *testing.T, records []knowledge.Record, stub *embeddertest.Stub, opts ...Option) *Service {
	t.Helper()
	corpus := knowledge.NewCorpus(records)
	searcher, err := retrieval.Build(context.Background(), corpus, stub)
	require.NoError(t, err)
	return NewService(searcher, corpus, opts...)
}

// "What are your hours?" embeds exactly like "Open hours?".
func hoursFixture() ([]knowledge.Record, *embeddertest.Stub) {
	records := []knowledge.Record{
		{Question: "Open hours?", Answer: "9 to 5."},
		{Question: "Refunds?", Answer: "Within 60 days."},
		{Question: "Phone number?", Answer: "1-800-SUPPORT."},
	}
	stub := &embeddertest.Stub{
		Dim: 3,
		Vectors: map[string][]float32{
			"Open hours?":              {1, 0, 0},
			"Refunds?":                 {0, 1, 0},
			"Phone number?":            {0, 0, 4},
			"What are your hours?":     {1, 0, 0},
			"Can I get my money back?": {0.5, 1, 0},
			"Something else entirely":  {10, 10, 10},
		},
	}
	return records, stub
}

func TestGetAnswer_NearDuplicate(t *testing.T) {
	records, stub := hoursFixture()
	s := newService(t, records, stub)

	resp, err := s.GetAnswer(context.Background(), "What are your hours?")
	require.NoError(t, err)

	assert.Equal(t, "What are your hours?", resp.Question)
	assert.Equal(t, "9 to 5.", resp.Answer)
	require.NotNil(t, resp.MatchedQuestion)
	assert.Equal(t, "Open hours?", *resp.MatchedQuestion)
	require.NotNil(t, resp.Distance)
	assert.Zero(t, *resp.Distance)
	assert.Equal(t, 1.0, resp.Confidence)
}

func TestGetAnswer_SingleRecordScenario(t *testing.T) {
	stub := &embeddertest.Stub{
		Dim: 2,
		Vectors: map[string][]float32{
			"Open hours?":          {1, 0},
			"What are your hours?": {1.2, 0.1},
		},
	}
	s := newService(t, []knowledge.Record{{Question: "Open hours?", Answer: "9 to 5."}}, stub)

	resp, err := s.GetAnswer(context.Background(), "What are your hours?")
	require.NoError(t, err)

	assert.Equal(t, "9 to 5.", resp.Answer)
	assert.Greater(t, resp.Confidence, 0.0)
	assert.Less(t, resp.Confidence, 1.0)
}

func TestGetAnswer_PartialConfidence(t *testing.T) {
	records, stub := hoursFixture()
	s := newService(t, records, stub)

	resp, err := s.GetAnswer(context.Background(), "Can I get my money back?")
	require.NoError(t, err)

	assert.Equal(t, "Within 60 days.", resp.Answer)
	require.NotNil(t, resp.Distance)
	assert.InDelta(t, 0.25, *resp.Distance, 1e-9)
	assert.InDelta(t, 0.975, resp.Confidence, 1e-9)
}

func TestGetAnswer_FarMatchHasZeroConfidence(t *testing.T) {
	records, stub := hoursFixture()
	s := newService(t, records, stub)

	resp, err := s.GetAnswer(context.Background(), "Something else entirely")
	require.NoError(t, err)

	require.NotNil(t, resp.MatchedQuestion)
	require.NotNil(t, resp.Distance)
	assert.Greater(t, *resp.Distance, DefaultDistanceScale)
	assert.Equal(t, 0.0, resp.Confidence)
}

func TestGetAnswer_EmptyCorpus(t *testing.T) {
	stub := &embeddertest.Stub{Dim: 3}
	s := newService(t, nil, stub)

	resp, err := s.GetAnswer(context.Background(), "anything")
	require.NoError(t, err)

	assert.Equal(t, "anything", resp.Question)
	assert.Equal(t, NoAnswer, resp.Answer)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.Nil(t, resp.MatchedQuestion)
	assert.Nil(t, resp.Distance)
}

func TestGetAnswer_EmbeddingError(t *testing.T) {
	records, stub := hoursFixture()
	s := newService(t, records, stub)
	stub.Err = errors.New("backend unavailable")

	_, err := s.GetAnswer(context.Background(), "What are your hours?")
	require.Error(t, err)
	assert.ErrorIs(t, err, embedder.ErrEmbedding)
}

func TestWithDistanceScale(t *testing.T) {
	records, stub := hoursFixture()
	s := newService(t, records, stub, WithDistanceScale(0.5))
	assert.Equal(t, 0.5, s.DistanceScale())

	resp, err := s.GetAnswer(context.Background(), "Can I get my money back?")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, resp.Confidence, 1e-9)

	ignored := newService(t, records, stub, WithDistanceScale(-1))
	assert.Equal(t, DefaultDistanceScale, ignored.DistanceScale())
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 1.0, Confidence(0, 10))
	assert.InDelta(t, 0.5, Confidence(5, 10), 1e-12)
	assert.Equal(t, 0.0, Confidence(10, 10))
	assert.Equal(t, 0.0, Confidence(250, 10))

	// monotonically non-increasing and bounded
	prev := Confidence(0, DefaultDistanceScale)
	for d := 0.0; d <= 20; d += 0.125 {
		c := Confidence(d, DefaultDistanceScale)
		assert.LessOrEqual(t, c, prev, "distance %v", d)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
		if d > 0 {
			assert.Less(t, c, 1.0, "distance %v", d)
		}
		prev = c
	}
}

func TestGetContext(t *testing.T) {
	records, stub := hoursFixture()
	s := newService(t, records, stub)

	got, err := s.GetContext(context.Background(), "Can I get my money back?", 2)
	require.NoError(t, err)

	want := "Q: Refunds?\nA: Within 60 days.\n\nQ: Open hours?\nA: 9 to 5."
	assert.Equal(t, want, got)
}

func TestGetContext_KLargerThanCorpus(t *testing.T) {
	records, stub := hoursFixture()
	s := newService(t, records, stub)

	got, err := s.GetContext(context.Background(), "What are your hours?", 10)
	require.NoError(t, err)
	assert.Equal(t,
		"Q: Open hours?\nA: 9 to 5.\n\nQ: Refunds?\nA: Within 60 days.\n\nQ: Phone number?\nA: 1-800-SUPPORT.",
		got)
}

func TestGetContext_EmptyCorpus(t *testing.T) {
	s := newService(t, nil, &embeddertest.Stub{Dim: 3})

	got, err := s.GetContext(context.Background(), "anything", 2)
	require.NoError(t, err)
	assert.Equal(t, "No relevant information found in knowledge base.", got)
}

func TestLookupInfo_UsesContextK(t *testing.T) {
	records, stub := hoursFixture()

	s := newService(t, records, stub)
	got, err := s.LookupInfo(context.Background(), "What are your hours?")
	require.NoError(t, err)
	want, err := s.GetContext(context.Background(), "What are your hours?", DefaultContextK)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	one := newService(t, records, stub, WithContextK(1))
	got, err = one.LookupInfo(context.Background(), "What are your hours?")
	require.NoError(t, err)
	assert.Equal(t, "Q: Open hours?\nA: 9 to 5.", got)
}

type badSearcher struct{}

func (badSearcher) Search(context.Context, string, int) ([]retrieval.SearchResult, error) {
	return []retrieval.SearchResult{{RecordIndex: 5}}, nil
}

func TestService_RejectsMisalignedIndex(t *testing.T) {
	s := NewService(badSearcher{}, knowledge.NewCorpus([]knowledge.Record{{Question: "q", Answer: "a"}}))

	_, err := s.GetAnswer(context.Background(), "q")
	assert.Error(t, err)
}
