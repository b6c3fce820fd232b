package retrieval

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/kotae-ai/kotae/internal/embedding"
)

// ErrEmptyQuery marks an empty or whitespace-only question. It is rejected
// before any embedding work happens.
var ErrEmptyQuery = errors.New("query is empty")

// Answer is the composed reply for one question.
type Answer struct {
	Message string
	Sources []string
	Matches []Match
}

// Service is the composition root of the core: embed the question, score it
// against the knowledge base, compose a reply.
type Service struct {
	embedder  embedding.Embedder
	retriever *Retriever
	composer  *Composer
	topK      int
	threshold float64
	logger    *zap.Logger
}

// NewService wires the pipeline. topK and threshold are the configured
// selection policy; zero topK falls back to DefaultTopK.
func NewService(embedder embedding.Embedder, retriever *Retriever, composer *Composer, topK int, threshold float64, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		embedder:  embedder,
		retriever: retriever,
		composer:  composer,
		topK:      topK,
		threshold: threshold,
		logger:    logger,
	}
}

// Ask answers a free-text question. Returns ErrEmptyQuery for blank input;
// a question with no relevant matches is answered normally with the
// no-information reply and an empty source list.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuery
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}
	matches, err := s.retriever.Search(ctx, queryVec, s.topK, s.threshold)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("question answered",
		zap.String("question", question),
		zap.Int("matches", len(matches)),
	)

	message, sources := s.composer.Compose(question, matches)
	return &Answer{Message: message, Sources: sources, Matches: matches}, nil
}
