package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quarrylabs/quarry/internal/domain"
	"github.com/quarrylabs/quarry/internal/domain/search/cursor"
	"github.com/quarrylabs/quarry/internal/domain/search/direction"
	"github.com/quarrylabs/quarry/internal/domain/search/request"
	"github.com/quarrylabs/quarry/internal/domain/search/result"
	"github.com/quarrylabs/quarry/internal/metrics"
)

// DefaultCandidateCap is the per-channel candidate retrieval cap.
const DefaultCandidateCap = 200

// Meta describes the returned page and its navigation state.
// HasNext is true exactly when NextCursor is non-empty, likewise HasPrev;
// the planner derives both from the same cursor values.
type Meta struct {
	TotalEstimate  int
	NextCursor     string
	PrevCursor     string
	HasNext        bool
	HasPrev        bool
	Limit          int
	RequestedLimit int
	Direction      direction.Direction
}

// Response is the assembled search result envelope.
type Response struct {
	Items []result.Result
	Meta  Meta
}

// Service coordinates retrieval, fusion and pagination for one request.
// It holds no per-request state: the fused pool lives and dies with a
// single Search call and is never cached across requests.
type Service struct {
	lexical      LexicalSearcher
	vector       VectorSearcher
	candidateCap int
	logger       *zap.Logger
}

// New creates a search service.
func New(lexical LexicalSearcher, vector VectorSearcher, logger *zap.Logger) *Service {
	return &Service{
		lexical:      lexical,
		vector:       vector,
		candidateCap: DefaultCandidateCap,
		logger:       logger,
	}
}

// WithCandidateCap overrides the per-channel retrieval cap.
func (s *Service) WithCandidateCap(cap int) *Service {
	if cap > 0 {
		s.candidateCap = cap
	}
	return s
}

// channelOutcome is the result of one retrieval channel call.
type channelOutcome struct {
	candidates []domain.Candidate
	elapsed    time.Duration
	err        error
}

// Search executes one fused, paginated search request.
func (s *Service) Search(ctx context.Context, req *request.Request) (*Response, error) {
	lexical, vector, err := s.retrieve(ctx, req.Query())
	if err != nil {
		return nil, err
	}

	pool := fuse(lexical, vector)
	metrics.FusedPoolSize.Observe(float64(len(pool)))

	cur := cursor.Decode(req.Cursor())
	w := paginate(pool, cur, req.Direction(), req.Limit())

	return &Response{
		Items: w.items,
		Meta: Meta{
			TotalEstimate:  len(pool),
			NextCursor:     w.next.Encode(),
			PrevCursor:     w.prev.Encode(),
			HasNext:        w.hasNext(),
			HasPrev:        w.hasPrev(),
			Limit:          req.Limit(),
			RequestedLimit: req.RequestedLimit(),
			Direction:      req.Direction(),
		},
	}, nil
}

// retrieve invokes both channels concurrently and waits for both. A
// single failed channel degrades to an empty candidate list; both failing
// fails the request.
func (s *Service) retrieve(ctx context.Context, query string) (lexical, vector []domain.Candidate, err error) {
	lexCh := make(chan channelOutcome, 1)
	vecCh := make(chan channelOutcome, 1)

	go func() {
		start := time.Now()
		cands, err := s.lexical.Search(ctx, query, s.candidateCap)
		lexCh <- channelOutcome{candidates: cands, elapsed: time.Since(start), err: err}
	}()
	go func() {
		start := time.Now()
		cands, err := s.vector.Search(ctx, query, s.candidateCap)
		vecCh <- channelOutcome{candidates: cands, elapsed: time.Since(start), err: err}
	}()

	lexRes := <-lexCh
	vecRes := <-vecCh

	metrics.ChannelDuration.WithLabelValues("lexical").Observe(lexRes.elapsed.Seconds())
	metrics.ChannelDuration.WithLabelValues("vector").Observe(vecRes.elapsed.Seconds())

	if lexRes.err != nil && vecRes.err != nil {
		metrics.ChannelErrorsTotal.WithLabelValues("lexical").Inc()
		metrics.ChannelErrorsTotal.WithLabelValues("vector").Inc()
		return nil, nil, fmt.Errorf("%w: lexical: %v; vector: %v",
			domain.ErrRetrievalFailed, lexRes.err, vecRes.err)
	}
	if lexRes.err != nil {
		metrics.ChannelErrorsTotal.WithLabelValues("lexical").Inc()
		s.logger.Warn("lexical channel failed, degrading to vector-only",
			zap.Error(lexRes.err))
		lexRes.candidates = nil
	}
	if vecRes.err != nil {
		metrics.ChannelErrorsTotal.WithLabelValues("vector").Inc()
		s.logger.Warn("vector channel failed, degrading to lexical-only",
			zap.Error(vecRes.err))
		vecRes.candidates = nil
	}

	return lexRes.candidates, vecRes.candidates, nil
}
