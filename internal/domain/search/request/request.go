package request

import (
	"fmt"

	"github.com/quarrylabs/quarry/internal/domain"
	"github.com/quarrylabs/quarry/internal/domain/search/direction"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 800
	DefaultLimit   = 20
	// MaxLimit is the hard server-side page size cap. Limits above it are
	// silently clamped; both values are reported back to the client.
	MaxLimit = 50
)

// Request is a validated search query with pagination parameters.
type Request struct {
	query          string
	limit          int
	requestedLimit int
	cursor         string
	dir            direction.Direction
}

// New validates and normalizes search parameters.
// Defaults: limit=20, direction=forward. The limit is clamped to MaxLimit;
// the pre-clamp value is kept so responses can report both.
func New(query string, limit int, cursor string, dir direction.Direction) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if dir == "" {
		dir = direction.Forward
	}
	if !dir.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrInvalidDirection, dir)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	requested := limit
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{
		query:          query,
		limit:          limit,
		requestedLimit: requested,
		cursor:         cursor,
		dir:            dir,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Limit returns the effective (clamped) page size.
func (r *Request) Limit() int { return r.limit }

// RequestedLimit returns the page size the client asked for, before clamping.
func (r *Request) RequestedLimit() int { return r.requestedLimit }

// Cursor returns the opaque cursor string, empty for the first page.
func (r *Request) Cursor() string { return r.cursor }

// Direction returns the pagination direction.
func (r *Request) Direction() direction.Direction { return r.dir }
