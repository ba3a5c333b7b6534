package quarry

import (
	"context"

	"github.com/quarrylabs/quarry/internal/domain/search/direction"
	"github.com/quarrylabs/quarry/internal/domain/search/request"
	searchuc "github.com/quarrylabs/quarry/internal/usecase/search"
)

// Pagination directions for QueryOptions.Direction.
const (
	DirectionForward  = "forward"
	DirectionBackward = "backward"
)

// QueryOptions controls pagination of a Query call. The zero value asks
// for the first page with the default page size.
type QueryOptions struct {
	// Limit is the requested page size. Values above the server maximum
	// are clamped; zero or negative values fall back to the default.
	Limit int
	// Cursor resumes pagination from a previous page. Unrecognized
	// cursors restart from the first page rather than failing.
	Cursor string
	// Direction is DirectionForward or DirectionBackward. Empty means
	// forward.
	Direction string
}

// Result is one fused search hit. Channel scores are nil when the object
// was not retrieved by that channel.
type Result struct {
	ObjectID     string
	FusedScore   float64
	LexicalScore *float64
	VectorScore  *float64
}

// Page is one page of fused results with its navigation state.
type Page struct {
	Items         []Result
	TotalEstimate int
	NextCursor    string
	PrevCursor    string
	HasNext       bool
	HasPrev       bool
	Limit         int
}

// Query runs a hybrid search and returns one page of fused results.
func (c *Client) Query(ctx context.Context, query string, opts *QueryOptions) (Page, error) {
	if opts == nil {
		opts = &QueryOptions{}
	}

	dir := direction.Direction(opts.Direction)
	if opts.Direction == "" {
		dir = direction.Forward
	}

	req, err := request.New(query, opts.Limit, opts.Cursor, dir)
	if err != nil {
		return Page{}, err
	}

	resp, err := c.search.Search(ctx, &req)
	if err != nil {
		return Page{}, err
	}
	return toPage(resp), nil
}

func toPage(resp *searchuc.Response) Page {
	items := make([]Result, 0, len(resp.Items))
	for i := range resp.Items {
		r := &resp.Items[i]
		item := Result{
			ObjectID:   r.ObjectID(),
			FusedScore: r.FusedScore(),
		}
		if s, ok := r.LexicalScore(); ok {
			v := s
			item.LexicalScore = &v
		}
		if s, ok := r.VectorScore(); ok {
			v := s
			item.VectorScore = &v
		}
		items = append(items, item)
	}
	return Page{
		Items:         items,
		TotalEstimate: resp.Meta.TotalEstimate,
		NextCursor:    resp.Meta.NextCursor,
		PrevCursor:    resp.Meta.PrevCursor,
		HasNext:       resp.Meta.HasNext,
		HasPrev:       resp.Meta.HasPrev,
		Limit:         resp.Meta.Limit,
	}
}
