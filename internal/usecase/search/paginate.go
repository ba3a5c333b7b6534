package search

import (
	"github.com/quarrylabs/quarry/internal/domain/search/cursor"
	"github.com/quarrylabs/quarry/internal/domain/search/direction"
	"github.com/quarrylabs/quarry/internal/domain/search/result"
)

// window is a planned page over the fused pool plus its navigation
// cursors. next and prev are the None cursor when no adjacent page exists;
// hasNext/hasPrev are derived from that, never set independently.
type window struct {
	items []result.Result
	next  cursor.Cursor
	prev  cursor.Cursor
}

func (w window) hasNext() bool { return !w.next.IsNone() }
func (w window) hasPrev() bool { return !w.prev.IsNone() }

// paginate computes the returned slice of the pool and the adjacent
// cursors for one request.
//
// Forward stepping prefers the cursor's recorded pool position (contiguous,
// comparison-free); legacy cursors without a position fall back to a
// score/id boundary scan. Backward stepping locates the cursor item by
// object id alone, so score drift between requests cannot strand the
// client; a backward cursor whose item vanished from the pool degrades to
// forward semantics.
func paginate(pool []result.Result, cur cursor.Cursor, dir direction.Direction, limit int) window {
	if len(pool) == 0 || limit <= 0 {
		return window{items: []result.Result{}}
	}

	if dir == direction.Backward && !cur.IsNone() {
		if pos := indexOf(pool, cur.ObjectID()); pos >= 0 {
			return backwardWindow(pool, pos, limit)
		}
		// Cursor item no longer in the pool: graceful forward degrade.
	}

	return forwardWindow(pool, cur, limit)
}

func forwardWindow(pool []result.Result, cur cursor.Cursor, limit int) window {
	start := 0
	switch cur.Shape() {
	case cursor.Current:
		pos, _ := cur.Position()
		start = pos + 1
	case cursor.Legacy:
		start = legacyBoundary(pool, cur)
	case cursor.None:
	}
	if start > len(pool) {
		start = len(pool)
	}
	end := start + limit
	if end > len(pool) {
		end = len(pool)
	}

	w := window{items: pool[start:end]}
	if end < len(pool) && end > start {
		last := &pool[end-1]
		w.next = cursor.New(last.ObjectID(), last.FusedScore(), end-1)
	}
	if start > 0 {
		before := &pool[start-1]
		w.prev = cursor.New(before.ObjectID(), before.FusedScore(), start-1)
	}
	return w
}

// backwardWindow returns the limit items immediately preceding pos,
// excluding the cursor item itself. Its prev cursor re-encodes the last
// returned item so the client can step forward again toward where it was.
func backwardWindow(pool []result.Result, pos, limit int) window {
	start := pos - limit
	if start < 0 {
		start = 0
	}
	end := pos

	w := window{items: pool[start:end]}
	if end > start {
		last := &pool[end-1]
		w.prev = cursor.New(last.ObjectID(), last.FusedScore(), end-1)
		if end < len(pool) {
			w.next = cursor.New(last.ObjectID(), last.FusedScore(), end-1)
		}
	}
	return w
}

// legacyBoundary finds the first pool index ranked strictly after the
// cursor item: lower rounded score, or equal score with a greater object
// id. Scores are rounded with the cursor's own rounding so the equality
// comparison against the (already rounded) cursor score is well defined.
func legacyBoundary(pool []result.Result, cur cursor.Cursor) int {
	for i := range pool {
		s := cursor.Round(pool[i].FusedScore())
		if s < cur.Score() || (s == cur.Score() && pool[i].ObjectID() > cur.ObjectID()) {
			return i
		}
	}
	return len(pool)
}

func indexOf(pool []result.Result, objectID string) int {
	for i := range pool {
		if pool[i].ObjectID() == objectID {
			return i
		}
	}
	return -1
}
