// Package cursor implements the opaque pagination position marker.
//
// A cursor references one item of the fused pool by score and object id,
// with an optional pool position. Two wire shapes exist: the legacy shape
// (score + object id) and the current shape (score + object id + position).
// Both stay decodable indefinitely, and decoding never fails: malformed
// input degrades to the None cursor, which readers treat as "start of pool".
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"math"
)

// Precision is the number of decimal places a score is rounded to before
// it enters a cursor. Rounding at this boundary is what makes
// encode/decode round-trip exactly.
const Precision = 6

// Shape identifies the decoded cursor variant.
type Shape int

// Cursor shapes.
const (
	// None is the absent-cursor sentinel (no cursor supplied, or the
	// supplied one was undecodable).
	None Shape = iota
	// Legacy carries score and object id only.
	Legacy
	// Current additionally carries the pool position at encoding time.
	Current
)

// Cursor is a decoded position marker.
type Cursor struct {
	shape    Shape
	score    float64
	objectID string
	position int
}

// New creates a current-shape cursor. The score is rounded to Precision
// decimal places here, at the point it enters the cursor.
func New(objectID string, score float64, position int) Cursor {
	return Cursor{
		shape:    Current,
		score:    Round(score),
		objectID: objectID,
		position: position,
	}
}

// NewLegacy creates a legacy-shape cursor (no position). Used by tests
// and by clients predating positional cursors.
func NewLegacy(objectID string, score float64) Cursor {
	return Cursor{
		shape:    Legacy,
		score:    Round(score),
		objectID: objectID,
	}
}

// Shape returns the cursor variant.
func (c Cursor) Shape() Shape { return c.shape }

// IsNone reports whether the cursor is absent.
func (c Cursor) IsNone() bool { return c.shape == None }

// Score returns the rounded fused score the cursor was encoded with.
func (c Cursor) Score() float64 { return c.score }

// ObjectID returns the referenced object identifier.
func (c Cursor) ObjectID() string { return c.objectID }

// Position returns the pool position at encoding time. ok is false for
// legacy and absent cursors.
func (c Cursor) Position() (int, bool) {
	if c.shape != Current {
		return 0, false
	}
	return c.position, true
}

// Round rounds a fused score to Precision decimal places.
func Round(score float64) float64 {
	const factor = 1e6
	return math.Round(score*factor) / factor
}

// payload is the wire shape. Position is a pointer so the legacy shape
// (field absent) survives a decode/encode round-trip.
type payload struct {
	Score    float64 `json:"score"`
	ObjectID string  `json:"object_id"`
	Position *int    `json:"position,omitempty"`
}

// Encode serializes the cursor as an opaque base64url string. Encoding
// the None cursor yields the empty string.
func (c Cursor) Encode() string {
	if c.shape == None {
		return ""
	}
	p := payload{Score: c.score, ObjectID: c.objectID}
	if c.shape == Current {
		pos := c.position
		p.Position = &pos
	}
	data, err := json.Marshal(p)
	if err != nil {
		// payload contains only a finite float, a string and an int
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode parses an opaque cursor string. It never fails: empty, truncated
// or otherwise malformed input yields the None cursor, so a corrupted
// cursor degrades to the first page instead of erroring the request.
func Decode(raw string) Cursor {
	if raw == "" {
		return Cursor{}
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		// Tolerate padded base64 from older clients.
		data, err = base64.URLEncoding.DecodeString(raw)
		if err != nil {
			return Cursor{}
		}
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Cursor{}
	}
	if p.ObjectID == "" {
		return Cursor{}
	}
	if math.IsNaN(p.Score) || math.IsInf(p.Score, 0) {
		return Cursor{}
	}

	if p.Position != nil && *p.Position >= 0 {
		return Cursor{shape: Current, score: Round(p.Score), objectID: p.ObjectID, position: *p.Position}
	}
	return Cursor{shape: Legacy, score: Round(p.Score), objectID: p.ObjectID}
}
