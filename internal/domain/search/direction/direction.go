package direction

// Direction is the pagination stepping direction.
type Direction string

// Pagination direction constants.
const (
	// Forward steps toward the end of the fused pool.
	Forward Direction = "forward"
	// Backward steps toward the start of the fused pool, away from the
	// item referenced by the cursor.
	Backward Direction = "backward"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Forward || d == Backward
}
