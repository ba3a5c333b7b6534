package result

// Result is a single fused search hit. Channel scores are preserved for
// diagnostics; only the fused score participates in ordering.
type Result struct {
	objectID   string
	fusedScore float64
	lexScore   float64
	vecScore   float64
	inLexical  bool
	inVector   bool
}

// New creates a fused result. hasLex/hasVec report which channels
// contributed; the matching raw channel score is kept as-is.
func New(objectID string, fusedScore, lexScore, vecScore float64, hasLex, hasVec bool) Result {
	return Result{
		objectID:   objectID,
		fusedScore: fusedScore,
		lexScore:   lexScore,
		vecScore:   vecScore,
		inLexical:  hasLex,
		inVector:   hasVec,
	}
}

// ObjectID returns the object identifier.
func (r *Result) ObjectID() string { return r.objectID }

// FusedScore returns the combined relevance score.
func (r *Result) FusedScore() float64 { return r.fusedScore }

// LexicalScore returns the raw lexical channel score and whether the
// object appeared in the lexical channel at all.
func (r *Result) LexicalScore() (float64, bool) { return r.lexScore, r.inLexical }

// VectorScore returns the raw vector channel score and whether the
// object appeared in the vector channel at all.
func (r *Result) VectorScore() (float64, bool) { return r.vecScore, r.inVector }
