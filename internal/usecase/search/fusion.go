package search

import (
	"math"
	"sort"

	"github.com/quarrylabs/quarry/internal/domain"
	"github.com/quarrylabs/quarry/internal/domain/search/result"
)

// Channel weights for objects scored by both channels. An object present
// in only one channel takes that channel's z-score with weight 1.0.
const (
	lexicalWeight = 0.55
	vectorWeight  = 0.45
)

// fuse z-score normalizes each channel's candidate set and combines the
// two into a single pool ordered by fused score descending, object id
// ascending on ties. Normalization statistics are computed from this
// request's candidates only, so the ordering is not stable across requests
// for the same query.
func fuse(lexical, vector []domain.Candidate) []result.Result {
	lexZ := zscores(lexical)
	vecZ := zscores(vector)

	type entry struct {
		lexRaw, vecRaw float64
		lexZ, vecZ     float64
		inLex, inVec   bool
	}

	merged := make(map[string]*entry, len(lexical)+len(vector))

	for _, c := range lexical {
		merged[c.ID] = &entry{lexRaw: c.Score, lexZ: lexZ[c.ID], inLex: true}
	}
	for _, c := range vector {
		e, ok := merged[c.ID]
		if !ok {
			e = &entry{}
			merged[c.ID] = e
		}
		e.vecRaw = c.Score
		e.vecZ = vecZ[c.ID]
		e.inVec = true
	}

	pool := make([]result.Result, 0, len(merged))
	for id, e := range merged {
		var fused float64
		switch {
		case e.inLex && e.inVec:
			fused = lexicalWeight*e.lexZ + vectorWeight*e.vecZ
		case e.inLex:
			fused = e.lexZ
		default:
			fused = e.vecZ
		}
		pool = append(pool, result.New(id, fused, e.lexRaw, e.vecRaw, e.inLex, e.inVec))
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].FusedScore() != pool[j].FusedScore() {
			return pool[i].FusedScore() > pool[j].FusedScore()
		}
		return pool[i].ObjectID() < pool[j].ObjectID()
	})

	return pool
}

// zscores computes (raw - mean) / stddev over the candidate set. A set
// with zero variance (single candidate, or all scores equal) maps every
// member to 0 instead of dividing by zero.
func zscores(cands []domain.Candidate) map[string]float64 {
	z := make(map[string]float64, len(cands))
	if len(cands) == 0 {
		return z
	}

	var sum float64
	for _, c := range cands {
		sum += c.Score
	}
	mean := sum / float64(len(cands))

	var sqSum float64
	for _, c := range cands {
		d := c.Score - mean
		sqSum += d * d
	}
	stddev := math.Sqrt(sqSum / float64(len(cands)))

	for _, c := range cands {
		if stddev == 0 {
			z[c.ID] = 0
		} else {
			z[c.ID] = (c.Score - mean) / stddev
		}
	}
	return z
}
