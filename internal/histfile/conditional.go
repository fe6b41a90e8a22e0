package histfile

import (
	"io"
	"strconv"

	"github.com/lattice-data/seqgen/internal/prob"
)

// LoadConditional parses the conditional-combined format (spec.md §6):
// header "@numberofconditions = K", then K blocks each opening with
// "@condition = [min, max)" followed inline by a combined-histogram block.
func LoadConditional(path string, r io.Reader) (prob.Conditional, error) {
	ls := newLineScanner(path, r)

	k, err := expectHeaderInt(ls, "numberofconditions")
	if err != nil {
		return prob.Conditional{}, err
	}

	buckets := make([]prob.CondBucket, 0, k)
	for i := 0; i < k; i++ {
		text, ok := ls.next()
		if !ok {
			return prob.Conditional{}, ls.errf("expected %d condition blocks, found %d", k, i)
		}
		m := conditionRe.FindStringSubmatch(text)
		if m == nil {
			return prob.Conditional{}, ls.errf("malformed @condition line %q", text)
		}
		min, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return prob.Conditional{}, ls.errf("malformed condition min: %v", err)
		}
		max, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return prob.Conditional{}, ls.errf("malformed condition max: %v", err)
		}
		inner, err := loadCombinedFrom(ls)
		if err != nil {
			return prob.Conditional{}, err
		}
		buckets = append(buckets, prob.CondBucket{Min: min, Max: max, Inner: inner})
	}

	return prob.NewConditional(buckets), nil
}
