package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/macrolens/macrolens/pkg/core"
)

// Memoize wraps a step with a result cache keyed by the exact input series.
// It replaces the original dashboard's reactive dependency tracking: the
// caller reruns the pipeline on every input change and the cache makes the
// unchanged reruns free. Determinism makes caching safe; the key uses the
// raw float bits so missing observations and signed zeros key distinctly.
//
// The cache is not synchronized. Recomputation in this layer is
// single-threaded by design; give each goroutine its own memoized step.
func Memoize(step Step) Step {
	cache := make(map[string]core.Series)

	return func(s core.Series) (core.Series, error) {
		key := fingerprint(s)
		if cached, ok := cache[key]; ok {
			return cached.Clone(), nil
		}

		out, err := step(s)
		if err != nil {
			return core.Series{}, err
		}

		cache[key] = out.Clone()
		return out, nil
	}
}

func fingerprint(s core.Series) string {
	var b strings.Builder
	for i, date := range s.Dates {
		b.WriteString(date)
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(math.Float64bits(s.Values[i]), 16))
		b.WriteByte(';')
	}
	return b.String()
}
