package parsing

import (
	"errors"
	"strings"

	"github.com/jonathan/interval-barycentre/internal/geometry"
)

// Collection is the per-solution barycentres of a section together with what was
// skipped on the way.
type Collection struct {
	Vectors      [][]float64
	BlankSkipped int
	Arity        int
}

// CollectBarycentres extracts every non-blank line. Blank lines are counted, never
// passed to the extractor. All solutions must share one arity.
func CollectBarycentres(lines []string) (*Collection, error) {
	c := &Collection{Vectors: make([][]float64, 0, len(lines))}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			c.BlankSkipped++
			continue
		}

		bars, err := Barycentres(line)
		if err != nil {
			var fe *geometry.FormatError
			if errors.As(err, &fe) && fe.Line == 0 {
				fe.Line = i + 1
			}
			return nil, err
		}

		if len(c.Vectors) == 0 {
			c.Arity = len(bars)
		} else if len(bars) != c.Arity {
			return nil, &geometry.ShapeMismatchError{
				Message:  "solution arity differs from the first solution",
				Index:    len(c.Vectors),
				Expected: c.Arity,
				Got:      len(bars),
			}
		}
		c.Vectors = append(c.Vectors, bars)
	}

	return c, nil
}
