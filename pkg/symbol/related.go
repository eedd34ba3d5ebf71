package symbol

import (
	"fmt"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// Related derives the related hexagram from the primary reading and the second,
// short-window pass. A line that reads the same in both passes is stable and
// flips; a line that differs is kept as in primary.
func Related(primary, relatedOriginal domain.Hexagram) (domain.Hexagram, error) {
	if len(primary) != 6 || len(relatedOriginal) != 6 {
		return "", fmt.Errorf("%w: primary %q, related %q", domain.ErrInvalidLength, primary, relatedOriginal)
	}

	out := make([]byte, 6)
	for i := 0; i < 6; i++ {
		p := domain.Line(primary[i])
		if p == domain.Line(relatedOriginal[i]) {
			out[i] = byte(p.Complement())
		} else {
			out[i] = byte(p)
		}
	}
	return domain.Hexagram(out), nil
}
