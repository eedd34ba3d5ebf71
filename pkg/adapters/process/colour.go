package process

import (
	"strconv"
	"strings"
)

// ParseColour reads "rgb(r, g, b)". Each component that is missing or not a
// number in 0..255 falls back to 255.
func ParseColour(s string) (r, g, b uint8) {
	rgb := [3]uint8{255, 255, 255}

	body := strings.TrimSpace(s)
	body = strings.TrimPrefix(body, "rgb(")
	body = strings.TrimSuffix(body, ")")

	for i, part := range strings.SplitN(body, ",", 3) {
		if v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8); err == nil {
			rgb[i] = uint8(v)
		}
	}
	return rgb[0], rgb[1], rgb[2]
}
