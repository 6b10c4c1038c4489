package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rhyton-cad/rhyton/internal/colour"
)

// rgbValue is a pflag.Value accepting either a hex colour ("c8c8ff",
// "#c8c8ff") or a comma-separated triple ("200,200,255").
type rgbValue struct {
	c *colour.RGB
}

var _ pflag.Value = (*rgbValue)(nil)

func newRGBValue(c *colour.RGB) *rgbValue {
	return &rgbValue{c: c}
}

func (v *rgbValue) String() string {
	return v.c.Hex()
}

func (v *rgbValue) Type() string {
	return "colour"
}

func (v *rgbValue) Set(s string) error {
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return fmt.Errorf("expected r,g,b with three components, got %q", s)
		}
		channels := make([]uint8, 3)
		for i, part := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
			if err != nil {
				return fmt.Errorf("channel %q must be an integer 0-255", part)
			}
			channels[i] = uint8(n)
		}
		*v.c = colour.RGB{R: channels[0], G: channels[1], B: channels[2]}
		return nil
	}

	c, err := colour.ParseHex(s)
	if err != nil {
		return err
	}
	*v.c = c
	return nil
}
