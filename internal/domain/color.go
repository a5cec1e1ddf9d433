package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// RGB is a single palette stop.
type RGB struct {
	R, G, B uint8
}

// RGBA is an output fill color. Marshals as a 4-element array to match the
// deck.gl color convention.
type RGBA struct {
	R, G, B, A uint8
}

// MarshalJSON renders the color as [r, g, b, a].
func (c RGBA) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d,%d,%d]", c.R, c.G, c.B, c.A)), nil
}

// UnmarshalJSON parses the [r, g, b, a] array form produced by MarshalJSON.
func (c *RGBA) UnmarshalJSON(data []byte) error {
	var channels []int
	if err := json.Unmarshal(data, &channels); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if len(channels) != 4 {
		return fmt.Errorf("color: expected 4 channels, got %d", len(channels))
	}
	for _, ch := range channels {
		if ch < 0 || ch > 255 {
			return fmt.Errorf("color: channel %d out of range", ch)
		}
	}
	c.R = uint8(channels[0])
	c.G = uint8(channels[1])
	c.B = uint8(channels[2])
	c.A = uint8(channels[3])
	return nil
}

// FillAlpha is the fixed opacity appended to every mapped color.
const FillAlpha uint8 = 180

// Palette is an ordered sequence of at least two color stops, conceptually
// evenly spaced over [0,1].
type Palette []RGB

// TemperaturePalette is the six-stop teal-to-red ramp used for diverging
// temperature metrics. Stops match the historical front end exactly.
var TemperaturePalette = Palette{
	{65, 182, 196},
	{127, 205, 187},
	{199, 233, 180},
	{237, 248, 177},
	{253, 212, 158},
	{227, 26, 28},
}

// AccumulationPalette is a light-to-dark ramp for precipitation and
// day-count metrics, anchored so that zero reads as pale.
var AccumulationPalette = Palette{
	{237, 248, 177},
	{199, 233, 180},
	{127, 205, 187},
	{65, 182, 196},
	{29, 145, 192},
	{34, 94, 168},
}

// PaletteFor returns the palette associated with a color class.
func PaletteFor(c ColorClass) Palette {
	if c == SequentialAccumulation {
		return AccumulationPalette
	}
	return TemperaturePalette
}

// ValueDomain is the [Min,Max] range a palette is stretched over for one
// metric and one query.
type ValueDomain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DomainFor selects the color domain for a set of station summaries.
// Diverging metrics span the observed min and max; sequential metrics are
// anchored at zero. A zero-width domain (including the all-zero case)
// substitutes a maximum of 1, which forces every value onto the first
// palette color.
func DomainFor(class ColorClass, summaries []StationSummary) ValueDomain {
	if len(summaries) == 0 {
		return ValueDomain{Min: 0, Max: 1}
	}

	min, max := summaries[0].Mean, summaries[0].Mean
	for _, s := range summaries[1:] {
		if s.Mean < min {
			min = s.Mean
		}
		if s.Mean > max {
			max = s.Mean
		}
	}
	if class == SequentialAccumulation {
		min = 0
		if max < min {
			max = min
		}
	}
	if max == min {
		max = 1
	}
	return ValueDomain{Min: min, Max: max}
}

// MapColor maps a value onto the palette over the given domain: clamp,
// compute the ratio, then interpolate. Pure and total for finite inputs.
func MapColor(v float64, d ValueDomain, p Palette) RGBA {
	if v < d.Min {
		v = d.Min
	} else if d.Max > d.Min && v > d.Max {
		v = d.Max
	}
	r := (v - d.Min) / (d.Max - d.Min)
	c := p.At(r)
	return RGBA{R: c.R, G: c.G, B: c.B, A: FillAlpha}
}

// At interpolates the palette at ratio r in [0,1]. The ratio is spread
// across the N-1 segments; channel blending truncates to integers rather
// than rounding, for parity with the historical output.
func (p Palette) At(r float64) RGB {
	pos := r * float64(len(p)-1)
	lower := int(math.Floor(pos))
	if lower < 0 {
		lower = 0
	}
	if lower > len(p)-1 {
		lower = len(p) - 1
	}
	upper := lower + 1
	if upper > len(p)-1 {
		upper = len(p) - 1
	}
	frac := pos - float64(lower)

	a, b := p[lower], p[upper]
	return RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*frac),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*frac),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*frac),
	}
}

// Gradient renders the palette as a CSS linear-gradient value for the
// legend bar.
func (p Palette) Gradient() string {
	stops := make([]string, len(p))
	for i, c := range p {
		stops[i] = fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return "linear-gradient(to right, " + strings.Join(stops, ", ") + ")"
}

// ApplyColors assigns each summary its fill color and formatted display
// string ("12.34 °F") in place, and returns the domain used.
func ApplyColors(summaries []StationSummary, m Metric) ValueDomain {
	palette := PaletteFor(m.Class)
	dom := DomainFor(m.Class, summaries)
	for i := range summaries {
		summaries[i].Color = MapColor(summaries[i].Mean, dom, palette)
		summaries[i].Formatted = FormatValue(summaries[i].Mean, m)
	}
	return dom
}

// FormatValue renders a metric value with its unit label, e.g. "1.50 Inches".
func FormatValue(v float64, m Metric) string {
	if m.Unit == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, m.Unit)
}
