package constellation

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Recognized setting keys
const (
	KeyPointDensity             = "pointDensity"
	KeyMaxLineLength            = "maxLineLength"
	KeyRepelDistanceRange       = "repelDistanceRange"
	KeyRepelForceRange          = "repelForceRange"
	KeyAttractDistanceRange     = "attractDistanceRange"
	KeyAttractForceRange        = "attractForceRange"
	KeyMaxInteractForceDistance = "maxInteractForceDistance"
	KeyMaxInteractForceStrength = "maxInteractForceStrength"
	KeyMaxVelocityX             = "maxVelocityX"
	KeyMaxVelocityY             = "maxVelocityY"
	KeyPointSize                = "pointSize"
	KeyLineSize                 = "lineSize"
	KeyPointColor               = "pointColor"
	KeyLineColor                = "lineColor"
	KeyBackgroundColor          = "backgroundColor"
	KeyInteractColor            = "interactColor"
	KeyScreenBlur               = "screenBlur"
	KeyBatchDraw                = "batchDraw"
	KeyPingPongUpdate           = "pingPongUpdate"
)

const (
	// densityDivisor is the canvas area that holds density particles
	densityDivisor = 100000
	// minPointCount is the floor for the derived particle count
	minPointCount = 10
	// pointAlpha is the opacity used for every particle disc
	pointAlpha = 0.9
)

var (
	// ErrUnknownSetting reports a key that is not in the settings schema.
	ErrUnknownSetting = errors.New("unknown setting")
	// ErrInvalidValue reports a value of the wrong type or outside its allowed domain.
	ErrInvalidValue = errors.New("invalid setting value")
	// ErrInvalidRange reports a distance range with a non-finite bound or Hi not above Lo.
	ErrInvalidRange = errors.New("invalid range")
)

// Settings holds the tunable parameters of a constellation
type Settings struct {
	PointDensity  float64
	MaxLineLength float64

	RepelDistanceRange   Range
	RepelForceRange      Range
	AttractDistanceRange Range
	AttractForceRange    Range

	MaxInteractForceDistance float64
	MaxInteractForceStrength float64

	MaxVelocityX float64
	MaxVelocityY float64

	PointSize float64
	LineSize  float64

	PointColor      color.NRGBA
	LineColor       color.NRGBA
	BackgroundColor color.NRGBA
	InteractColor   color.NRGBA

	// ScreenBlur in [0, 1]: the background is filled at alpha 1-ScreenBlur,
	// so 0 clears each frame and higher values leave longer trails
	ScreenBlur float64

	BatchDraw      bool
	PingPongUpdate bool
}

// DefaultSettings returns the stock configuration
func DefaultSettings() Settings {
	return Settings{
		PointDensity:             30,
		MaxLineLength:            60,
		RepelDistanceRange:       Range{0, 20},
		RepelForceRange:          Range{0.1, 0},
		AttractDistanceRange:     Range{15, 30},
		AttractForceRange:        Range{0, 0.001},
		MaxInteractForceDistance: 60,
		MaxInteractForceStrength: 0.5,
		MaxVelocityX:             5,
		MaxVelocityY:             5,
		PointSize:                3,
		LineSize:                 2,
		PointColor:               mustColor("teal"),
		LineColor:                mustColor("lightblue"),
		BackgroundColor:          mustColor("black"),
		InteractColor:            mustColor("red"),
		ScreenBlur:               0.6,
		BatchDraw:                true,
	}
}

// MaxSearchDistance is the neighbor search radius: the largest of the line
// length and the upper bounds of the repel and attract distance ranges.
func (s *Settings) MaxSearchDistance() float64 {
	return math.Max(s.MaxLineLength, math.Max(s.RepelDistanceRange.Hi, s.AttractDistanceRange.Hi))
}

// PointCount derives the particle count for density over a canvas area
func PointCount(density, area float64) int {
	n := int(math.Floor(area / densityDivisor * density))
	if n < minPointCount {
		return minPointCount
	}
	return n
}

// Validate checks a whole settings value, as built outside the setter
func (s *Settings) Validate() error {
	for k, r := range map[string]Range{KeyRepelDistanceRange: s.RepelDistanceRange, KeyAttractDistanceRange: s.AttractDistanceRange} {
		if err := checkDistanceRange(r); err != nil {
			return errors.Wrapf(err, "setting %q", k)
		}
	}
	for k, r := range map[string]Range{KeyRepelForceRange: s.RepelForceRange, KeyAttractForceRange: s.AttractForceRange} {
		if !finite(r.Lo) || !finite(r.Hi) {
			return errors.Wrapf(ErrInvalidRange, "setting %q: non-finite bound", k)
		}
	}
	for k, v := range map[string]float64{
		KeyPointDensity:             s.PointDensity,
		KeyMaxLineLength:            s.MaxLineLength,
		KeyMaxInteractForceDistance: s.MaxInteractForceDistance,
		KeyMaxInteractForceStrength: s.MaxInteractForceStrength,
		KeyMaxVelocityX:             s.MaxVelocityX,
		KeyMaxVelocityY:             s.MaxVelocityY,
		KeyPointSize:                s.PointSize,
		KeyLineSize:                 s.LineSize,
		KeyScreenBlur:               s.ScreenBlur,
	} {
		if !finite(v) || v < 0 {
			return errors.Wrapf(ErrInvalidValue, "setting %q: %v", k, v)
		}
	}
	if s.ScreenBlur > 1 {
		return errors.Wrapf(ErrInvalidValue, "setting %q: %v above 1", KeyScreenBlur, s.ScreenBlur)
	}
	return nil
}

// Set validates value and stores it under name. On error s is left untouched.
func (s *Settings) Set(name string, value any) error {
	set, ok := setters[name]
	if !ok {
		return errors.Wrapf(ErrUnknownSetting, "%q", name)
	}
	next := *s
	if err := set(&next, value); err != nil {
		return errors.Wrapf(err, "setting %q", name)
	}
	*s = next
	return nil
}

// SettingKeys lists the recognized setting names in sorted order
func SettingKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type setter func(s *Settings, v any) error

var setters = map[string]setter{
	KeyPointDensity:             nonNegative(func(s *Settings) *float64 { return &s.PointDensity }),
	KeyMaxLineLength:            nonNegative(func(s *Settings) *float64 { return &s.MaxLineLength }),
	KeyMaxInteractForceDistance: nonNegative(func(s *Settings) *float64 { return &s.MaxInteractForceDistance }),
	KeyMaxInteractForceStrength: nonNegative(func(s *Settings) *float64 { return &s.MaxInteractForceStrength }),
	KeyMaxVelocityX:             nonNegative(func(s *Settings) *float64 { return &s.MaxVelocityX }),
	KeyMaxVelocityY:             nonNegative(func(s *Settings) *float64 { return &s.MaxVelocityY }),
	KeyPointSize:                nonNegative(func(s *Settings) *float64 { return &s.PointSize }),
	KeyLineSize:                 nonNegative(func(s *Settings) *float64 { return &s.LineSize }),

	KeyRepelDistanceRange:   distanceRange(func(s *Settings) *Range { return &s.RepelDistanceRange }),
	KeyAttractDistanceRange: distanceRange(func(s *Settings) *Range { return &s.AttractDistanceRange }),
	KeyRepelForceRange:      forceRange(func(s *Settings) *Range { return &s.RepelForceRange }),
	KeyAttractForceRange:    forceRange(func(s *Settings) *Range { return &s.AttractForceRange }),

	KeyPointColor:      colorValue(func(s *Settings) *color.NRGBA { return &s.PointColor }),
	KeyLineColor:       colorValue(func(s *Settings) *color.NRGBA { return &s.LineColor }),
	KeyBackgroundColor: colorValue(func(s *Settings) *color.NRGBA { return &s.BackgroundColor }),
	KeyInteractColor:   colorValue(func(s *Settings) *color.NRGBA { return &s.InteractColor }),

	KeyBatchDraw:      boolValue(func(s *Settings) *bool { return &s.BatchDraw }),
	KeyPingPongUpdate: boolValue(func(s *Settings) *bool { return &s.PingPongUpdate }),

	KeyScreenBlur: func(s *Settings, v any) error {
		f, err := toFloat(v)
		if err != nil {
			return err
		}
		s.ScreenBlur = clamp(f, 0, 1)
		return nil
	},
}

// nonNegative clamps negative input to zero
func nonNegative(field func(*Settings) *float64) setter {
	return func(s *Settings, v any) error {
		f, err := toFloat(v)
		if err != nil {
			return err
		}
		*field(s) = math.Max(0, f)
		return nil
	}
}

func distanceRange(field func(*Settings) *Range) setter {
	return func(s *Settings, v any) error {
		r, err := toRange(v)
		if err != nil {
			return err
		}
		if err := checkDistanceRange(r); err != nil {
			return err
		}
		*field(s) = r
		return nil
	}
}

// forceRange accepts descending pairs, which invert the force gradient
func forceRange(field func(*Settings) *Range) setter {
	return func(s *Settings, v any) error {
		r, err := toRange(v)
		if err != nil {
			return err
		}
		*field(s) = r
		return nil
	}
}

func colorValue(field func(*Settings) *color.NRGBA) setter {
	return func(s *Settings, v any) error {
		var c color.NRGBA
		switch t := v.(type) {
		case string:
			var err error
			if c, err = ParseColor(t); err != nil {
				return err
			}
		case color.Color:
			c = color.NRGBAModel.Convert(t).(color.NRGBA)
		default:
			return errors.Wrapf(ErrInvalidValue, "%T is not a color", v)
		}
		*field(s) = c
		return nil
	}
}

func boolValue(field func(*Settings) *bool) setter {
	return func(s *Settings, v any) error {
		b, ok := v.(bool)
		if !ok {
			return errors.Wrapf(ErrInvalidValue, "%T is not a bool", v)
		}
		*field(s) = b
		return nil
	}
}

// checkDistanceRange requires Hi > Lo so interpolation stays finite
func checkDistanceRange(r Range) error {
	if !finite(r.Lo) || !finite(r.Hi) {
		return errors.Wrapf(ErrInvalidRange, "[%v, %v] is not finite", r.Lo, r.Hi)
	}
	if r.Hi < r.Lo {
		return errors.Wrapf(ErrInvalidRange, "[%v, %v] is descending", r.Lo, r.Hi)
	}
	if r.Hi == r.Lo {
		return errors.Wrapf(ErrInvalidRange, "[%v, %v] has zero width", r.Lo, r.Hi)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, errors.Wrapf(ErrInvalidValue, "%T is not a number", v)
	}
	if !finite(f) {
		return 0, errors.Wrapf(ErrInvalidValue, "%v is not finite", f)
	}
	return f, nil
}

func toRange(v any) (Range, error) {
	var pair []any
	switch t := v.(type) {
	case Range:
		pair = []any{t.Lo, t.Hi}
	case [2]float64:
		pair = []any{t[0], t[1]}
	case []float64:
		for _, f := range t {
			pair = append(pair, f)
		}
	case []int:
		for _, n := range t {
			pair = append(pair, n)
		}
	case []int64:
		for _, n := range t {
			pair = append(pair, n)
		}
	case []any:
		pair = t
	default:
		return Range{}, errors.Wrapf(ErrInvalidRange, "%T is not a pair", v)
	}
	if len(pair) != 2 {
		return Range{}, errors.Wrapf(ErrInvalidRange, "want 2 elements, got %d", len(pair))
	}
	lo, err := toFloat(pair[0])
	if err != nil {
		return Range{}, err
	}
	hi, err := toFloat(pair[1])
	if err != nil {
		return Range{}, err
	}
	return Range{Lo: lo, Hi: hi}, nil
}

var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"teal":      "#008080",
	"lightblue": "#add8e6",
	"navy":      "#000080",
	"orange":    "#ffa500",
	"yellow":    "#ffff00",
	"purple":    "#800080",
	"gray":      "#808080",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"pink":      "#ffc0cb",
	"gold":      "#ffd700",
}

// ParseColor reads a CSS named color or a #rgb / #rrggbb hex string
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidValue, "color %q", s)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func mustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
