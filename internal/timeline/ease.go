package timeline

import "github.com/tanema/gween/ease"

// presets maps keyframe easing names onto gween easing curves.
var presets = map[string]ease.TweenFunc{
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// IsPreset reports whether name is a known easing preset. The empty name and
// "linear" are always valid.
func IsPreset(name string) bool {
	if name == "" || name == "linear" {
		return true
	}
	_, ok := presets[name]
	return ok
}

// easeValue maps t in (0, 1) onto the value range [from, to] through the
// named preset. gween curves run in float32, so only the normalised progress
// goes through them; scaling onto the value range stays in float64.
func easeValue(name string, t, from, to float64) float64 {
	fn, ok := presets[name]
	if !ok {
		return from + (to-from)*t
	}
	return from + (to-from)*float64(fn(float32(t), 0, 1, 1))
}
