// Package timeline resolves the raw numeric value of an animated property at
// a frame index from its keyframes.
package timeline

import (
	"math"
	"sort"

	"github.com/vk/framegrid/internal/document"
)

// ValueAtFrame returns the timeline's value at frame. frame is relative to
// the owning layer's start index and may be fractional.
//
// Frames outside the keyframe range return the boundary keyframe's value.
// When the timeline carries an active shift preview, the keyframes named by
// sel are read at their shifted index and value. The timeline itself is never
// modified.
func ValueAtFrame(tl *document.Timeline, frame float64, sel document.KeyframeSelection) float64 {
	if tl == nil || len(tl.Keyframes) == 0 {
		return 0
	}
	keyframes := View(tl, sel)

	first, last := keyframes[0], keyframes[len(keyframes)-1]
	if frame <= float64(first.Index) {
		return first.Value
	}
	if frame >= float64(last.Index) {
		return last.Value
	}

	// First keyframe strictly after frame; frame lies in [i-1, i).
	i := sort.Search(len(keyframes), func(i int) bool {
		return float64(keyframes[i].Index) > frame
	})
	k0, k1 := keyframes[i-1], keyframes[i]
	if float64(k0.Index) == frame {
		return k0.Value
	}
	return interpolate(k0, k1, frame)
}

// View returns the keyframes as they appear under the timeline's shift
// preview: selected keyframes moved by IndexShift and ValueShift, re-sorted,
// with a shifted keyframe replacing an unselected one at the same index. If
// no shift is active the stored keyframes are returned as-is.
func View(tl *document.Timeline, sel document.KeyframeSelection) []document.Keyframe {
	if (tl.IndexShift == nil && tl.ValueShift == nil) || len(sel) == 0 {
		return tl.Keyframes
	}

	indexShift := 0
	if tl.IndexShift != nil {
		indexShift = *tl.IndexShift
	}
	valueShift := 0.0
	if tl.ValueShift != nil {
		valueShift = *tl.ValueShift
	}

	shifted := make(map[int]bool)
	out := make([]document.Keyframe, 0, len(tl.Keyframes))
	for _, k := range tl.Keyframes {
		if sel[k.ID] {
			k.Index += indexShift
			k.Value += valueShift
			shifted[k.Index] = true
		}
		out = append(out, k)
	}

	kept := out[:0]
	for _, k := range out {
		if !sel[k.ID] && shifted[k.Index] {
			continue
		}
		kept = append(kept, k)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Index < kept[j].Index
	})
	return kept
}

// interpolate evaluates the segment k0 -> k1 at frame, k0.Index < frame < k1.Index.
func interpolate(k0, k1 document.Keyframe, frame float64) float64 {
	length := float64(k1.Index - k0.Index)
	t := (frame - float64(k0.Index)) / length

	cpr, cpl := k0.ControlPointRight, k1.ControlPointLeft
	if cpr == nil && cpl == nil {
		return easeValue(k0.Ease, t, k0.Value, k1.Value)
	}

	// Handles default to their own keyframe, which degrades the cubic curve
	// gracefully when only one side has a handle.
	p0 := point{x: 0, y: k0.Value}
	p3 := point{x: 1, y: k1.Value}
	p1, p2 := p0, p3
	if cpr != nil {
		p1 = point{x: clamp01(cpr.TX), y: k0.Value + scaledOffset(cpr, length)}
	}
	if cpl != nil {
		p2 = point{x: clamp01(cpl.TX), y: k1.Value + scaledOffset(cpl, length)}
	}
	return cubicYForX(p0, p1, p2, p3, t)
}

// scaledOffset rescales a handle's value offset from the distance it was
// authored at to the actual segment length.
func scaledOffset(cp *document.ControlPoint, length float64) float64 {
	if cp.RelativeToDistance == 0 {
		return cp.Value
	}
	return cp.Value * length / cp.RelativeToDistance
}

type point struct{ x, y float64 }

func cubic(a, b, c, d, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*a + 3*mt*mt*t*b + 3*mt*t*t*c + t*t*t*d
}

// cubicYForX solves the bezier for the parameter whose x equals x by
// bisection, then returns the y at that parameter. x(t) is monotonic because
// the handle x coordinates are clamped to [0, 1].
func cubicYForX(p0, p1, p2, p3 point, x float64) float64 {
	lo, hi := 0.0, 1.0
	t := x
	for i := 0; i < 64; i++ {
		cx := cubic(p0.x, p1.x, p2.x, p3.x, t)
		if math.Abs(cx-x) < 1e-9 {
			break
		}
		if cx < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return cubic(p0.y, p1.y, p2.y, p3.y, t)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
