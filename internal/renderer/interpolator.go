package renderer

import (
	"github.com/ivlev/scrollfx/internal/director"
	"github.com/ivlev/scrollfx/internal/easing"
	"github.com/ivlev/scrollfx/internal/progress"
)

// ProgressAt returns the section progress at a given time by interpolating
// between the scroll path keyframes. Each segment eases in and out like a
// hand scroll that accelerates and settles.
func ProgressAt(keyframes []director.Keyframe, currentTime float64) float64 {
	if len(keyframes) == 0 {
		return 0
	}

	// If before first keyframe, use first keyframe
	if currentTime <= keyframes[0].Time {
		return progress.Clamp(keyframes[0].Progress)
	}

	// If after last keyframe, use last keyframe
	last := keyframes[len(keyframes)-1]
	if currentTime >= last.Time {
		return progress.Clamp(last.Progress)
	}

	// Find surrounding keyframes
	prevKf, nextKf := keyframes[0], last
	for i := 0; i < len(keyframes)-1; i++ {
		if currentTime >= keyframes[i].Time && currentTime < keyframes[i+1].Time {
			prevKf = keyframes[i]
			nextKf = keyframes[i+1]
			break
		}
	}

	timeDelta := nextKf.Time - prevKf.Time
	if timeDelta <= 0 {
		return progress.Clamp(nextKf.Progress)
	}
	t := easing.InOutCubic((currentTime - prevKf.Time) / timeDelta)

	return progress.Clamp(easing.Lerp(prevKf.Progress, nextKf.Progress, t))
}

// Sample evaluates the path once per output frame.
func Sample(keyframes []director.Keyframe, duration float64, fps int) []float64 {
	if fps <= 0 || duration <= 0 {
		return nil
	}
	n := int(duration * float64(fps))
	out := make([]float64, n)
	for i := range out {
		out[i] = ProgressAt(keyframes, float64(i)/float64(fps))
	}
	return out
}
