package renderer

import (
	"fmt"
	"strings"

	"github.com/ivlev/scrollfx/internal/director"
)

// GenerateProgressBarFilter creates an FFmpeg filter_complex that slides a
// thin bar along the bottom edge following the scroll path. The bar position
// is a piecewise linear expression over the output frame number, so it only
// approximates the eased path between keyframes.
func GenerateProgressBarFilter(keyframes []director.Keyframe, fps int, width, height, thickness int) string {
	if len(keyframes) == 0 || fps <= 0 {
		return ""
	}
	if thickness <= 0 {
		thickness = 4
	}

	xExpr := fmt.Sprintf("%d*(%s)-%d", width, buildProgressExpression(keyframes, fps), width)
	return fmt.Sprintf("color=c=white@0.8:s=%dx%d:r=%d[bar];[0:v][bar]overlay=x='%s':y=%d:shortest=1[v]",
		width, thickness, fps, xExpr, height-thickness)
}

// buildProgressExpression creates a piecewise expression in the frame number n
func buildProgressExpression(keyframes []director.Keyframe, fps int) string {
	if len(keyframes) == 1 {
		return fmt.Sprintf("%.6f", keyframes[0].Progress)
	}

	var b strings.Builder
	open := 0
	for i := 0; i < len(keyframes)-1; i++ {
		startFrame := int(keyframes[i].Time * float64(fps))
		endFrame := int(keyframes[i+1].Time * float64(fps))
		from, to := keyframes[i].Progress, keyframes[i+1].Progress
		if endFrame <= startFrame {
			continue
		}

		// if(lte(n,end),from+(n-start)/(end-start)*(to-from),...)
		fmt.Fprintf(&b, "if(lte(n,%d),%.6f+(n-%d)/%d*(%.6f),", endFrame, from, startFrame, endFrame-startFrame, to-from)
		open++
	}
	fmt.Fprintf(&b, "%.6f", keyframes[len(keyframes)-1].Progress)
	b.WriteString(strings.Repeat(")", open))

	return b.String()
}
