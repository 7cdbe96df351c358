package timing

import (
	"fmt"
	"math"
)

// Progressive computes the display duration for a point in the timeline.
// progress is the fraction of the target total duration already accumulated
// (0.0 = sequence start, 1.0 = sequence end). The linear ramp between start
// and end is warped by a power law: acceleration > 1 pulls the result toward
// end earlier in the timeline, acceleration < 1 later, 1.0 is linear.
func Progressive(progress, start, end, acceleration float64) (float64, error) {
	if progress < 0 || progress > 1 {
		return 0, fmt.Errorf("progress %f out of range [0,1]", progress)
	}
	if start <= 0 || end <= 0 {
		return 0, fmt.Errorf("duration bounds must be positive, got start=%f end=%f", start, end)
	}
	if acceleration <= 0 {
		return 0, fmt.Errorf("acceleration must be positive, got %f", acceleration)
	}

	// Exact at the endpoints regardless of acceleration.
	switch progress {
	case 0:
		return start, nil
	case 1:
		return end, nil
	}

	t := math.Pow(progress, 1.0/acceleration)
	return start + (end-start)*t, nil
}
