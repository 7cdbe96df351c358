package sequence

import (
	"errors"
	"fmt"

	"github.com/ivlev/musicmovie/internal/config"
	"github.com/ivlev/musicmovie/internal/timing"
)

// ErrEmptyInput marks a build request that cannot produce any sequence.
var ErrEmptyInput = errors.New("empty input")

// epsilon below which remaining time is considered filled.
const epsilon = 1e-6

// Entry pairs an image file with its display duration in seconds.
type Entry struct {
	File     string
	Duration float64
}

// Build produces the ordered (file, duration) plan for a slideshow. It
// alternates one full cyclic pass over the short pool with a single long
// image, treating both pools as repeatable sources, and stops once the
// accumulated duration reaches targetDuration. Short durations come from the
// progressive duration function driven by overall progress; long images use
// the fixed configured duration. The final entry is trimmed so the total
// lands exactly on targetDuration.
func Build(shortPool, longPool []string, targetDuration float64, cfg *config.Config) ([]Entry, error) {
	if len(shortPool) == 0 && len(longPool) == 0 {
		return nil, fmt.Errorf("%w: both image pools are empty", ErrEmptyInput)
	}
	if targetDuration <= 0 {
		return nil, fmt.Errorf("%w: target duration must be positive, got %f", ErrEmptyInput, targetDuration)
	}

	var entries []Entry
	accumulated := 0.0
	shortIdx, longIdx := 0, 0

	// push trims the entry against the remaining time and reports whether
	// there is still room for more entries.
	push := func(file string, d float64) bool {
		if remaining := targetDuration - accumulated; d > remaining {
			d = remaining
		}
		if d <= 0 {
			return false
		}
		entries = append(entries, Entry{File: file, Duration: d})
		accumulated += d
		return accumulated < targetDuration-epsilon
	}

	for accumulated < targetDuration-epsilon {
		for range shortPool {
			progress := accumulated / targetDuration
			d, err := timing.Progressive(progress, cfg.ShortStartDuration, cfg.ShortEndDuration, cfg.ShortAcceleration)
			if err != nil {
				return nil, err
			}
			if !push(shortPool[shortIdx%len(shortPool)], d) {
				return entries, nil
			}
			shortIdx++
		}
		if len(longPool) > 0 {
			if !push(longPool[longIdx%len(longPool)], cfg.LongDuration) {
				return entries, nil
			}
			longIdx++
		}
	}

	return entries, nil
}

// Total returns the summed duration of the sequence.
func Total(entries []Entry) float64 {
	sum := 0.0
	for _, e := range entries {
		sum += e.Duration
	}
	return sum
}
