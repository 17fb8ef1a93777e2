package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Mode selects which derivation a chart displays.
type Mode string

const (
	ModeAbsolute   Mode = "absolute"
	ModeRoc7D      Mode = "roc7d"
	ModeRoc1M      Mode = "roc1m"
	ModeRoc3M      Mode = "roc3m"
	ModeRocYoY     Mode = "rocyoy"
	ModeZScore     Mode = "zscore"
	ModePercentile Mode = "percentile"
)

// ErrUnknownMode is returned when no pipeline is registered for a mode.
var ErrUnknownMode = errors.New("unknown chart mode")

// DefaultWindow is the trailing window used by the normalization modes when
// the caller does not pick one.
const DefaultWindow = 90

// Options carries the scalar knobs a mode pipeline may need.
type Options struct {
	// Window is the trailing observation count for zscore/percentile.
	Window int
}

func (o Options) window() int {
	if o.Window < 1 {
		return DefaultWindow
	}
	return o.Window
}

// ROC lookbacks are observation counts over a densely (daily) sampled
// series, not calendar days.
var modeTable = map[Mode]func(Options) []Step{
	ModeAbsolute:   func(Options) []Step { return nil },
	ModeRoc7D:      func(Options) []Step { return []Step{RocPercentStep(7)} },
	ModeRoc1M:      func(Options) []Step { return []Step{RocPercentStep(30)} },
	ModeRoc3M:      func(Options) []Step { return []Step{RocPercentStep(91)} },
	ModeRocYoY:     func(Options) []Step { return []Step{RocPercentStep(365)} },
	ModeZScore:     func(o Options) []Step { return []Step{ZScoreStep(o.window())} },
	ModePercentile: func(o Options) []Step { return []Step{PercentileStep(o.window())} },
}

// ForMode resolves a mode to its derivation pipeline.
func ForMode(mode Mode, opts Options) (Pipeline, error) {
	build, ok := modeTable[mode]
	if !ok {
		return Pipeline{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return New(build(opts)...), nil
}

// Modes lists every registered mode in stable order.
func Modes() []Mode {
	modes := lo.Keys(modeTable)
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}
