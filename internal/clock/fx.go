package clock

import "go.uber.org/fx"

// Module provides the wall clock. Tests construct services with
// FixedClock instead of going through fx.
var Module = fx.Module("clock",
	fx.Provide(func() Clock {
		return SystemClock{}
	}),
)
