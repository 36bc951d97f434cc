package sim

import "time"

// Config is the simulator's override record (spec.md §9 "Configuration
// objects"): every field is optional. Precedence, lowest to highest, is
// the built-in defaults below, then this override, then the scenario's
// first Simulate declaration — a field the declaration sets always wins
// over both the override and the defaults.
type Config struct {
	Runs        *int
	Method      string
	Seed        *int64
	Percentiles []float64
	Convergence *float64
	Timeout     *time.Duration
	OnProgress  func(ProgressEvent)
}

// ProgressEvent is delivered to Config.OnProgress roughly every 100 runs
// (spec.md §4.4 step 8, §9 "Callbacks"). The caller's callback must not
// block — it is always invoked on the simulation goroutine.
type ProgressEvent struct {
	CompletedRuns      int
	TotalRuns          int
	ElapsedMs          int64
	ConvergenceMetric  float64
	HasConvergence     bool
}

// effective is the fully-resolved configuration after layering defaults,
// then the caller's override, then the scenario's first Simulate
// declaration.
type effective struct {
	Runs        int
	Method      string
	Seed        int64
	Percentiles []float64
	Convergence float64
	Timeout     time.Duration
	OnProgress  func(ProgressEvent)
}

func defaultEffective() effective {
	return effective{
		Runs:        1000,
		Method:      "monte_carlo",
		Seed:        time.Now().UnixNano(),
		Percentiles: []float64{5, 25, 50, 75, 95},
		Convergence: 0.01,
		Timeout:     60 * time.Second,
	}
}
