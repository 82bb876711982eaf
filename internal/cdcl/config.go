package cdcl

import "time"

// StoppingCriteria selects how far conflict analysis resolves.
type StoppingCriteria uint8

const (
	// FirstUIP stops as soon as a single current-level literal remains.
	FirstUIP StoppingCriteria = iota
	// NoStoppingCriteria resolves every current-level literal that has a
	// reason clause, stopping only at the level's decision or assumption
	// literal (which has none to resolve against).
	NoStoppingCriteria
)

// VSIDSVariant selects which atoms get their activity bumped during
// conflict analysis.
type VSIDSVariant uint8

const (
	// VSIDSMiniSAT bumps every atom visited while building the resolvent.
	VSIDSMiniSAT VSIDSVariant = iota
	// VSIDSChaff bumps only the atoms of the original conflict clause.
	VSIDSChaff
)

// Minimization selects the learned-clause self-subsumption strategy used
// after an asserting clause is derived.
type Minimization uint8

const (
	MinimizationNone Minimization = iota
	MinimizationLocal
	MinimizationRecursive
)

// Scheduler configures when restarts and reductions are permitted to fire.
type Scheduler struct {
	// LubyU is the multiplier applied to the Luby sequence when deciding
	// whether conflicts-since-restart warrant a restart.
	LubyU int

	// InitialReductionThreshold is the number of addition-long clauses that
	// must accumulate before the first scheduled reduction.
	InitialReductionThreshold int

	// ReductionGrowth is added to the threshold after each reduction.
	ReductionGrowth int
}

// Switches are the boolean feature toggles exposed on the CLI surface.
type Switches struct {
	PhaseSaving   bool
	Preprocessing bool // pure-literal fixing at ingest
	Restart       bool
	Subsumption   bool // on-the-fly self-subsumption during minimization
}

// AssumptionMode selects how assumptions are asserted.
type AssumptionMode uint8

const (
	// AssumptionStacked gives each assumption its own decision level and
	// runs BCP after each one.
	AssumptionStacked AssumptionMode = iota
	// AssumptionFlat asserts all assumptions at one shared decision level.
	AssumptionFlat
)

// Options is the primary solver configuration.
type Options struct {
	ClauseDecay       float64
	VariableDecay     float64
	StoppingCriteria  StoppingCriteria
	VSIDSVariant      VSIDSVariant
	Minimization      Minimization
	PolarityLean      float64 // probability of leaning positive on a fresh atom
	RandomDecisionBias float64 // probability of an entirely random decision
	AssumptionMode    AssumptionMode
	Scheduler         Scheduler
	Switch            Switches
	MaxConflicts      int64 // <0 disables the limit
	Timeout           time.Duration // <0 disables the limit
	Terminate         func() bool   // optional cooperative cancellation poll
}

// DefaultOptions turns phase saving and restarts on, subsumption on,
// preprocessing off, FirstUIP + MiniSAT VSIDS, and no resource limit.
var DefaultOptions = Options{
	ClauseDecay:        0.999,
	VariableDecay:      0.95,
	StoppingCriteria:   FirstUIP,
	VSIDSVariant:       VSIDSMiniSAT,
	Minimization:       MinimizationRecursive,
	PolarityLean:       0.0,
	RandomDecisionBias: 0.0,
	AssumptionMode:     AssumptionStacked,
	Scheduler: Scheduler{
		LubyU:                     128,
		InitialReductionThreshold: 2000,
		ReductionGrowth:           300,
	},
	Switch: Switches{
		PhaseSaving:   true,
		Preprocessing: false,
		Restart:       true,
		Subsumption:   true,
	},
	MaxConflicts: -1,
	Timeout:      -1,
}
