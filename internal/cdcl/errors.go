package cdcl

import "errors"

// These are the external-facing errors: ones returned to the caller without
// mutating observable context state past the point of failure. Conflicts,
// empty resolvents, and resource limits are not errors at this boundary --
// they surface as Status values instead.
var (
	// Build errors.
	errClauseFalsifiedByAssumptions = errors.New("cdcl: clause is falsified by the current assumption set")
	errAddAfterDecision             = errors.New("cdcl: cannot add a unit clause after a decision has been made")

	// Resource / internal errors.
	errSlotExhausted     = errors.New("cdcl: addition-clause slot generation exhausted")
	errInvalidKeyRetoken = errors.New("cdcl: retoken attempted on a non-addition-long key")
	errMissingClause     = errors.New("cdcl: clause key does not resolve to an active clause")
)

// ErrAddAfterDecision is returned by AddClause when a clause that reduces
// to a single literal is added while the decision level is above the lowest
// decision level (level 0, or the top assumption level while assumptions
// are pushed): this is treated as a build error rather than silently
// handled. Longer clauses are accepted in that state.
var ErrAddAfterDecision = errAddAfterDecision
