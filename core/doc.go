// Package core defines the domain values exchanged between the guidance
// agents and the orchestrator: the immutable Query, the per-agent result
// envelope (AgentResult with its typed payload variants) and the merged
// UnifiedResponse. Types in this package carry no behavior beyond
// construction and validation so every other package can depend on it
// without cycles.
package core
