// Package agent implements the four guidance specialists: job market
// analysis, course catalog lookup, career matching, and project
// advising. Agents are independent; each derives its own inputs from
// the shared read-only sources and reports through a uniform result
// envelope, so one agent's failure never propagates to a sibling. A
// shared run wrapper supplies the per-agent deadline, panic recovery,
// and latency accounting.
package agent
