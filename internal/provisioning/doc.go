// Package provisioning implements the instance provisioning core.
//
// The orchestrator allocates a free instance identifier, creates and starts
// an unprivileged container, and runs the rootless installation strategy
// inside it. If a critical install step fails, a second identifier is
// allocated and a privileged fallback container is created and installed
// with the native runtime instead. Which instance is authoritative for
// later updates is recorded in the OrchestrationResult and resolved by
// ResolveAuthoritative.
//
// Strategies are declared as ordered step lists; each step carries its own
// criticality, so the swallow-or-propagate policy is data rather than
// control flow. Step execution is strictly sequential with a per-step
// timeout.
package provisioning
