// Package naming provides consistent naming functions for provisioned
// instances and their resources.
//
// The fallback instance name is derived from the primary hostname plus a
// fixed suffix, so a later update invocation can discover the pairing
// without any persisted state.
package naming
