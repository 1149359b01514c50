// Package retry provides exponential backoff retry logic for transient
// failures and bounded sleep-and-check polling for resource readiness.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay, and maximum delay. It is used for Proxmox VE
// API calls and other operations that may fail transiently.
//
// [Poll] checks a condition at a fixed interval up to a maximum number of
// attempts and reports [ErrNotReady] when the bound is exhausted, so
// callers never block forever waiting on an instance.
package retry
