// Package daemon wires the rule store, scheduler, and metrics endpoint into
// a single-instance background service guarded by a file lock.
package daemon
