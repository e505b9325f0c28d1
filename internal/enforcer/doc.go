// Package enforcer applies the active rule set to the live process table.
// Each pass takes exactly one enumeration snapshot, matches image names
// case-insensitively and exactly against the rules, and drives mismatched
// processes toward their target nice value. Per-process failures are skips,
// never pass failures.
package enforcer
