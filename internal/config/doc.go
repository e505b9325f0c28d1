// Package config loads tamer's operational configuration: where the daemon
// logs, where it finds the rule file, how it exposes metrics, and how
// verbose it is. This is distinct from the rule file itself, which is owned
// by package rules and re-read by the daemon while it runs; the TOML config
// here is read once at startup.
package config
