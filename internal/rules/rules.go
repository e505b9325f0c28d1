package rules

import (
	"strings"
	"time"
)

const (
	// DefaultDisplayName is used when the rule file omits Service.DisplayName.
	DefaultDisplayName = "Process Tamer"
	// DefaultDescription is used when the rule file omits Service.Description.
	DefaultDescription = "Process priority taming service"
	// DefaultInterval applies before the first successful load and when the
	// rule file omits Service.Interval.
	DefaultInterval = 10 * time.Second
	// DefaultNice is the target priority for rules without an explicit
	// Process{N}_Prio entry. 19 is the idle-equivalent nice level.
	DefaultNice = 19

	// MinNice and MaxNice bound parsed priority values.
	MinNice = -20
	MaxNice = 19
)

// Rule maps one process image name to a target nice value.
type Rule struct {
	ProcessName string
	Nice        int
}

// RuleSet is an immutable snapshot of a parsed rule file. It is built whole
// by the loader, published by the store via atomic pointer swap, and never
// mutated afterwards.
type RuleSet struct {
	Rules       []Rule
	DisplayName string
	Description string
	Interval    time.Duration
	Digest      uint32

	// byName maps lowercased image names to target nice values. Built
	// first-to-last, so duplicate names resolve to the last rule.
	byName map[string]int
}

// PriorityFor returns the target nice value for an image name, matched
// exactly and case-insensitively. When several rules name the same image,
// the last one wins.
func (rs *RuleSet) PriorityFor(imageName string) (int, bool) {
	if rs == nil || len(rs.byName) == 0 {
		return 0, false
	}
	nice, ok := rs.byName[strings.ToLower(imageName)]
	return nice, ok
}

// Len returns the number of rules in the snapshot.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rules)
}

func newRuleSet(ruleList []Rule, displayName, description string, interval time.Duration, digest uint32) *RuleSet {
	byName := make(map[string]int, len(ruleList))
	for _, rule := range ruleList {
		byName[strings.ToLower(rule.ProcessName)] = rule.Nice
	}
	return &RuleSet{
		Rules:       ruleList,
		DisplayName: displayName,
		Description: description,
		Interval:    interval,
		Digest:      digest,
		byName:      byName,
	}
}

func clampNice(nice int) int {
	if nice < MinNice {
		return MinNice
	}
	if nice > MaxNice {
		return MaxNice
	}
	return nice
}
