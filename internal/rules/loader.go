package rules

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/ini.v1"
)

// ErrNoRules reports a readable rule file from which no rules could be
// parsed. Callers treat it like a read failure: keep whatever snapshot was
// active before.
var ErrNoRules = errors.New("rule file contains no process rules")

const (
	serviceSection   = "Service"
	processesSection = "Processes"
)

// Parse builds a RuleSet from raw rule file bytes.
//
// Service settings fall back to defaults when absent. Process rules are
// discovered as Process1_Name, Process2_Name, ... and discovery stops at the
// first missing or empty name: an index present after a gap is ignored.
// A missing or unparsable Process{N}_Prio falls back to DefaultNice; values
// outside the nice range are clamped. Parsing fails only when zero rules
// were discovered.
func Parse(data []byte, digest uint32) (*RuleSet, error) {
	file, err := ini.InsensitiveLoad(data)
	if err != nil {
		return nil, fmt.Errorf("parse rule file: %w", err)
	}

	svc := file.Section(serviceSection)
	displayName := valueOrDefault(svc, "DisplayName", DefaultDisplayName)
	description := valueOrDefault(svc, "Description", DefaultDescription)
	interval := DefaultInterval
	if ms := svc.Key("Interval").MustInt(0); ms > 0 {
		interval = time.Duration(ms) * time.Millisecond
	}

	procs := file.Section(processesSection)
	var ruleList []Rule
	for i := 1; ; i++ {
		name := procs.Key(fmt.Sprintf("Process%d_Name", i)).String()
		if name == "" {
			break
		}
		nice := DefaultNice
		prioKey := fmt.Sprintf("Process%d_Prio", i)
		if procs.HasKey(prioKey) {
			nice = clampNice(procs.Key(prioKey).MustInt(DefaultNice))
		}
		ruleList = append(ruleList, Rule{ProcessName: name, Nice: nice})
	}

	if len(ruleList) == 0 {
		return nil, ErrNoRules
	}
	return newRuleSet(ruleList, displayName, description, interval, digest), nil
}

func valueOrDefault(section *ini.Section, key, fallback string) string {
	if value := section.Key(key).String(); value != "" {
		return value
	}
	return fallback
}
