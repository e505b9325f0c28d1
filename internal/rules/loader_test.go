package rules_test

import (
	"errors"
	"testing"
	"time"

	"tamer/internal/rules"
)

func TestParseFullRuleFile(t *testing.T) {
	data := []byte(`[Service]
DisplayName=Tamer
Description=keeps builds polite
Interval=2500

[Processes]
Process1_Name=ffmpeg
Process1_Prio=19
Process2_Name=cargo
Process2_Prio=10
`)
	rs, err := rules.Parse(data, 42)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if rs.DisplayName != "Tamer" {
		t.Fatalf("unexpected display name: %q", rs.DisplayName)
	}
	if rs.Description != "keeps builds polite" {
		t.Fatalf("unexpected description: %q", rs.Description)
	}
	if rs.Interval != 2500*time.Millisecond {
		t.Fatalf("unexpected interval: %s", rs.Interval)
	}
	if rs.Digest != 42 {
		t.Fatalf("unexpected digest: %d", rs.Digest)
	}
	if rs.Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", rs.Len())
	}
	if rs.Rules[0].ProcessName != "ffmpeg" || rs.Rules[0].Nice != 19 {
		t.Fatalf("unexpected first rule: %+v", rs.Rules[0])
	}
	if rs.Rules[1].ProcessName != "cargo" || rs.Rules[1].Nice != 10 {
		t.Fatalf("unexpected second rule: %+v", rs.Rules[1])
	}
}

func TestParseDefaults(t *testing.T) {
	rs, err := rules.Parse([]byte("[Processes]\nProcess1_Name=make\n"), 1)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if rs.DisplayName != rules.DefaultDisplayName {
		t.Fatalf("unexpected display name default: %q", rs.DisplayName)
	}
	if rs.Description != rules.DefaultDescription {
		t.Fatalf("unexpected description default: %q", rs.Description)
	}
	if rs.Interval != rules.DefaultInterval {
		t.Fatalf("unexpected interval default: %s", rs.Interval)
	}
	if rs.Rules[0].Nice != rules.DefaultNice {
		t.Fatalf("expected default nice %d, got %d", rules.DefaultNice, rs.Rules[0].Nice)
	}
}

func TestParseStopsAtFirstMissingIndex(t *testing.T) {
	data := []byte(`[Processes]
Process1_Name=make
Process3_Name=ignored
Process3_Prio=5
`)
	rs, err := rules.Parse(data, 1)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if rs.Len() != 1 {
		t.Fatalf("expected parsing to stop at the gap, got %d rules", rs.Len())
	}
	if rs.Rules[0].ProcessName != "make" {
		t.Fatalf("unexpected rule: %+v", rs.Rules[0])
	}
}

func TestParseNoRules(t *testing.T) {
	_, err := rules.Parse([]byte("[Service]\nInterval=1000\n"), 1)
	if !errors.Is(err, rules.ErrNoRules) {
		t.Fatalf("expected ErrNoRules, got %v", err)
	}
}

func TestParseClampsNice(t *testing.T) {
	data := []byte(`[Processes]
Process1_Name=a
Process1_Prio=99
Process2_Name=b
Process2_Prio=-99
`)
	rs, err := rules.Parse(data, 1)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if rs.Rules[0].Nice != rules.MaxNice {
		t.Fatalf("expected clamp to %d, got %d", rules.MaxNice, rs.Rules[0].Nice)
	}
	if rs.Rules[1].Nice != rules.MinNice {
		t.Fatalf("expected clamp to %d, got %d", rules.MinNice, rs.Rules[1].Nice)
	}
}

func TestParseNonPositiveIntervalFallsBack(t *testing.T) {
	rs, err := rules.Parse([]byte("[Service]\nInterval=-5\n[Processes]\nProcess1_Name=a\n"), 1)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if rs.Interval != rules.DefaultInterval {
		t.Fatalf("expected non-positive interval to fall back, got %s", rs.Interval)
	}
}

func TestPriorityForMatchesCaseInsensitively(t *testing.T) {
	rs, err := rules.Parse([]byte("[Processes]\nProcess1_Name=FFmpeg\nProcess1_Prio=12\n"), 1)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	nice, ok := rs.PriorityFor("ffmpeg")
	if !ok || nice != 12 {
		t.Fatalf("expected case-insensitive match with nice 12, got %d ok=%v", nice, ok)
	}
	if _, ok := rs.PriorityFor("ffmpeg-helper"); ok {
		t.Fatal("expected exact matching, substring matched")
	}
}

func TestPriorityForDuplicateNamesLastWins(t *testing.T) {
	data := []byte(`[Processes]
Process1_Name=ffmpeg
Process1_Prio=5
Process2_Name=FFMPEG
Process2_Prio=15
`)
	rs, err := rules.Parse(data, 1)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("expected duplicates to stay in the rule list, got %d", rs.Len())
	}
	nice, ok := rs.PriorityFor("ffmpeg")
	if !ok || nice != 15 {
		t.Fatalf("expected last duplicate to win with nice 15, got %d ok=%v", nice, ok)
	}
}
