package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tamer/internal/logs"
)

func writeLog(t *testing.T, path string, lines ...string) {
	t.Helper()
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func TestTailMissingFileIsEmpty(t *testing.T) {
	result, err := logs.Tail(context.Background(), filepath.Join(t.TempDir(), "absent.log"), logs.TailOptions{Offset: -1, Limit: 10})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 0 || result.Offset != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestTailLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tamerd.log")
	writeLog(t, path, "one", "two", "three", "four")

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 2 || result.Lines[0] != "three" || result.Lines[1] != "four" {
		t.Fatalf("unexpected lines: %v", result.Lines)
	}
	if result.Offset == 0 {
		t.Fatal("expected non-zero resume offset")
	}
}

func TestTailResumeFromOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tamerd.log")
	writeLog(t, path, "one", "two")

	first, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 10})
	if err != nil {
		t.Fatalf("first Tail: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := f.WriteString("three\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	second, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: first.Offset})
	if err != nil {
		t.Fatalf("second Tail: %v", err)
	}
	if len(second.Lines) != 1 || second.Lines[0] != "three" {
		t.Fatalf("unexpected lines: %v", second.Lines)
	}
}

func TestTailFollowWaitsForLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tamerd.log")
	writeLog(t, path)

	go func() {
		time.Sleep(300 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer f.Close()
		_, _ = f.WriteString("late\n")
	}()

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: 0, Follow: true, Wait: 2 * time.Second})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(result.Lines) != 1 || result.Lines[0] != "late" {
		t.Fatalf("unexpected lines: %v", result.Lines)
	}
}
