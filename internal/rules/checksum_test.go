package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"tamer/internal/rules"
)

func TestChecksumKnownVectors(t *testing.T) {
	if got := rules.Checksum(nil); got != 0 {
		t.Fatalf("empty input digest: got %#08x want 0", got)
	}
	if got := rules.Checksum([]byte("123456789")); got != 0xCBF43926 {
		t.Fatalf("check vector digest: got %#08x want 0xCBF43926", got)
	}
}

func TestChecksumIsPureAndBitSensitive(t *testing.T) {
	data := []byte("[Processes]\nProcess1_Name=foo\n")
	first := rules.Checksum(data)
	second := rules.Checksum(data)
	if first != second {
		t.Fatalf("identical bytes produced different digests: %#08x vs %#08x", first, second)
	}

	flipped := append([]byte(nil), data...)
	flipped[0] ^= 0x01
	if rules.Checksum(flipped) == first {
		t.Fatalf("single-bit difference produced identical digest %#08x", first)
	}
}

func TestFileChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.ini")
	content := []byte("[Processes]\nProcess1_Name=foo\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write rule file: %v", err)
	}

	digest, data, err := rules.FileChecksum(path)
	if err != nil {
		t.Fatalf("FileChecksum returned error: %v", err)
	}
	if digest != rules.Checksum(content) {
		t.Fatalf("digest mismatch: got %#08x want %#08x", digest, rules.Checksum(content))
	}
	if string(data) != string(content) {
		t.Fatalf("unexpected file bytes: %q", data)
	}
}

func TestFileChecksumMissingFile(t *testing.T) {
	_, _, err := rules.FileChecksum(filepath.Join(t.TempDir(), "absent.ini"))
	if err == nil {
		t.Fatal("expected error for missing rule file")
	}
}

func TestFileChecksumEmptyFileIsReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.ini")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write rule file: %v", err)
	}
	// An empty file digests to zero, which is reserved for "could not read".
	if _, _, err := rules.FileChecksum(path); err == nil {
		t.Fatal("expected error for empty rule file")
	}
}
