package rules

import (
	"fmt"
	"hash/crc32"
	"os"
)

// Checksum computes the CRC-32/IEEE digest of raw rule file bytes. The
// digest gates reloading only; it is not an integrity or security check and
// collisions across differing content are an accepted risk.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// FileChecksum reads a rule file and returns its content digest alongside
// the raw bytes. A zero digest is reserved to mean "could not read": missing
// and empty files both report an error, since an empty input digests to zero
// and would be indistinguishable from a failed read.
func FileChecksum(path string) (uint32, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("read rule file: %w", err)
	}
	if len(data) == 0 {
		return 0, nil, fmt.Errorf("read rule file: %s is empty", path)
	}
	return Checksum(data), data, nil
}
