package checksum

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// RecordHash returns the SHA256 hex digest of the record fields joined
// with "|". The downstream uploader computes the same digest over CSV rows,
// so the two stay comparable.
func RecordHash(fields ...string) string {
	content := strings.Join(fields, "|")
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}

// VerifyRecordHash reports whether the fields hash to expectedHash.
func VerifyRecordHash(expectedHash string, fields ...string) bool {
	return RecordHash(fields...) == expectedHash
}
