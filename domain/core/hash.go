package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// WorkbookHash fingerprints uploaded workbook bytes. Runs store the
// fingerprint instead of the file, so repeat uploads are recognizable
// without persisting the upload itself.
type WorkbookHash string

// NewWorkbookHash computes the fingerprint of raw workbook bytes.
func NewWorkbookHash(data []byte) WorkbookHash {
	sum := sha256.Sum256(data)
	return WorkbookHash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h WorkbookHash) String() string {
	return string(h)
}
