package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "medical-records/p1/", Prefix("p1"))
	assert.Equal(t, "medical-records/p1/scan.pdf", Key("p1", "scan.pdf"))
}

func TestValidateFilename(t *testing.T) {
	assert.NoError(t, ValidateFilename("scan.pdf"))
	assert.NoError(t, ValidateFilename("blood test 2024.png"))

	assert.ErrorIs(t, ValidateFilename(""), ErrMissingFilename)
	assert.ErrorIs(t, ValidateFilename("   "), ErrMissingFilename)

	for _, bad := range []string{".", "..", "../p2/scan.pdf", "a/b", `a\b`, "a\x00b", strings.Repeat("x", 256)} {
		assert.ErrorIs(t, ValidateFilename(bad), ErrInvalidFilename, bad)
	}
}

func TestInfoFrom(t *testing.T) {
	info := InfoFrom(Prefix("p1"), ObjectInfo{Key: "medical-records/p1/scan.pdf", Size: 12})
	assert.Equal(t, "scan.pdf", info.Name)
	assert.Equal(t, int64(12), info.Size)
}
