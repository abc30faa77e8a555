package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "pdf", NormalizeExt(".PDF"))
	assert.Equal(t, "jpg", NormalizeExt("jpg"))
	assert.Equal(t, "", NormalizeExt(""))
}

func TestIsAllowedExt(t *testing.T) {
	assert.True(t, IsAllowedExt("a.png"))
	assert.True(t, IsAllowedExt("a.JPEG"))
	assert.True(t, IsAllowedExt("a.pdf"))
	assert.False(t, IsAllowedExt("a.gif"))
	assert.False(t, IsAllowedExt("a"))
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("scan.pdf"))
	assert.True(t, IsPDF("SCAN.PDF"))
	assert.False(t, IsPDF("scan.png"))
}
