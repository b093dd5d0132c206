//go:build linux

package host

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRegion(t *testing.T) {
	maps := "00400000-00452000 r-xp 00000000 08:02 1 /usr/bin/app\n" +
		"00600000-00700000 rw-p 00000000 00:00 0 [heap]\n"

	reg, err := findRegion(strings.NewReader(maps), 0x401000)
	require.NoError(t, err)
	assert.Equal(t, uintptr(0x400000), reg.Start)
	assert.Equal(t, uintptr(0x452000), reg.End)
	assert.True(t, reg.Readable)
	assert.False(t, reg.Writable)
	assert.True(t, reg.Executable)

	reg, err = findRegion(strings.NewReader(maps), 0x650000)
	require.NoError(t, err)
	assert.True(t, reg.Writable)
	assert.False(t, reg.Executable)

	_, err = findRegion(strings.NewReader(maps), 0x900000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconclusive))
}

func TestRegionContains(t *testing.T) {
	reg := Region{Start: 0x1000, End: 0x2000}
	assert.True(t, reg.Contains(0x1000))
	assert.True(t, reg.Contains(0x1fff))
	assert.False(t, reg.Contains(0x2000))
	assert.False(t, reg.Contains(0xfff))
}

func TestReadRejectsBadLength(t *testing.T) {
	_, err := procMapsMemory{}.Read(0x1000, 0)
	assert.Error(t, err)
}
