package renderer

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenforge/pathtracer/pkg/core"
)

func TestWritePPMHeaderFormat(t *testing.T) {
	fb := newFramebuffer(2, 3)
	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, fb))

	want := fmt.Sprintf("P6\n%d %d\n255\n", 2, 3)
	assert.Equal(t, want, string(buf.Bytes()[:len(want)]))
}

func TestWritePPMBodySizeMatchesDimensions(t *testing.T) {
	fb := newFramebuffer(4, 5)
	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, fb))

	header := fmt.Sprintf("P6\n%d %d\n255\n", 4, 5)
	body := buf.Bytes()[len(header):]
	assert.Len(t, body, 4*5*3)
}

func TestWritePPMEncodesFullWhiteAs255(t *testing.T) {
	fb := newFramebuffer(1, 1)
	fb.set(0, 0, core.Color{X: 1, Y: 1, Z: 1})
	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, fb))

	header := fmt.Sprintf("P6\n%d %d\n255\n", 1, 1)
	body := buf.Bytes()[len(header):]
	assert.Equal(t, []byte{255, 255, 255}, body)
}

func TestToByteClampsOutOfRangeInputs(t *testing.T) {
	assert.Equal(t, byte(0), toByte(-1))
	assert.Equal(t, byte(255), toByte(2))
	assert.Equal(t, byte(128), toByte(0.5))
}
