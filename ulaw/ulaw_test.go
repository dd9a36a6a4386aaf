package ulaw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeSampleRoundTrip(t *testing.T) {
	for _, pcm := range []int16{0, 1, -1, 100, -100, 4000, -4000, 32000, -32000, 32767, -32768} {
		u := EncodeSample(pcm)
		got := DecodeSample(u)
		// mu-law is lossy; round-trip must stay within one quantization step
		// (the widest step, in the top segment, is 1024).
		diff := int(pcm) - int(got)
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqualf(t, diff, 1024, "pcm=%d encoded=%x decoded=%d", pcm, u, got)
	}
}

func TestEncodeSampleKnownValues(t *testing.T) {
	// Linear PCM zero encodes to mu-law silence (0xFF after inversion).
	assert.Equal(t, byte(0xFF), EncodeSample(0))
}

func TestEncodeDecodeBufferRoundTrip(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0x10, 0x27, 0xf0, 0xd8}
	mulaw := Encode(pcm)
	assert.Len(t, mulaw, len(pcm)/2)

	back := Decode(mulaw)
	assert.Len(t, back, len(pcm))
}
