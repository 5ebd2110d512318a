package domain

import (
	"encoding/binary"
	"time"
)

// Clip is a decoded, playable audio buffer: 16-bit little-endian PCM,
// mono, at a fixed sample rate.
type Clip struct {
	PCM        []byte
	SampleRate int
}

// NewClip builds a Clip from a raw synthesized payload. The decode step
// assumes 2-byte sample alignment, so an odd-length payload is truncated
// by one trailing byte instead of failing.
func NewClip(raw []byte, sampleRate int) *Clip {
	if len(raw)%2 != 0 {
		raw = raw[:len(raw)-1]
	}
	return &Clip{PCM: raw, SampleRate: sampleRate}
}

// Frames returns the number of samples in the clip.
func (c *Clip) Frames() int {
	return len(c.PCM) / 2
}

// Duration returns the playback length of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// WAV wraps the PCM payload in a RIFF/WAVE container for transport.
func (c *Clip) WAV() []byte {
	const headerSize = 44
	dataSize := len(c.PCM)
	buf := make([]byte, headerSize+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // PCM chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(buf[22:24], 1)  // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(c.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(c.SampleRate*2)) // byte rate
	binary.LittleEndian.PutUint16(buf[32:34], 2)                      // block align
	binary.LittleEndian.PutUint16(buf[34:36], 16)                     // bits per sample

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	copy(buf[44:], c.PCM)

	return buf
}
