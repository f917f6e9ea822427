// This file is part of Mode1PCM.
//
// Mode1PCM is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Mode1PCM is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Mode1PCM.  If not, see <https://www.gnu.org/licenses/>.

// Package wavwriter writes unsigned 8-bit PCM data as a WAV file. This is the
// sample format that the peer mixer plays without decoding.
//
// Audio data given to the WavWriter type is buffered in memory in its entirety
// and written to disk when the WavWriter is closed.
package wavwriter

import (
	"io"
	"os"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/youpy/go-wav"
)

// Encode writes data as an unsigned 8-bit WAV file. Multi-channel data is
// interleaved.
func Encode(w io.Writer, data []uint8, channels int, rate int) error {
	if channels < 1 || channels > 2 {
		return curated.Errorf("wavwriter: %d channels not supported", channels)
	}
	if rate <= 0 {
		return curated.Errorf("wavwriter: illegal sample rate (%d)", rate)
	}

	frames := len(data) / channels
	buffer := make([]wav.Sample, frames)
	for i := range buffer {
		for c := 0; c < channels; c++ {
			buffer[i].Values[c] = int(data[i*channels+c])
		}
	}

	enc := wav.NewWriter(w, uint32(frames), uint16(channels), uint32(rate), 8)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	if err := enc.WriteSamples(buffer); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

// WavWriter collects 8-bit samples and writes them to a file. It implements
// the io.WriteCloser interface. Stereo samples are interleaved.
type WavWriter struct {
	filename string
	channels int
	rate     int
	buffer   []uint8
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, channels int, rate int) (*WavWriter, error) {
	if rate <= 0 {
		return nil, curated.Errorf("wavwriter: illegal sample rate (%d)", rate)
	}

	aw := &WavWriter{
		filename: filename,
		channels: channels,
		rate:     rate,
		buffer:   make([]uint8, 0),
	}

	return aw, nil
}

// Write implements the io.Writer interface.
func (aw *WavWriter) Write(p []byte) (int, error) {
	aw.buffer = append(aw.buffer, p...)
	return len(p), nil
}

// Close implements the io.Closer interface. The WAV file is created and the
// buffered data is written to it.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	return Encode(f, aw.buffer, aw.channels, aw.rate)
}
