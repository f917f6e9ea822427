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

// Package samples loads audio files and prepares them for uploading to a peer
// buffer. The peer mixer plays WAV files containing unsigned 8-bit PCM or
// ADPCM data.
//
// WAV files that are already in a playable format are uploaded unchanged. 16-bit
// PCM WAV files and MP3 files are converted to unsigned 8-bit PCM.
package samples

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/logger"
	"github.com/jetsetilly/mode1pcm/wavwriter"
)

// Sentinel error patterns.
const (
	SampleTooLarge = "samples: %s: payload too large (%d bytes)"
	SampleFormat   = "samples: %s: %v"
)

// Format of the sample data in the payload.
type Format int

// List of valid Format values.
const (
	PCM8 Format = iota
	ADPCM
)

func (f Format) String() string {
	switch f {
	case PCM8:
		return "pcm8"
	case ADPCM:
		return "adpcm"
	}
	return "unknown format"
}

// WAV audio format tags.
const (
	wavPCM      = 0x0001
	wavMSADPCM  = 0x0002
	wavIMAADPCM = 0x0011
)

// Sample is an audio file prepared for uploading.
type Sample struct {
	Name       string
	Format     Format
	SampleRate int
	Channels   int

	// unsigned 8-bit PCM data. interleaved if there is more than one
	// channel. nil if Format is not PCM8
	PCM []uint8

	// the complete WAV file to be uploaded
	Payload []byte
}

func (s *Sample) String() string {
	return fmt.Sprintf("%s: %s %dHz %dch (%d bytes)", s.Name, s.Format, s.SampleRate, s.Channels, len(s.Payload))
}

// Load the named file. The type of the file is decided by the file extension.
func Load(perm logger.Permission, filename string) (*Sample, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(SampleFormat, filepath.Base(filename), err)
	}
	return Decode(perm, filename, data)
}

// Decode the data of the named file.
func Decode(perm logger.Permission, filename string, data []byte) (*Sample, error) {
	name := filepath.Base(filename)

	var s *Sample
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		s, err = decodeWAV(perm, name, data)
	case ".mp3":
		s, err = decodeMP3(perm, name, data)
	default:
		return nil, curated.Errorf(SampleFormat, name, "unsupported file type")
	}
	if err != nil {
		return nil, err
	}

	if len(s.Payload) >= driver.MaxPayload {
		return nil, curated.Errorf(SampleTooLarge, name, len(s.Payload))
	}

	logger.Logf(perm, "samples", "%s", s)

	return s, nil
}

func decodeWAV(perm logger.Permission, name string, data []byte) (*Sample, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if dec == nil {
		return nil, curated.Errorf(SampleFormat, name, "error decoding")
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, curated.Errorf(SampleFormat, name, err)
	}
	if dec.NumChans < 1 || dec.NumChans > 2 || dec.SampleRate == 0 {
		return nil, curated.Errorf(SampleFormat, name, "not a valid wav file")
	}

	s := &Sample{
		Name:       name,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
	}

	switch dec.WavAudioFormat {
	case wavMSADPCM, wavIMAADPCM:
		logger.Log(perm, "samples", "adpcm wav uploaded unchanged")
		s.Format = ADPCM
		s.Payload = data
		return s, nil

	case wavPCM:
		s.Format = PCM8

	default:
		return nil, curated.Errorf(SampleFormat, name, fmt.Sprintf("unsupported wav format (%#04x)", dec.WavAudioFormat))
	}

	var buf *audio.IntBuffer
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf(SampleFormat, name, err)
	}

	switch dec.BitDepth {
	case 8:
		// go-audio presents 8-bit data unchanged
		s.PCM = make([]uint8, len(buf.Data))
		for i, v := range buf.Data {
			s.PCM[i] = uint8(v)
		}
		s.Payload = data
		return s, nil

	case 16:
		logger.Log(perm, "samples", "converting 16-bit wav to 8-bit")
		s.PCM = make([]uint8, len(buf.Data))
		for i, v := range buf.Data {
			s.PCM[i] = unsigned8(v)
		}
	default:
		return nil, curated.Errorf(SampleFormat, name, fmt.Sprintf("unsupported bit depth (%d)", dec.BitDepth))
	}

	return s, encode(s)
}

func decodeMP3(perm logger.Permission, name string, data []byte) (*Sample, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, curated.Errorf(SampleFormat, name, err)
	}

	logger.Log(perm, "samples", "converting mp3 to 8-bit mono")

	s := &Sample{
		Name:       name,
		Format:     PCM8,
		SampleRate: dec.SampleRate(),
		Channels:   1,
	}

	// the decoded stream is always 16-bit little-endian stereo. only the left
	// channel is kept
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			v := int(int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8))
			s.PCM = append(s.PCM, unsigned8(v))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, curated.Errorf(SampleFormat, name, err)
		}
	}

	return s, encode(s)
}

// unsigned8 converts a signed 16-bit sample to unsigned 8-bit.
func unsigned8(v int) uint8 {
	return uint8((v >> 8) + 128)
}

func encode(s *Sample) error {
	b := &bytes.Buffer{}
	if err := wavwriter.Encode(b, s.PCM, s.Channels, s.SampleRate); err != nil {
		return curated.Errorf(SampleFormat, s.Name, err)
	}
	s.Payload = b.Bytes()
	return nil
}
