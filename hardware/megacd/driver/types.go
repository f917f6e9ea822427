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

package driver

import "fmt"

// SourceID identifies a mixer source on the peer.
type SourceID uint8

// Special SourceID values.
const (
	// returned by PlaySource() when no source could be allocated
	NoSource SourceID = 0

	// passed to PlaySource() to allocate any free source
	AnySource SourceID = 255
)

// NumSources is the number of sources in the mixer.
const NumSources = 8

// Allocated returns true if the ID refers to a real source.
func (id SourceID) Allocated() bool {
	return id >= 1 && id <= NumSources
}

// BufferID identifies a sample buffer on the peer.
type BufferID uint16

// Range of valid BufferID values.
const (
	MinBuffer BufferID = 1
	MaxBuffer BufferID = 256
)

// Limits of argument values.
const (
	MaxFreq = 32767

	// CD audio fader maximum
	MaxTrackVolume = 1024

	MaxTrack = 99

	// payloads are staged in word RAM and must be smaller than it
	MaxPayload = 0x20000
)

// Pan values with special meaning. All other values are between left and
// right.
const (
	PanLeft     = 0
	PanCentre   = 128
	PanRight    = 254
	PanDisabled = 255
)

// PlayParams are the arguments to PlaySource().
type PlayParams struct {
	Source SourceID
	Buffer BufferID

	// zero means the frequency is derived from the buffer
	Freq uint16

	Pan      uint8
	Vol      uint8
	Autoloop bool
}

// UpdateParams are the arguments to UpdateSource().
type UpdateParams struct {
	Source   SourceID
	Freq     uint16
	Pan      uint8
	Vol      uint8
	Autoloop bool
}

// Segment of a file on the disc.
type Segment struct {
	Offset int32
	Length int32
}

// FileHandle is returned by OpenFile().
type FileHandle struct {
	Length int32
	Status uint32
}

// Failed returns true if the file could not be opened.
func (h FileHandle) Failed() bool {
	return h.Length < 0
}

func (h FileHandle) String() string {
	if h.Failed() {
		return fmt.Sprintf("failed (status %d)", h.Status)
	}
	return fmt.Sprintf("%d bytes", h.Length)
}

// DiscInfo is returned by DiscInfo().
type DiscInfo struct {
	Status       uint16
	FirstTrack   uint8
	LastTrack    uint8
	DriveVersion uint8
	Flags        uint8
}

func (d DiscInfo) String() string {
	return fmt.Sprintf("status=%04x tracks=%d-%d version=%d flags=%04b", d.Status, d.FirstTrack, d.LastTrack, d.DriveVersion, d.Flags)
}

// Track types returned in TrackInfo.
const (
	TrackAudio = 0
	TrackData  = 1
)

// TrackInfo is returned by TrackInfo().
type TrackInfo struct {
	Minutes uint8
	Seconds uint8
	Frames  uint8
	Track   uint8
	Type    uint8
}

func (t TrackInfo) String() string {
	typ := "audio"
	if t.Type == TrackData {
		typ = "data"
	}
	return fmt.Sprintf("track %d %02d:%02d:%02d %s", t.Track, t.Minutes, t.Seconds, t.Frames, typ)
}
