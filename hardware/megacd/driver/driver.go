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

import (
	"encoding/binary"
	"strings"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/link"
)

// Driver is the interface to the PCM driver on the peer.
type Driver struct {
	link *link.Link
}

// NewDriver is the preferred method of initialisation for the Driver type.
func NewDriver(l *link.Link) *Driver {
	return &Driver{link: l}
}

// Link returns the underlying link.
func (d *Driver) Link() *link.Link {
	return d.link
}

// Execute a command. Used to execute commands created by the exported command
// functions.
func (d *Driver) Execute(cmd link.Command) (link.Result, error) {
	return d.link.Execute(cmd)
}

func (d *Driver) execute(op addresses.Opcode, args ...uint16) (link.Result, error) {
	return d.link.Execute(link.NewCommand(op, args...))
}

// split a 32 bit value into the high and low words.
func split(v uint32) (uint16, uint16) {
	return uint16(v >> 16), uint16(v)
}

// stage a NUL terminated name in word RAM.
func (d *Driver) stageName(name string) error {
	if name == "" || strings.IndexByte(name, 0x00) != -1 || len(name)+1 > MaxPayload {
		return invalid("name %q", name)
	}
	d.link.Bus().WriteBlock(addresses.WordRAM, append([]byte(name), 0x00))
	return nil
}

// Init initialises the driver. All buffers are forgotten and all sources are
// stopped.
func (d *Driver) Init() error {
	_, err := d.execute(addresses.OpInit)
	return err
}

// PlaySource plays a buffer on a source. If the source is AnySource then the
// driver allocates a free source. Returns the source that is playing the
// buffer or NoSource if the source could not be allocated.
func (d *Driver) PlaySource(p PlayParams) (SourceID, error) {
	cmd, err := PlayCommand(p)
	if err != nil {
		return NoSource, err
	}
	res, err := d.link.Execute(cmd)
	if err != nil {
		return NoSource, err
	}
	return SourceID(res.High(0)), nil
}

// UpdateSource changes the frequency, pan, volume and autoloop of a source.
func (d *Driver) UpdateSource(p UpdateParams) error {
	cmd, err := UpdateCommand(p)
	if err != nil {
		return err
	}
	_, err = d.link.Execute(cmd)
	return err
}

// PauseSource pauses or unpauses a source. The source ID is returned
// unchanged.
func (d *Driver) PauseSource(id SourceID, paused bool) (SourceID, error) {
	if err := checkSource(id, false); err != nil {
		return id, err
	}
	_, err := d.execute(addresses.OpPause, uint16(id), flag(paused))
	return id, err
}

// StopSource stops a source.
func (d *Driver) StopSource(id SourceID) error {
	cmd, err := StopCommand(id)
	if err != nil {
		return err
	}
	_, err = d.link.Execute(cmd)
	return err
}

// RewindSource sets the playback position of a source to the start of the
// buffer.
func (d *Driver) RewindSource(id SourceID) error {
	if err := checkSource(id, false); err != nil {
		return err
	}
	_, err := d.execute(addresses.OpRewind, uint16(id))
	return err
}

// SourcePosition returns the playback position of a source.
func (d *Driver) SourcePosition(id SourceID) (uint16, error) {
	if err := checkSource(id, false); err != nil {
		return 0, err
	}
	res, err := d.execute(addresses.OpPosition, uint16(id))
	if err != nil {
		return 0, err
	}
	return res.Words[0], nil
}

// ClearAll stops all sources.
func (d *Driver) ClearAll() error {
	_, err := d.link.Execute(ClearCommand())
	return err
}

// SuspendMixer suspends or resumes the mixer. Sources do not advance while
// the mixer is suspended.
func (d *Driver) SuspendMixer(suspend bool) error {
	_, err := d.link.Execute(SuspendCommand(suspend))
	return err
}

// UploadBuffer copies data to a buffer on the peer. The data is staged in word
// RAM before the command is issued.
func (d *Driver) UploadBuffer(id BufferID, data []byte) error {
	if err := checkBuffer(id); err != nil {
		return err
	}
	if len(data) >= MaxPayload {
		return invalid("payload of %d bytes", len(data))
	}

	d.link.Bus().WriteBlock(addresses.WordRAM, data)

	hi, lo := split(addresses.PeerWordRAM)
	lhi, llo := split(uint32(len(data)))
	_, err := d.execute(addresses.OpUpload, uint16(id), hi, lo, lhi, llo)
	return err
}

// UploadSegments copies segments of a file on the disc to a buffer. The
// segments are concatenated in the buffer.
func (d *Driver) UploadSegments(id BufferID, filename string, segs []Segment) error {
	if err := checkBuffer(id); err != nil {
		return err
	}
	if len(segs) == 0 || len(segs) > 0xffff {
		return invalid("%d segments", len(segs))
	}
	if filename == "" || strings.IndexByte(filename, 0x00) != -1 {
		return invalid("name %q", filename)
	}

	// filename is followed by the offset/length table, aligned to four bytes
	table := (len(filename) + 1 + 3) &^ 3
	data := make([]byte, table+len(segs)*8)
	copy(data, filename)
	for i, s := range segs {
		if s.Offset < 0 || s.Length < 0 {
			return invalid("segment %d (%d, %d)", i, s.Offset, s.Length)
		}
		binary.BigEndian.PutUint32(data[table+i*8:], uint32(s.Offset))
		binary.BigEndian.PutUint32(data[table+i*8+4:], uint32(s.Length))
	}
	if len(data) >= MaxPayload {
		return invalid("segment table of %d bytes", len(data))
	}

	d.link.Bus().WriteBlock(addresses.WordRAM, data)

	hi, lo := split(addresses.PeerWordRAM)
	_, err := d.execute(addresses.OpUploadSegs, uint16(id), uint16(len(segs)), hi, lo)
	return err
}

// OpenFile opens a file on the disc. Check the returned handle with the
// Failed() function.
func (d *Driver) OpenFile(name string) (FileHandle, error) {
	if err := d.stageName(name); err != nil {
		return FileHandle{}, err
	}

	hi, lo := split(addresses.PeerWordRAM)
	res, err := d.execute(addresses.OpOpenFile, hi, lo)
	if err != nil {
		return FileHandle{}, err
	}

	return FileHandle{
		Length: int32(res.Long(0)),
		Status: res.Long(2),
	}, nil
}

// LoadFile opens a file and copies all of it to a buffer. Returns false if the
// file could not be opened.
func (d *Driver) LoadFile(name string, id BufferID) (bool, error) {
	if err := checkBuffer(id); err != nil {
		return false, err
	}

	h, err := d.OpenFile(name)
	if err != nil {
		return false, err
	}
	if h.Failed() {
		return false, nil
	}

	err = d.UploadSegments(id, name, []Segment{{Offset: 0, Length: h.Length}})
	if err != nil {
		return false, err
	}

	return true, nil
}

// DiscInfo returns information about the disc in the drive.
func (d *Driver) DiscInfo() (DiscInfo, error) {
	res, err := d.execute(addresses.OpDiscInfo)
	if err != nil {
		return DiscInfo{}, err
	}
	return DiscInfo{
		Status:       res.Words[0],
		FirstTrack:   res.High(1),
		LastTrack:    res.Low(1),
		DriveVersion: res.High(2),
		Flags:        res.Low(2),
	}, nil
}

// TrackInfo returns information about a track on the disc.
func (d *Driver) TrackInfo(track uint16) (TrackInfo, error) {
	if track < 1 || track > MaxTrack {
		return TrackInfo{}, invalid("track %d", track)
	}
	res, err := d.execute(addresses.OpTrackInfo, track)
	if err != nil {
		return TrackInfo{}, err
	}
	msf := res.Long(0)
	return TrackInfo{
		Minutes: uint8(msf >> 24),
		Seconds: uint8(msf >> 16),
		Frames:  uint8(msf >> 8),
		Track:   uint8(msf),
		Type:    res.High(2),
	}, nil
}

// PlayTrack plays a CD audio track.
func (d *Driver) PlayTrack(track uint16, repeat bool) error {
	if track < 1 || track > MaxTrack {
		return invalid("track %d", track)
	}
	_, err := d.execute(addresses.OpPlayTrack, track, flag(repeat))
	return err
}

// StopTrack stops CD audio playback.
func (d *Driver) StopTrack() error {
	_, err := d.execute(addresses.OpStopTrack)
	return err
}

// ToggleTrackPause pauses CD audio playback if it is playing and resumes it if
// it is paused.
func (d *Driver) ToggleTrackPause() error {
	_, err := d.execute(addresses.OpPauseTrack)
	return err
}

// SetTrackVolume sets the volume of CD audio playback.
func (d *Driver) SetTrackVolume(volume uint16) error {
	if volume > MaxTrackVolume {
		return invalid("volume %d", volume)
	}
	_, err := d.execute(addresses.OpTrackVolume, volume)
	return err
}

// PlaySPCM streams a PCM file from the disc.
func (d *Driver) PlaySPCM(name string, repeat uint32) error {
	if err := d.stageName(name); err != nil {
		return err
	}
	hi, lo := split(addresses.PeerWordRAM)
	rhi, rlo := split(repeat)
	_, err := d.execute(addresses.OpPlaySPCM, hi, lo, rhi, rlo)
	return err
}

// StopSPCM stops streamed PCM playback.
func (d *Driver) StopSPCM() error {
	_, err := d.execute(addresses.OpStopSPCM)
	return err
}

// ResumeSPCM resumes streamed PCM playback.
func (d *Driver) ResumeSPCM() error {
	_, err := d.execute(addresses.OpResumeSPCM)
	return err
}

// PlaybackStatus returns a bitmask of playing sources. Bit n is set if source
// n+1 is playing.
func (d *Driver) PlaybackStatus() uint8 {
	return d.link.Bus().Read8(addresses.SourceStatus)
}

// SPCMStatus returns a bitmask of playing streamed PCM tracks.
func (d *Driver) SPCMStatus() uint8 {
	return d.link.Bus().Read8(addresses.SPCMStatus)
}
