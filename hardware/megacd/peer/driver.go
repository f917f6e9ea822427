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

package peer

import (
	"encoding/binary"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
)

type phase int

const (
	phaseOffline phase = iota
	phaseBooting
	phaseAlive
	phaseReady
)

// the number of sources in the mixer
const numSources = 8

// anySource is the source ID that requests allocation of a free source.
const anySource = 255

type source struct {
	playing  bool
	paused   bool
	autoloop bool
	buf      uint16
	freq     uint16
	pan      uint8
	vol      uint8
	pos      int
}

type cdda struct {
	track   uint16
	repeat  bool
	playing bool
	paused  bool
	volume  uint16
}

type spcm struct {
	name    string
	repeat  uint32
	playing bool
}

// driver is the state of the PCM driver running on the peer.
type driver struct {
	phase phase

	// reads of the status port remaining before the next phase or before the
	// acknowledge of the pending command
	countdown int

	// a command has been written and not yet completed by the host
	busy    bool
	pending uint8

	// the mixer has been suspended. commands are still executed but sources
	// do not advance
	suspended bool

	sources  [numSources]source
	buffers  map[uint16][]byte
	poolSize int
	poolUsed int

	cdda cdda
	spcm spcm
}

// reset driver state. the phase is not changed.
func (d *driver) reset(poolSize int) {
	d.busy = false
	d.suspended = false
	d.sources = [numSources]source{}
	d.buffers = make(map[uint16][]byte)
	d.poolSize = poolSize
	d.poolUsed = 0
	d.cdda = cdda{}
	d.spcm = spcm{}
}

func (p *Peer) argByte(offset uint32) uint8 {
	return *p.reg(addresses.Args + offset)
}

func (p *Peer) argWord(offset uint32) uint16 {
	a := addresses.Args + offset - regOrigin
	return binary.BigEndian.Uint16(p.regs[a:])
}

func (p *Peer) argLong(offset uint32) uint32 {
	a := addresses.Args + offset - regOrigin
	return binary.BigEndian.Uint32(p.regs[a:])
}

func (p *Peer) resultWord(offset uint32, v uint16) {
	a := addresses.Results + offset - regOrigin
	binary.BigEndian.PutUint16(p.regs[a:], v)
}

func (p *Peer) resultLong(offset uint32, v uint32) {
	a := addresses.Results + offset - regOrigin
	binary.BigEndian.PutUint32(p.regs[a:], v)
}

// wordRAMOffset converts an address in the peer's view of word RAM to an
// offset into word RAM. Returns false if the address is not in word RAM.
func wordRAMOffset(address uint32) (uint32, bool) {
	if address < addresses.PeerWordRAM || address >= addresses.PeerWordRAM+addresses.WordRAMLength {
		return 0, false
	}
	return address - addresses.PeerWordRAM, true
}

// cstring returns the NUL terminated string in word RAM at the offset.
func (p *Peer) cstring(offset uint32) string {
	end := offset
	for end < uint32(len(p.wordRAM)) && p.wordRAM[end] != 0x00 {
		end++
	}
	return string(p.wordRAM[offset:end])
}

// execute the pending command. the results are written and the command is
// acknowledged.
func (p *Peer) execute() {
	op := addresses.Opcode(p.driver.pending)

	p.trace = append(p.trace, TraceEntry{
		Opcode:    op,
		Args:      p.traceArgs(),
		Suspended: p.driver.suspended,
	})

	for a := addresses.Results; a <= addresses.ResultsEnd; a++ {
		*p.reg(a) = 0
	}

	switch op {
	case addresses.OpInit:
		ph := p.driver.phase
		p.driver.reset(p.cfg.PoolSize)
		p.driver.phase = ph
		p.driver.busy = true
	case addresses.OpPlaySource:
		p.playSource()
	case addresses.OpUpdate:
		if s := p.source(p.argWord(0x00)); s != nil {
			s.freq = p.argWord(0x04)
			s.pan = uint8(p.argWord(0x06))
			s.vol = uint8(p.argWord(0x08))
			s.autoloop = p.argWord(0x0a) != 0
		}
	case addresses.OpPause:
		if s := p.source(p.argWord(0x00)); s != nil {
			s.paused = p.argWord(0x02) != 0
		}
	case addresses.OpStop:
		if s := p.source(p.argWord(0x00)); s != nil {
			s.playing = false
			s.paused = false
		}
	case addresses.OpRewind:
		if s := p.source(p.argWord(0x00)); s != nil {
			s.pos = 0
		}
	case addresses.OpPosition:
		if s := p.source(p.argWord(0x00)); s != nil {
			p.resultWord(0x00, uint16(s.pos))
		}
	case addresses.OpClear:
		for i := range p.driver.sources {
			p.driver.sources[i].playing = false
			p.driver.sources[i].paused = false
		}
	case addresses.OpUpload:
		p.upload()
	case addresses.OpUploadSegs:
		p.uploadSegments()
	case addresses.OpOpenFile:
		p.openFile()
	case addresses.OpDiscInfo:
		d := p.cfg.Disc
		p.resultWord(0x00, d.Status)
		p.resultWord(0x02, uint16(d.FirstTrack)<<8|uint16(d.LastTrack))
		p.resultWord(0x04, uint16(d.DriveVersion)<<8|uint16(d.Flags))
	case addresses.OpTrackInfo:
		p.trackInfo()
	case addresses.OpPlayTrack:
		p.driver.cdda.track = p.argWord(0x00)
		p.driver.cdda.repeat = p.argByte(0x02) != 0
		p.driver.cdda.playing = true
		p.driver.cdda.paused = false
	case addresses.OpStopTrack:
		p.driver.cdda.playing = false
		p.driver.cdda.paused = false
	case addresses.OpPauseTrack:
		if p.driver.cdda.playing {
			p.driver.cdda.paused = !p.driver.cdda.paused
		}
	case addresses.OpTrackVolume:
		p.driver.cdda.volume = p.argWord(0x00)
	case addresses.OpPlaySPCM:
		if o, ok := wordRAMOffset(p.argLong(0x00)); ok {
			name := p.cstring(o)
			if _, ok := p.files[name]; ok {
				p.driver.spcm = spcm{name: name, repeat: p.argLong(0x04), playing: true}
			}
		}
	case addresses.OpStopSPCM:
		p.driver.spcm.playing = false
	case addresses.OpResumeSPCM:
		if p.driver.spcm.name != "" {
			p.driver.spcm.playing = true
		}
	case addresses.OpSuspend:
		p.driver.suspended = p.argByte(0x00) != 0
	}

	p.updateStatusMasks()

	// the acknowledge is the opcode
	*p.reg(addresses.StatusPort) = uint8(op)
}

// source returns the source for the ID or nil if the ID is not valid.
func (p *Peer) source(id uint16) *source {
	if id < 1 || id > numSources {
		return nil
	}
	return &p.driver.sources[id-1]
}

func (p *Peer) playSource() {
	id := p.argWord(0x00)
	buf := p.argWord(0x02)

	if id == anySource {
		id = 0
		for i := range p.driver.sources {
			if !p.driver.sources[i].playing {
				id = uint16(i + 1)
				break
			}
		}
	}

	s := p.source(id)
	if _, ok := p.driver.buffers[buf]; !ok || s == nil {
		// allocation failure
		p.resultWord(0x00, 0)
		return
	}

	*s = source{
		playing:  true,
		buf:      buf,
		freq:     p.argWord(0x04),
		pan:      uint8(p.argWord(0x06)),
		vol:      uint8(p.argWord(0x08)),
		autoloop: p.argWord(0x0a) != 0,
	}

	// source ID is in the high byte of the result
	p.resultWord(0x00, id<<8)
}

// store data as the buffer. the buffer pool is monotonic so the space used by
// any previous buffer with the same ID is not reclaimed.
func (p *Peer) storeBuffer(buf uint16, data []byte) {
	if buf < 1 || buf > 256 {
		return
	}
	if p.driver.poolUsed+len(data) > p.driver.poolSize {
		return
	}
	p.driver.poolUsed += len(data)
	p.driver.buffers[buf] = append([]byte(nil), data...)
}

func (p *Peer) upload() {
	buf := p.argWord(0x00)
	o, ok := wordRAMOffset(p.argLong(0x04))
	if !ok {
		return
	}
	l := p.argLong(0x08)
	if o+l > uint32(len(p.wordRAM)) {
		return
	}
	p.storeBuffer(buf, p.wordRAM[o:o+l])
}

func (p *Peer) uploadSegments() {
	buf := p.argWord(0x00)
	count := uint32(p.argWord(0x02))
	o, ok := wordRAMOffset(p.argLong(0x04))
	if !ok {
		return
	}

	name := p.cstring(o)
	file, ok := p.files[name]
	if !ok {
		return
	}

	// offset/length pairs follow the filename, aligned to four bytes
	t := (o + uint32(len(name)) + 1 + 3) &^ 3
	if t+count*8 > uint32(len(p.wordRAM)) {
		return
	}

	var data []byte
	for i := uint32(0); i < count; i++ {
		ofs := int32(binary.BigEndian.Uint32(p.wordRAM[t+i*8:]))
		l := int32(binary.BigEndian.Uint32(p.wordRAM[t+i*8+4:]))
		if ofs < 0 || l < 0 || int(ofs)+int(l) > len(file) {
			return
		}
		data = append(data, file[ofs:ofs+l]...)
	}

	p.storeBuffer(buf, data)
}

// file open status values
const (
	fileOK       = 0
	fileNotFound = 1
)

func (p *Peer) openFile() {
	o, ok := wordRAMOffset(p.argLong(0x00))
	if !ok {
		p.resultLong(0x00, 0xffffffff)
		p.resultLong(0x04, fileNotFound)
		return
	}

	f, ok := p.files[p.cstring(o)]
	if !ok {
		p.resultLong(0x00, 0xffffffff)
		p.resultLong(0x04, fileNotFound)
		return
	}

	p.resultLong(0x00, uint32(len(f)))
	p.resultLong(0x04, fileOK)
}

func (p *Peer) trackInfo() {
	n := int(p.argWord(0x00))
	if n < 1 || n > len(p.cfg.Tracks) {
		return
	}
	t := p.cfg.Tracks[n-1]
	p.resultLong(0x00, uint32(t.Minutes)<<24|uint32(t.Seconds)<<16|uint32(t.Frames)<<8|uint32(n))
	*p.reg(addresses.Results + 4) = t.Type
}

// updateStatusMasks sets the status registers for sources and SPCM.
func (p *Peer) updateStatusMasks() {
	var m uint8
	for i, s := range p.driver.sources {
		if s.playing {
			m |= 1 << i
		}
	}
	*p.reg(addresses.SourceStatus) = m

	if p.driver.spcm.playing {
		*p.reg(addresses.SPCMStatus) = 0x01
	} else {
		*p.reg(addresses.SPCMStatus) = 0x00
	}
}

// Tick advances the playback position of every playing source by n samples.
// Sources do not advance if the mixer is suspended. A source that reaches
// the end of its buffer either loops or stops.
func (p *Peer) Tick(n int) {
	p.crit.Lock()
	defer p.crit.Unlock()

	if p.driver.phase != phaseReady || p.driver.suspended {
		return
	}

	for i := range p.driver.sources {
		s := &p.driver.sources[i]
		if !s.playing || s.paused {
			continue
		}
		l := len(p.driver.buffers[s.buf])
		s.pos += n
		if s.pos >= l {
			if s.autoloop && l > 0 {
				s.pos %= l
			} else {
				s.playing = false
				s.pos = 0
			}
		}
	}

	p.updateStatusMasks()
}
