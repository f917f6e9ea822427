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
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
)

// TraceEntry is a record of a command executed by the peer.
type TraceEntry struct {
	Opcode addresses.Opcode

	// the argument registers as 16 bit words
	Args [6]uint16

	// the mixer was suspended when the command was executed
	Suspended bool
}

func (e TraceEntry) String() string {
	switch e.Opcode {
	case addresses.OpPlaySource:
		return fmt.Sprintf("%c(%d, %d)", e.Opcode, e.Args[0], e.Args[1])
	case addresses.OpUpdate, addresses.OpPause, addresses.OpStop,
		addresses.OpRewind, addresses.OpPosition:
		return fmt.Sprintf("%c(%d)", e.Opcode, e.Args[0])
	case addresses.OpSuspend:
		// the suspend flag is a single byte at the start of the arguments
		return fmt.Sprintf("%c(%d)", e.Opcode, e.Args[0]>>8)
	}
	return fmt.Sprintf("%c", e.Opcode)
}

func (p *Peer) traceArgs() [6]uint16 {
	var a [6]uint16
	for i := range a {
		a[i] = p.argWord(uint32(i * 2))
	}
	return a
}

// Trace returns a copy of the command trace.
func (p *Peer) Trace() []TraceEntry {
	p.crit.Lock()
	defer p.crit.Unlock()
	return append([]TraceEntry(nil), p.trace...)
}

// ClearTrace forgets all previously executed commands.
func (p *Peer) ClearTrace() {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.trace = p.trace[:0]
}

// Violations returns the number of times the host issued a command, or wrote
// to the argument registers, before the previous command had completed.
func (p *Peer) Violations() int {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.violations
}

// Reads returns the number of times the register has been read.
func (p *Peer) Reads(address uint32) int {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.reads[address]
}

// ClearReads resets the number of reads for all registers.
func (p *Peer) ClearReads() {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.reads = make(map[uint32]int)
}

// Resets returns the number of gate array resets.
func (p *Peer) Resets() int {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.ga.resets
}

// Ready returns true if the simulated driver is ready to accept commands.
func (p *Peer) Ready() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.driver.phase == phaseReady
}

// Suspended returns true if the mixer has been suspended.
func (p *Peer) Suspended() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.driver.suspended
}

// AddFile adds a file to the simulated disc.
func (p *Peer) AddFile(name string, data []byte) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.files[name] = append([]byte(nil), data...)
}

// Buffer returns a copy of the buffer with the ID. Returns false if there is
// no such buffer.
func (p *Peer) Buffer(id uint16) ([]byte, bool) {
	p.crit.Lock()
	defer p.crit.Unlock()
	b, ok := p.driver.buffers[id]
	return append([]byte(nil), b...), ok
}

// PoolUsed returns the number of bytes used by buffers.
func (p *Peer) PoolUsed() int {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.driver.poolUsed
}

// SourceState is a snapshot of a mixer source.
type SourceState struct {
	ID       int
	Playing  bool
	Paused   bool
	Autoloop bool
	Buffer   uint16
	Freq     uint16
	Pan      uint8
	Vol      uint8
	Position int
}

func (s SourceState) String() string {
	state := "stopped"
	switch {
	case s.Paused:
		state = "paused"
	case s.Playing:
		state = "playing"
	}
	return fmt.Sprintf("%d: %s buf=%d freq=%d pan=%d vol=%d pos=%d", s.ID, state, s.Buffer, s.Freq, s.Pan, s.Vol, s.Position)
}

// Sources returns a snapshot of every source in the mixer.
func (p *Peer) Sources() []SourceState {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.sources()
}

func (p *Peer) sources() []SourceState {
	s := make([]SourceState, numSources)
	for i, src := range p.driver.sources {
		s[i] = SourceState{
			ID:       i + 1,
			Playing:  src.playing,
			Paused:   src.paused,
			Autoloop: src.autoloop,
			Buffer:   src.buf,
			Freq:     src.freq,
			Pan:      src.pan,
			Vol:      src.vol,
			Position: src.pos,
		}
	}
	return s
}

// CDDAState is a snapshot of CD audio playback.
type CDDAState struct {
	Track   uint16
	Repeat  bool
	Playing bool
	Paused  bool
	Volume  uint16
}

// CDDA returns a snapshot of CD audio playback.
func (p *Peer) CDDA() CDDAState {
	p.crit.Lock()
	defer p.crit.Unlock()
	c := p.driver.cdda
	return CDDAState{Track: c.track, Repeat: c.repeat, Playing: c.playing, Paused: c.paused, Volume: c.volume}
}

// SPCMState is a snapshot of streamed PCM playback.
type SPCMState struct {
	Name    string
	Repeat  uint32
	Playing bool
}

// SPCM returns a snapshot of streamed PCM playback.
func (p *Peer) SPCM() SPCMState {
	p.crit.Lock()
	defer p.crit.Unlock()
	s := p.driver.spcm
	return SPCMState{Name: s.name, Repeat: s.repeat, Playing: s.playing}
}

// snapshot is the structure drawn by Memviz().
type snapshot struct {
	Ready      bool
	Suspended  bool
	Violations int
	Resets     int
	PoolUsed   int
	Sources    []SourceState
	Buffers    map[uint16]int
	CDDA       CDDAState
	SPCM       SPCMState
}

// Memviz writes a graphviz representation of the peer state to w.
func (p *Peer) Memviz(w io.Writer) {
	p.crit.Lock()
	s := &snapshot{
		Ready:      p.driver.phase == phaseReady,
		Suspended:  p.driver.suspended,
		Violations: p.violations,
		Resets:     p.ga.resets,
		PoolUsed:   p.driver.poolUsed,
		Sources:    p.sources(),
		Buffers:    make(map[uint16]int),
		CDDA: CDDAState{
			Track:   p.driver.cdda.track,
			Repeat:  p.driver.cdda.repeat,
			Playing: p.driver.cdda.playing,
			Paused:  p.driver.cdda.paused,
			Volume:  p.driver.cdda.volume,
		},
		SPCM: SPCMState{
			Name:    p.driver.spcm.name,
			Repeat:  p.driver.spcm.repeat,
			Playing: p.driver.spcm.playing,
		},
	}
	for id, b := range p.driver.buffers {
		s.Buffers[id] = len(b)
	}
	p.crit.Unlock()

	memviz.Map(w, s)
}
