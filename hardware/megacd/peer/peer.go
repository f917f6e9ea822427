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
	"sync"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
)

// address ranges of the simulated memory
const (
	romOrigin  = addresses.BIOS
	romMemtop  = addresses.ProgramRAM - 1
	prgOrigin  = addresses.ProgramRAM
	prgMemtop  = addresses.ProgramRAM + addresses.ProgramRAMLength - 1
	wramOrigin = addresses.WordRAM
	wramMemtop = addresses.WordRAM + addresses.WordRAMLength - 1
	regOrigin  = addresses.InterruptControl
	regMemtop  = addresses.SourceStatus
)

// Peer is the simulated Mega CD. It is safe for concurrent use.
type Peer struct {
	crit sync.Mutex

	cfg Config

	rom     []byte
	prgRAM  []byte
	wordRAM []byte
	regs    [regMemtop - regOrigin + 1]byte

	ga     gateArray
	driver driver

	// files on the simulated disc
	files map[string][]byte

	// instrumentation
	violations int
	reads      map[uint32]int
	trace      []TraceEntry
}

// NewPeer is the preferred method of initialisation for the Peer type.
func NewPeer(cfg Config) *Peer {
	p := &Peer{
		cfg:     cfg,
		rom:     make([]byte, romMemtop-romOrigin+1),
		prgRAM:  make([]byte, addresses.ProgramRAMLength),
		wordRAM: make([]byte, addresses.WordRAMLength),
		files:   make(map[string][]byte),
		reads:   make(map[uint32]int),
	}

	// BIOS header. the rest of the ROM is filled with a pattern so that
	// loading the BIOS into program RAM can be verified
	for i := range p.rom {
		p.rom[i] = uint8(i * 7)
	}
	if !cfg.Absent {
		if cfg.WonderMega {
			c := addresses.BIOSCandidates[1] + addresses.SignatureOffset - romOrigin
			copy(p.rom[c:], addresses.WonderSignature)
		} else {
			c := addresses.BIOSCandidates[0] + addresses.SignatureOffset - romOrigin
			copy(p.rom[c:], addresses.Signature)
		}
	}

	p.driver.reset(cfg.PoolSize)

	return p
}

// ROM returns a copy of the simulated BIOS ROM starting at address.
func (p *Peer) ROM(address uint32, n int) []byte {
	p.crit.Lock()
	defer p.crit.Unlock()
	o := address - romOrigin
	return append([]byte(nil), p.rom[o:o+uint32(n)]...)
}

// read a single byte from anywhere in the address space. must be called with
// the critical section locked.
func (p *Peer) read(address uint32) uint8 {
	switch {
	case address >= romOrigin && address <= romMemtop:
		return p.rom[address-romOrigin]
	case address >= prgOrigin && address <= prgMemtop:
		return p.prgRAM[address-prgOrigin]
	case address >= wramOrigin && address <= wramMemtop:
		return p.wordRAM[address-wramOrigin]
	case address >= regOrigin && address <= regMemtop:
		return p.readRegister(address)
	}
	return 0
}

// write a single byte to anywhere in the address space. must be called with
// the critical section locked.
func (p *Peer) write(address uint32, data uint8) {
	switch {
	case address >= prgOrigin && address <= prgMemtop:
		// program RAM is only accessible to the host when the bus has been
		// granted
		if p.ga.bus == busGranted {
			p.prgRAM[address-prgOrigin] = data
		}
	case address >= wramOrigin && address <= wramMemtop:
		p.wordRAM[address-wramOrigin] = data
	case address >= regOrigin && address <= regMemtop:
		p.writeRegister(address, data)
	}
}

// Read8 implements the bus.Bus interface.
func (p *Peer) Read8(address uint32) uint8 {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.read(address)
}

// Read16 implements the bus.Bus interface.
func (p *Peer) Read16(address uint32) uint16 {
	p.crit.Lock()
	defer p.crit.Unlock()
	return uint16(p.read(address))<<8 | uint16(p.read(address+1))
}

// Read32 implements the bus.Bus interface.
func (p *Peer) Read32(address uint32) uint32 {
	p.crit.Lock()
	defer p.crit.Unlock()
	var b [4]byte
	for i := range b {
		b[i] = p.read(address + uint32(i))
	}
	return binary.BigEndian.Uint32(b[:])
}

// Write8 implements the bus.Bus interface.
func (p *Peer) Write8(address uint32, data uint8) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.write(address, data)
}

// Write16 implements the bus.Bus interface.
func (p *Peer) Write16(address uint32, data uint16) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.write(address, uint8(data>>8))
	p.write(address+1, uint8(data))
}

// Write32 implements the bus.Bus interface.
func (p *Peer) Write32(address uint32, data uint32) {
	p.crit.Lock()
	defer p.crit.Unlock()
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], data)
	for i := range b {
		p.write(address+uint32(i), b[i])
	}
}

// ReadBlock implements the bus.Bus interface.
func (p *Peer) ReadBlock(address uint32, data []byte) {
	p.crit.Lock()
	defer p.crit.Unlock()
	for i := range data {
		data[i] = p.read(address + uint32(i))
	}
}

// WriteBlock implements the bus.Bus interface.
func (p *Peer) WriteBlock(address uint32, data []byte) {
	p.crit.Lock()
	defer p.crit.Unlock()
	for i := range data {
		p.write(address+uint32(i), data[i])
	}
}
