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
	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
)

type busState int

const (
	busReleased busState = iota
	busRequested
	busGranted
)

type runState int

const (
	runHalted runState = iota
	runStarting
	runRunning
)

// gateArray is the state of the registers that control the peer processor.
type gateArray struct {
	bus busState
	run runState

	// reads of the reset register remaining before the bus is granted or the
	// peer is running
	countdown int

	// the host has raised the level 2 interrupt
	interrupts bool

	// progress through the gate array reset sequence
	resetSeq int

	// number of complete gate array reset sequences
	resets int
}

// the sequence of writes recognised as a gate array reset. the first value
// is written to the memory mode register and the rest to the reset register
var resetSequence = []uint8{0xff, addresses.GateArrayReset1, addresses.GateArrayReset2, addresses.GateArrayReset3}

func (p *Peer) reg(address uint32) *uint8 {
	return &p.regs[address-regOrigin]
}

func (p *Peer) readRegister(address uint32) uint8 {
	p.reads[address]++

	switch address {
	case addresses.ResetControl:
		return p.readResetControl()
	case addresses.StatusPort:
		return p.readStatus()
	}

	return *p.reg(address)
}

func (p *Peer) writeRegister(address uint32, data uint8) {
	switch address {
	case addresses.InterruptControl:
		*p.reg(address) = data
		if data&uint8(addresses.Level2Interrupt>>8) != 0 {
			p.ga.interrupts = true
			p.boot()
		}

	case addresses.MemoryMode:
		*p.reg(address) = data
		if data == resetSequence[0] {
			p.ga.resetSeq = 1
		} else {
			p.ga.resetSeq = 0
		}

	case addresses.ResetControl:
		p.writeResetControl(data)

	case addresses.CommandPort:
		p.command(data)

	case addresses.StatusPort:
		// the status port is only written to by the peer

	default:
		if address >= addresses.Args && address <= addresses.ArgsEnd && p.driver.busy {
			p.violations++
		}
		*p.reg(address) = data
	}
}

func (p *Peer) readResetControl() uint8 {
	switch {
	case p.ga.bus == busRequested:
		if p.ga.countdown > 0 {
			p.ga.countdown--
		} else {
			p.ga.bus = busGranted
		}
	case p.ga.run == runStarting:
		if p.ga.countdown > 0 {
			p.ga.countdown--
		} else {
			p.ga.run = runRunning
			p.boot()
		}
	}

	var v uint8
	if p.ga.bus == busGranted {
		v |= addresses.ResetBusAck
	}
	if p.ga.run == runRunning {
		v |= addresses.ResetRunning
	}
	return v
}

func (p *Peer) writeResetControl(data uint8) {
	*p.reg(addresses.ResetControl) = data

	// gate array reset sequence
	if p.ga.resetSeq > 0 && p.ga.resetSeq < len(resetSequence) && data == resetSequence[p.ga.resetSeq] {
		p.ga.resetSeq++
		if p.ga.resetSeq == len(resetSequence) {
			p.ga.resetSeq = 0
			p.gateArrayReset()
			return
		}
	} else {
		p.ga.resetSeq = 0
	}

	if data&addresses.BusRequest == addresses.BusRequest {
		// bus request halts the peer
		if p.ga.bus == busReleased {
			p.ga.bus = busRequested
			p.ga.countdown = p.cfg.BusAckDelay
		}
		p.ga.run = runHalted
		p.driver.phase = phaseOffline
		return
	}

	p.ga.bus = busReleased

	if data&addresses.ReleaseBus == addresses.ReleaseBus {
		if p.ga.run == runHalted {
			p.ga.run = runStarting
			p.ga.countdown = p.cfg.RunDelay
		}
		return
	}

	// reset is asserted
	p.ga.run = runHalted
	p.driver.phase = phaseOffline
}

// gateArrayReset clears the entire internal state of the gate array.
func (p *Peer) gateArrayReset() {
	for i := range p.regs {
		p.regs[i] = 0
	}
	p.ga = gateArray{resets: p.ga.resets + 1}
	p.driver.phase = phaseOffline
}

// boot starts the driver if the peer is running and interrupts have been
// raised.
func (p *Peer) boot() {
	if p.ga.run != runRunning || !p.ga.interrupts || p.driver.phase != phaseOffline {
		return
	}
	p.driver.reset(p.cfg.PoolSize)
	p.driver.phase = phaseBooting
	p.driver.countdown = p.cfg.LiveDelay
}

// readStatus advances the driver's liveness handshake and the acknowledge of
// any pending command.
func (p *Peer) readStatus() uint8 {
	status := p.reg(addresses.StatusPort)

	switch p.driver.phase {
	case phaseBooting:
		if p.cfg.NeverLive {
			break
		}
		if p.driver.countdown > 0 {
			p.driver.countdown--
			break
		}
		p.driver.phase = phaseAlive
		p.driver.countdown = p.cfg.ReadyDelay
		*status = addresses.PeerAlive

	case phaseAlive:
		if p.driver.countdown > 0 {
			p.driver.countdown--
			break
		}
		p.driver.phase = phaseReady
		*status = addresses.PeerIdle

	case phaseReady:
		if p.driver.busy && *status == addresses.PeerIdle {
			if p.driver.countdown > 0 {
				p.driver.countdown--
				break
			}
			p.execute()
		}
	}

	return *status
}

// command is called when the host writes to the command port.
func (p *Peer) command(op uint8) {
	cmd := p.reg(addresses.CommandPort)
	status := p.reg(addresses.StatusPort)

	// completion
	if op == 0x00 {
		*cmd = 0x00
		if p.driver.busy && *status != addresses.PeerIdle {
			p.driver.busy = false
			*status = addresses.PeerIdle
		}
		return
	}

	// commands are ignored until the driver is ready
	if p.driver.phase != phaseReady {
		*cmd = op
		return
	}

	// a command must not be issued until the previous command has completed
	if p.driver.busy || *status != addresses.PeerIdle {
		p.violations++
	}

	*cmd = op
	p.driver.busy = true
	p.driver.pending = op
	p.driver.countdown = p.cfg.AckDelay
	if p.driver.countdown == 0 {
		p.execute()
	}
}
