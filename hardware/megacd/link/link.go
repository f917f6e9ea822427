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

package link

import (
	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/environment"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bus"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/poll"
	"github.com/jetsetilly/mode1pcm/logger"
)

// Sentinal error patterns.
const (
	BringUpTimeout = "link: peer did not come alive after %d polls"
	BringUpRefused = "link: bring-up has already been attempted"
	NotReady       = "link: not ready"
	UnknownOpcode  = "link: unknown opcode (%#02x)"
)

// Boot implementations prepare the peer's program RAM during bring-up.
type Boot interface {
	// Locate the BIOS in the peer's ROM
	Locate(b bus.Bus) (uint32, error)

	// Load the BIOS and the driver program into program RAM. The bus has been
	// granted to the host when Load() is called
	Load(b bus.Bus, location uint32) error

	// StartInterrupts is called once the peer is running
	StartInterrupts(b bus.Bus)
}

// Link is the connection to the PCM driver running on the peer. It is not
// safe for concurrent use.
type Link struct {
	env *environment.Environment
	bus bus.Bus

	// bring-up has been attempted. a link can only be brought up once
	attempted bool

	// bring-up has completed successfully
	ready bool

	stats Stats
}

// NewLink creates a link in the not-ready state. Use BringUp() to make the
// link ready.
func NewLink(env *environment.Environment, b bus.Bus) *Link {
	return &Link{
		env:   env,
		bus:   b,
		stats: newStats(),
	}
}

// BringUp creates a new link and brings up the peer. The Link instance is
// returned even if the bring-up fails, in which case the link will never be
// ready.
func BringUp(env *environment.Environment, b bus.Bus, boot Boot) (*Link, error) {
	l := NewLink(env, b)
	return l, l.BringUp(boot)
}

// Ready returns true if the link has been brought up successfully.
func (l *Link) Ready() bool {
	return l.ready
}

// CommIn returns the current value of the command port.
func (l *Link) CommIn() uint8 {
	return l.bus.Read8(addresses.CommandPort)
}

// CommOut returns the current value of the status port.
func (l *Link) CommOut() uint8 {
	return l.bus.Read8(addresses.StatusPort)
}

// Bus returns the bus used by the link. Payloads are staged in word RAM with
// the bus before executing the command that refers to them.
func (l *Link) Bus() bus.Bus {
	return l.bus
}

// Stats returns a copy of the link statistics.
func (l *Link) Stats() Stats {
	return l.stats.copy()
}

func (l *Link) log(detail string, args ...any) {
	logger.Logf(l.env, l.env.Tag("link"), detail, args...)
}

// BringUp resets the peer, loads the driver and waits for the driver to
// report that it is alive. Only the first call to BringUp() for a link is
// allowed. Subsequent calls return the BringUpRefused error.
func (l *Link) BringUp(boot Boot) error {
	if l.attempted {
		return curated.Errorf(BringUpRefused)
	}
	l.attempted = true

	location, err := boot.Locate(l.bus)
	if err != nil {
		return err
	}

	// this sequence of writes is recognised by the gate array as a reset.
	// clears the entire internal state of the gate array
	l.bus.Write16(addresses.MemoryMode, addresses.GateArrayReset)
	l.bus.Write8(addresses.ResetControl, addresses.GateArrayReset1)
	l.bus.Write8(addresses.ResetControl, addresses.GateArrayReset2)
	l.bus.Write8(addresses.ResetControl, addresses.GateArrayReset3)

	// request the bus. the request is repeated until it is acknowledged
	l.bus.Write8(addresses.ResetControl, addresses.BusRequest)
	_, n := poll.Until(func() bool {
		if l.bus.Read8(addresses.ResetControl)&addresses.ResetBusAck == addresses.ResetBusAck {
			return true
		}
		l.bus.Write8(addresses.ResetControl, addresses.BusRequest)
		return false
	}, poll.Unbounded, 0)
	l.log("bus granted after %d polls", n)

	// no write protection, 2M mode, word RAM assigned to the peer. program
	// RAM must be cleared before loading
	l.bus.Write16(addresses.MemoryMode, addresses.NoWriteProtect)
	l.bus.WriteBlock(addresses.ProgramRAM, make([]byte, addresses.ProgramRAMLength))

	if err := boot.Load(l.bus, location); err != nil {
		return err
	}

	// clear command port, write protect the BIOS, release the bus and
	// deassert reset
	l.bus.Write8(addresses.CommandPort, 0x00)
	l.bus.Write8(addresses.MemoryMode, addresses.WriteProtect)
	l.bus.Write8(addresses.ResetControl, addresses.ReleaseBus)
	_, n = poll.Until(func() bool {
		if l.bus.Read8(addresses.ResetControl)&addresses.ResetRunning == addresses.ResetRunning {
			return true
		}
		l.bus.Write8(addresses.ResetControl, addresses.ReleaseBus)
		return false
	}, poll.Unbounded, 0)
	l.log("peer running after %d polls", n)

	boot.StartInterrupts(l.bus)

	// the peer program indicates that it is alive. this is the only wait in
	// the protocol that will give up
	threshold := l.env.Prefs.Liveness()
	r, n := poll.Until(func() bool {
		return l.bus.Read8(addresses.StatusPort) == addresses.PeerAlive
	}, poll.Bounded(threshold), 0)
	l.stats.LivenessPolls = n
	if r == poll.Timeout {
		l.log("peer not alive after %d polls", n)
		return curated.Errorf(BringUpTimeout, n)
	}
	l.log("peer alive after %d polls", n)

	// the peer program indicates that it is ready for the first command
	poll.Until(func() bool {
		return l.bus.Read8(addresses.StatusPort) == addresses.PeerIdle
	}, poll.Unbounded, 0)

	l.ready = true
	l.log("ready")

	return nil
}

// Execute a command on the peer. Returns the NotReady error if the link has not
// been brought up successfully, in which case no register is touched.
//
// Execute will block forever if the peer never acknowledges the command.
func (l *Link) Execute(cmd Command) (Result, error) {
	if !l.ready {
		return Result{}, curated.Errorf(NotReady)
	}
	if !cmd.Opcode.Valid() {
		return Result{}, curated.Errorf(UnknownOpcode, uint8(cmd.Opcode))
	}

	delay := l.env.Prefs.Delay()

	// wait until the peer is ready to receive a command
	poll.Until(func() bool {
		return l.bus.Read8(addresses.StatusPort) == addresses.PeerIdle
	}, poll.Unbounded, delay)

	for _, w := range cmd.Encode() {
		switch w.Size {
		case 1:
			l.bus.Write8(w.Address, uint8(w.Data))
		case 2:
			l.bus.Write16(w.Address, uint16(w.Data))
		case 4:
			l.bus.Write32(w.Address, w.Data)
		}
	}
	l.bus.Write8(addresses.CommandPort, uint8(cmd.Opcode))

	// wait for the acknowledge
	var res Result
	_, n := poll.Until(func() bool {
		res.Ack = l.bus.Read8(addresses.StatusPort)
		return res.Ack != addresses.PeerIdle
	}, poll.Unbounded, delay)

	// the peer guarantees that results are stable before acknowledging
	for i := 0; i < cmd.Opcode.ResultWords(); i++ {
		res.Words[i] = l.bus.Read16(addresses.Results + uint32(i*2))
	}

	// completion
	l.bus.Write8(addresses.CommandPort, 0x00)

	l.stats.record(byte(cmd.Opcode), n)
	if l.env.Prefs.LogExchanges.Get().(bool) {
		l.log("%s: %s (%d polls)", cmd, res, n)
	}

	return res, nil
}
