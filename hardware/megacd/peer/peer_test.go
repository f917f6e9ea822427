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

package peer_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/megacdtest"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/peer"
	"github.com/jetsetilly/mode1pcm/test"
)

func TestGateArrayReset(t *testing.T) {
	p := peer.NewPeer(peer.DefaultConfig())
	test.ExpectEquality(t, p.Resets(), 0)

	p.Write8(addresses.MemoryMode, 0xff)
	p.Write8(addresses.ResetControl, addresses.GateArrayReset1)
	p.Write8(addresses.ResetControl, addresses.GateArrayReset2)
	p.Write8(addresses.ResetControl, addresses.GateArrayReset3)
	test.ExpectEquality(t, p.Resets(), 1)

	// an interrupted sequence is not a reset
	p.Write8(addresses.MemoryMode, 0xff)
	p.Write8(addresses.ResetControl, addresses.GateArrayReset1)
	p.Write8(addresses.ResetControl, addresses.GateArrayReset3)
	test.ExpectEquality(t, p.Resets(), 1)
}

func TestProgramRAMAccess(t *testing.T) {
	p := peer.NewPeer(peer.DefaultConfig())

	p.Write8(addresses.ProgramRAM, 0xaa)
	test.ExpectEquality(t, p.Read8(addresses.ProgramRAM), uint8(0x00))

	p.Write8(addresses.ResetControl, addresses.BusRequest)
	var n int
	for p.Read8(addresses.ResetControl)&addresses.ResetBusAck == 0 {
		n++
		test.DemandSuccess(t, n < 100)
	}
	test.ExpectEquality(t, n, peer.DefaultConfig().BusAckDelay)

	p.Write8(addresses.ProgramRAM, 0xaa)
	test.ExpectEquality(t, p.Read8(addresses.ProgramRAM), uint8(0xaa))

	// releasing the bus makes program RAM inaccessible again
	p.Write8(addresses.ResetControl, addresses.ReleaseBus)
	p.Write8(addresses.ProgramRAM, 0x55)
	test.ExpectEquality(t, p.Read8(addresses.ProgramRAM), uint8(0xaa))
}

func TestWordRAM(t *testing.T) {
	p := peer.NewPeer(peer.DefaultConfig())
	p.Write32(addresses.WordRAM, 0x01020304)
	test.ExpectEquality(t, p.Read16(addresses.WordRAM+2), uint16(0x0304))

	b := make([]byte, 4)
	p.ReadBlock(addresses.WordRAM, b)
	test.ExpectEquality(t, string(b), "\x01\x02\x03\x04")
}

func TestBringUp(t *testing.T) {
	p, _ := megacdtest.BringUp(t, peer.DefaultConfig())
	test.ExpectSuccess(t, p.Ready())
	test.ExpectEquality(t, p.Resets(), 1)
	test.ExpectEquality(t, p.Violations(), 0)
}

func TestViolations(t *testing.T) {
	cfg := peer.DefaultConfig()
	cfg.AckDelay = 5
	p, _ := megacdtest.BringUp(t, cfg)

	p.Write8(addresses.CommandPort, uint8(addresses.OpClear))
	test.ExpectEquality(t, p.Violations(), 0)

	// the previous command has not been acknowledged
	p.Write8(addresses.Args, 0x01)
	test.ExpectEquality(t, p.Violations(), 1)
	p.Write8(addresses.CommandPort, uint8(addresses.OpClear))
	test.ExpectEquality(t, p.Violations(), 2)
}

func TestAcknowledge(t *testing.T) {
	cfg := peer.DefaultConfig()
	cfg.AckDelay = 3
	p, _ := megacdtest.BringUp(t, cfg)
	p.ClearTrace()

	p.Write8(addresses.CommandPort, uint8(addresses.OpClear))
	for i := 0; i < cfg.AckDelay; i++ {
		test.ExpectEquality(t, p.Read8(addresses.StatusPort), addresses.PeerIdle, i)
	}
	test.ExpectEquality(t, p.Read8(addresses.StatusPort), uint8(addresses.OpClear))
	test.ExpectEquality(t, len(p.Trace()), 1)

	p.Write8(addresses.CommandPort, 0x00)
	test.ExpectEquality(t, p.Read8(addresses.StatusPort), addresses.PeerIdle)
	test.ExpectEquality(t, p.Violations(), 0)
}

func TestNeverLive(t *testing.T) {
	cfg := peer.DefaultConfig()
	cfg.NeverLive = true
	p := peer.NewPeer(cfg)
	for i := 0; i < 1000; i++ {
		test.DemandEquality(t, p.Read8(addresses.StatusPort), addresses.PeerIdle)
	}
	test.ExpectEquality(t, p.Reads(addresses.StatusPort), 1000)
	p.ClearReads()
	test.ExpectEquality(t, p.Reads(addresses.StatusPort), 0)
}

func TestTick(t *testing.T) {
	p, l := megacdtest.BringUp(t, peer.DefaultConfig())
	d := driver.NewDriver(l)
	test.DemandSuccess(t, d.UploadBuffer(1, make([]byte, 100)))

	id, err := d.PlaySource(driver.PlayParams{Source: 1, Buffer: 1, Autoloop: true})
	test.DemandSuccess(t, err)
	test.DemandEquality(t, id, driver.SourceID(1))

	p.Tick(150)
	test.ExpectSuccess(t, p.Sources()[0].Playing)
	test.ExpectEquality(t, p.Sources()[0].Position, 50)

	// a suspended mixer does not advance
	test.DemandSuccess(t, d.SuspendMixer(true))
	p.Tick(10)
	test.ExpectEquality(t, p.Sources()[0].Position, 50)
	test.DemandSuccess(t, d.SuspendMixer(false))

	test.DemandSuccess(t, d.UpdateSource(driver.UpdateParams{Source: 1}))
	p.Tick(60)
	test.ExpectFailure(t, p.Sources()[0].Playing)
	test.ExpectEquality(t, p.Sources()[0].Position, 0)
	test.ExpectEquality(t, d.PlaybackStatus(), uint8(0x00))
}

func TestMemviz(t *testing.T) {
	p, l := megacdtest.BringUp(t, peer.DefaultConfig())
	d := driver.NewDriver(l)
	test.DemandSuccess(t, d.UploadBuffer(1, make([]byte, 100)))

	w := &strings.Builder{}
	p.Memviz(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "digraph"))
	test.ExpectEquality(t, p.PoolUsed(), 100)
}
