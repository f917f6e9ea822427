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

package link_test

import (
	"testing"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bios"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bus"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/link"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/megacdtest"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/peer"
	"github.com/jetsetilly/mode1pcm/test"
)

func TestBringUp(t *testing.T) {
	p, l := megacdtest.BringUp(t, peer.DefaultConfig())

	test.ExpectSuccess(t, p.Ready())
	test.ExpectEquality(t, p.Resets(), 1)
	test.ExpectEquality(t, l.CommIn(), uint8(0))
	test.ExpectEquality(t, l.CommOut(), uint8(0))

	// the driver program has been copied to program RAM
	prg := make([]byte, len(megacdtest.Program))
	p.ReadBlock(addresses.DriverProgram, prg)
	test.ExpectEquality(t, string(prg), string(megacdtest.Program))

	// and so has the BIOS
	rom := p.ROM(addresses.BIOSCandidates[0], 16)
	ram := make([]byte, 16)
	p.ReadBlock(addresses.ProgramRAM, ram)
	test.ExpectEquality(t, string(ram), string(rom))
}

func TestBringUpWonderMega(t *testing.T) {
	cfg := peer.DefaultConfig()
	cfg.WonderMega = true
	megacdtest.BringUp(t, cfg)
}

func TestBringUpAbsent(t *testing.T) {
	env := megacdtest.Environment(t)
	cfg := peer.DefaultConfig()
	cfg.Absent = true
	p := peer.NewPeer(cfg)

	boot, err := bios.NewLoader(env, nil)
	test.DemandSuccess(t, err)

	l, err := link.BringUp(env, p, boot)
	test.ExpectSuccess(t, curated.Is(err, bios.PeerAbsent))
	test.ExpectFailure(t, l.Ready())

	// gate array was never touched
	test.ExpectEquality(t, p.Resets(), 0)
}

func TestLivenessTimeout(t *testing.T) {
	env := megacdtest.Environment(t)
	test.DemandSuccess(t, env.Prefs.LivenessThreshold.Set(5000))

	cfg := peer.DefaultConfig()
	cfg.NeverLive = true
	p := peer.NewPeer(cfg)

	boot, err := bios.NewLoader(env, nil)
	test.DemandSuccess(t, err)

	l, err := link.BringUp(env, p, boot)
	test.ExpectSuccess(t, curated.Is(err, link.BringUpTimeout))
	test.ExpectFailure(t, l.Ready())
	test.ExpectEquality(t, p.Reads(addresses.StatusPort), 5000)
	test.ExpectEquality(t, l.Stats().LivenessPolls, 5000)

	// a link that failed to come up can not be used
	_, err = l.Execute(link.NewCommand(addresses.OpClear))
	test.ExpectSuccess(t, curated.Is(err, link.NotReady))
	test.ExpectEquality(t, p.Reads(addresses.StatusPort), 5000)

	// and can not be brought up again
	test.ExpectSuccess(t, curated.Is(l.BringUp(boot), link.BringUpRefused))
}

func TestLivenessWithinThreshold(t *testing.T) {
	env := megacdtest.Environment(t)
	test.DemandSuccess(t, env.Prefs.LivenessThreshold.Set(101))

	// the peer is alive on the 101st read
	cfg := peer.DefaultConfig()
	cfg.LiveDelay = 100
	p := peer.NewPeer(cfg)

	boot, err := bios.NewLoader(env, nil)
	test.DemandSuccess(t, err)

	l, err := link.BringUp(env, p, boot)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, l.Ready())
	test.ExpectEquality(t, l.Stats().LivenessPolls, 101)
}

func TestNotReady(t *testing.T) {
	env := megacdtest.Environment(t)
	p := peer.NewPeer(peer.DefaultConfig())
	r := bus.NewRecorder(p)
	l := link.NewLink(env, r)

	test.ExpectFailure(t, l.Ready())
	_, err := l.Execute(link.NewCommand(addresses.OpInit))
	test.ExpectSuccess(t, curated.Is(err, link.NotReady))
	test.ExpectEquality(t, len(r.Record), 0)
}

func TestBringUpRefused(t *testing.T) {
	p, l := megacdtest.BringUp(t, peer.DefaultConfig())
	boot, err := bios.NewLoader(megacdtest.Environment(t), nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(l.BringUp(boot), link.BringUpRefused))

	// the refused attempt did not reset the peer
	test.ExpectEquality(t, p.Resets(), 1)
	test.ExpectSuccess(t, l.Ready())
}

func TestExecuteCompletion(t *testing.T) {
	cfg := peer.DefaultConfig()
	cfg.AckDelay = 20
	p, l := megacdtest.BringUp(t, cfg)

	for _, op := range []addresses.Opcode{
		addresses.OpInit, addresses.OpClear, addresses.OpDiscInfo,
		addresses.OpStopTrack, addresses.OpPauseTrack, addresses.OpStopSPCM,
	} {
		res, err := l.Execute(link.NewCommand(op))
		test.ExpectSuccess(t, err, op)
		test.ExpectEquality(t, res.Ack, uint8(op), op)

		// both ports are idle after completion
		test.ExpectEquality(t, l.CommIn(), uint8(0), op)
		test.ExpectEquality(t, l.CommOut(), uint8(0), op)
	}

	test.ExpectEquality(t, p.Violations(), 0)

	s := l.Stats()
	test.ExpectEquality(t, s.Commands, 6)
	test.ExpectEquality(t, s.Opcodes['D'], 1)
	test.ExpectEquality(t, len(s.AckPolls), 6)
	test.ExpectEquality(t, s.AckPolls[0], 21)
	test.ExpectInequality(t, s.Histogram(4), nil)
}

func TestExecuteSequence(t *testing.T) {
	cfg := peer.DefaultConfig()
	cfg.AckDelay = 0
	p, l := megacdtest.BringUp(t, cfg)

	for i := 0; i < 100; i++ {
		_, err := l.Execute(link.NewCommand(addresses.OpPosition, 1))
		test.ExpectSuccess(t, err)
	}
	test.ExpectEquality(t, p.Violations(), 0)
	test.ExpectEquality(t, len(p.Trace()), 100)
}

func TestExecuteRegisterOrder(t *testing.T) {
	p, _ := megacdtest.BringUp(t, peer.DefaultConfig())

	// replace the bus with a recorder by bringing up a second link on the
	// same peer
	r := bus.NewRecorder(p)
	r.From = addresses.CommandPort
	r.To = addresses.ResultsEnd

	env := megacdtest.Environment(t)
	boot, err := bios.NewLoader(env, nil)
	test.DemandSuccess(t, err)
	l, err := link.BringUp(env, r, boot)
	test.DemandSuccess(t, err)

	r.Clear()
	_, err = l.Execute(link.NewCommand(addresses.OpTrackInfo, 2))
	test.DemandSuccess(t, err)

	w := r.Writes()
	test.DemandEquality(t, len(w), 3)
	test.ExpectEquality(t, w[0].String(), "W16 ARG0=0002")
	test.ExpectEquality(t, w[1].String(), "W8 COMMIN=54")
	test.ExpectEquality(t, w[2].String(), "W8 COMMIN=00")

	// the first access is the read of the status port and the results are
	// read before completion
	test.ExpectEquality(t, r.Record[0].Address, addresses.StatusPort)
	test.ExpectEquality(t, r.Record[0].Write, false)
	last := r.Record[len(r.Record)-2]
	test.ExpectEquality(t, last.Address, addresses.Results+4)
	test.ExpectEquality(t, last.Write, false)
}

func TestUnknownOpcode(t *testing.T) {
	_, l := megacdtest.BringUp(t, peer.DefaultConfig())
	_, err := l.Execute(link.NewCommand('Y'))
	test.ExpectSuccess(t, curated.Is(err, link.UnknownOpcode))
}
