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

package console_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/mode1pcm/console"
	"github.com/jetsetilly/mode1pcm/console/easyterm"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/megacdtest"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/peer"
	"github.com/jetsetilly/mode1pcm/test"
)

func player(t *testing.T) (*peer.Peer, *console.Player) {
	t.Helper()

	p, l := megacdtest.BringUp(t, peer.DefaultConfig())
	d := driver.NewDriver(l)
	test.DemandSuccess(t, d.Init())
	for i := 1; i <= 3; i++ {
		test.DemandSuccess(t, d.UploadBuffer(driver.BufferID(i), make([]byte, 1000)))
	}

	return p, console.NewPlayer(megacdtest.Environment(t), d)
}

func keys(t *testing.T, pl *console.Player, ks ...easyterm.Key) {
	t.Helper()
	for _, k := range ks {
		cont, err := pl.Key(k)
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, cont)
	}
}

func TestPlay(t *testing.T) {
	p, pl := player(t)

	keys(t, pl, 'b')
	test.ExpectEquality(t, pl.Last, driver.SourceID(2))
	test.ExpectSuccess(t, p.Sources()[1].Playing)
	test.ExpectEquality(t, p.Sources()[1].Buffer, uint16(2))

	// a free source is allocated
	keys(t, pl, 'X')
	test.ExpectEquality(t, pl.Last, driver.SourceID(1))
	test.ExpectEquality(t, p.Sources()[0].Buffer, uint16(1))

	keys(t, pl, 'm')
	test.ExpectEquality(t, pl.Last, driver.SourceID(1))
	test.ExpectFailure(t, p.Sources()[0].Playing)
	test.ExpectFailure(t, p.Sources()[1].Playing)
	test.ExpectEquality(t, p.Violations(), 0)
}

func TestPanAndVolume(t *testing.T) {
	p, pl := player(t)

	keys(t, pl, 'a', easyterm.KeyLeft, easyterm.KeyLeft, easyterm.KeyDown)
	test.ExpectEquality(t, pl.Pan, uint8(driver.PanCentre-16))
	test.ExpectEquality(t, pl.Vol, uint8(255-8))

	// the last source follows the settings
	test.ExpectEquality(t, p.Sources()[0].Pan, pl.Pan)
	test.ExpectEquality(t, p.Sources()[0].Vol, pl.Vol)

	for i := 0; i < 40; i++ {
		keys(t, pl, easyterm.KeyRight, easyterm.KeyUp)
	}
	test.ExpectEquality(t, pl.Pan, uint8(driver.PanRight))
	test.ExpectEquality(t, pl.Vol, uint8(255))

	for i := 0; i < 40; i++ {
		keys(t, pl, easyterm.KeyLeft, easyterm.KeyDown)
	}
	test.ExpectEquality(t, pl.Pan, uint8(driver.PanLeft))
	test.ExpectEquality(t, pl.Vol, uint8(0))
}

func TestPause(t *testing.T) {
	p, pl := player(t)

	// pausing with no source is ignored
	keys(t, pl, ' ')

	keys(t, pl, 'c', ' ')
	test.ExpectSuccess(t, p.Sources()[2].Paused)
	keys(t, pl, ' ')
	test.ExpectFailure(t, p.Sources()[2].Paused)
}

func TestDeferred(t *testing.T) {
	p, pl := player(t)
	p.ClearTrace()

	keys(t, pl, 'd', 'a', 'b')
	test.ExpectSuccess(t, pl.Deferred)
	test.ExpectEquality(t, len(p.Trace()), 0)

	// two plays and an update following each play
	test.ExpectEquality(t, pl.Queue().Len(), 4)

	keys(t, pl, 'f')
	test.ExpectEquality(t, pl.Queue().Len(), 0)
	test.ExpectSuccess(t, p.Sources()[0].Playing)
	test.ExpectSuccess(t, p.Sources()[1].Playing)
	test.ExpectEquality(t, len(p.Trace()), 6)
}

func TestQuit(t *testing.T) {
	_, pl := player(t)
	cont, err := pl.Key('q')
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, cont)

	cont, err = pl.Key(easyterm.KeyInterrupt)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, cont)
}

func TestStatus(t *testing.T) {
	_, pl := player(t)
	keys(t, pl, 'a')

	w := &test.CompareWriter{}
	test.DemandSuccess(t, pl.Status(w))
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "Last Source: 1\nPosition:    0000\nPanning:     128\nVolume:      255\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "Playing:     00000001\n"))

	w.Clear()
	test.DemandSuccess(t, pl.Histogram(w, 40))
	test.ExpectInequality(t, w.String(), "no commands executed\n")
}
