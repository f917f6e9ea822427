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

package script_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/megacdtest"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/peer"
	"github.com/jetsetilly/mode1pcm/script"
	"github.com/jetsetilly/mode1pcm/test"
	"github.com/jetsetilly/mode1pcm/wavwriter"
)

func newScript(t *testing.T) (*peer.Peer, *script.Script, *test.CompareWriter) {
	t.Helper()

	p, l := megacdtest.BringUp(t, peer.DefaultConfig())
	w := &test.CompareWriter{}
	s := script.NewScript(megacdtest.Environment(t), driver.NewDriver(l), p, w)
	t.Cleanup(s.Close)

	return p, s, w
}

func TestPlayback(t *testing.T) {
	p, s, w := newScript(t)

	err := s.RunString(`
		mcd.init()
		mcd.upload_bytes(1, string.rep("x", 100))
		local src = mcd.play(255, 1, 0, 128, 255, true)
		mcd.tick(30)
		print(src, mcd.position(src), mcd.status())
	`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w.String(), "1\t30\t1\n")
	test.ExpectSuccess(t, p.Sources()[0].Autoloop)
}

func TestQueue(t *testing.T) {
	p, s, w := newScript(t)

	err := s.RunString(`
		mcd.upload_bytes(5, "abcdef")
		print(queue.update(1, 8000), queue.stop(2), queue.play(3, 5))
		print(queue.len(), queue.cap())
		print(queue.flush())
	`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w.String(), "true\ttrue\ttrue\n3\t16\n3\n")
	test.ExpectSuccess(t, p.Sources()[2].Playing)
	test.ExpectEquality(t, s.Queue().Len(), 0)

	w.Clear()
	err = s.RunString(`
		for i = 1, 17 do
			last = queue.clear()
		end
		print(last, queue.len())
	`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w.String(), "false\t16\n")
}

func TestDisc(t *testing.T) {
	p, s, w := newScript(t)
	p.AddFile("MUSIC.PCM", make([]byte, 300))

	err := s.RunString(`
		local d = mcd.disc()
		print(d.status, d.first, d.last, d.version, d.flags)
		local t = mcd.track(1)
		print(t.track, t.data)
		print(mcd.open("MUSIC.PCM"))
		print(mcd.load("MISSING.PCM", 2))
		mcd.play_spcm("MUSIC.PCM", 2)
		print(mcd.spcm_status())
	`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w.String(), "256\t1\t10\t3\t6\n1\ttrue\n300\t0\nfalse\n1\n")
}

func TestDriverError(t *testing.T) {
	_, s, _ := newScript(t)

	err := s.RunString(`mcd.stop(9)`)
	test.ExpectSuccess(t, curated.Is(err, script.ScriptError))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "invalid argument"))
}

func TestRunFile(t *testing.T) {
	_, s, w := newScript(t)

	dir := t.TempDir()
	b := &bytes.Buffer{}
	test.DemandSuccess(t, wavwriter.Encode(b, make([]uint8, 64), 1, 11025))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "s.wav"), b.Bytes(), 0o600))

	lf := filepath.Join(dir, "test.lua")
	src := `print(mcd.upload(4, "` + filepath.ToSlash(filepath.Join(dir, "s.wav")) + `"))`
	test.DemandSuccess(t, os.WriteFile(lf, []byte(src), 0o600))

	test.ExpectSuccess(t, s.RunFile(lf))
	test.ExpectEquality(t, w.String(), "11025\n")

	err := s.RunFile(filepath.Join(dir, "missing.lua"))
	test.ExpectSuccess(t, curated.Is(err, script.ScriptError))
}
