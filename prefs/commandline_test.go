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

package prefs_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/mode1pcm/prefs"
	"github.com/jetsetilly/mode1pcm/test"
)

func TestCommandLineStack(t *testing.T) {
	// empty stack
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("foo::bar; baz::qux")
	ok, v := prefs.GetCommandLinePref("foo")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v.(string), "bar")

	// value is deleted once it has been retrieved
	ok, _ = prefs.GetCommandLinePref("foo")
	test.ExpectEquality(t, ok, false)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineOverridesDisk(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	var v prefs.Int
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, dsk.Add("hardware.queue.capacity", &v))
	test.ExpectSuccess(t, v.Set(16))
	test.ExpectSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("hardware.queue.capacity::32")
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, v.Get().(int), 32)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}
