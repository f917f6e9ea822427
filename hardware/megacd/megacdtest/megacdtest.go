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

// Package megacdtest contains helper functions for tests that need a link to
// a simulated peer.
package megacdtest

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/mode1pcm/environment"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bios"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/link"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/peer"
	"github.com/jetsetilly/mode1pcm/hardware/preferences"
	"github.com/jetsetilly/mode1pcm/test"
)

// Environment returns an environment with default preferences that are not
// loaded from or saved to the user's preferences file. Logging is disabled.
func Environment(t *testing.T) *environment.Environment {
	t.Helper()

	prefs, err := preferences.NewPreferencesFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	env, err := environment.NewEnvironment("test", prefs)
	test.DemandSuccess(t, err)
	env.Quiet = true

	return env
}

// Program is the driver program copied to program RAM by BringUp().
var Program = []byte("MODE1PCM DRIVER")

// BringUp creates a simulated peer and a link to it. The test fails
// immediately if the link does not come up.
func BringUp(t *testing.T, cfg peer.Config) (*peer.Peer, *link.Link) {
	t.Helper()

	env := Environment(t)
	p := peer.NewPeer(cfg)

	boot, err := bios.NewLoader(env, Program)
	test.DemandSuccess(t, err)

	l, err := link.BringUp(env, p, boot)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, l.Ready(), true)

	return p, l
}
