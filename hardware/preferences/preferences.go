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

// Package preferences collates the preference values used by the link with
// the peer. The values are persisted with the prefs package.
package preferences

import (
	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/prefs"
	"github.com/jetsetilly/mode1pcm/resources"
)

// Default values for the preferences.
const (
	DefaultLivenessThreshold = 2000000
	DefaultPollDelay         = 5
	DefaultQueueCapacity     = 16
	DefaultBridgeBaud        = 115200
)

// Preferences defines the preference values used by the hardware packages.
type Preferences struct {
	dsk *prefs.Disk

	// number of reads of the status port before bring-up gives up waiting for
	// the peer to report that it is alive
	LivenessThreshold prefs.Int

	// length of the spin delay between reads of the status port
	PollDelay prefs.Int

	// log every command exchange with the peer
	LogExchanges prefs.Bool

	// number of commands the deferred queue can hold
	QueueCapacity prefs.Int

	// serial port and baud rate for the register bridge
	BridgePort prefs.String
	BridgeBaud prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values are loaded from the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	return NewPreferencesFile(pth)
}

// NewPreferencesFile creates a Preferences instance backed by the named file.
// A missing file is not an error.
func NewPreferencesFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	// values that make no sense are reset to their default
	p.LivenessThreshold.SetHookPost(minimumHook(&p.LivenessThreshold, 1, DefaultLivenessThreshold))
	p.PollDelay.SetHookPost(minimumHook(&p.PollDelay, 0, DefaultPollDelay))
	p.QueueCapacity.SetHookPost(minimumHook(&p.QueueCapacity, 1, DefaultQueueCapacity))
	p.BridgeBaud.SetHookPost(minimumHook(&p.BridgeBaud, 1, DefaultBridgeBaud))
	p.BridgePort.SetMaxLen(256)

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	add := []struct {
		key string
		v   prefs.Value
	}{
		{"hardware.link.livenessThreshold", &p.LivenessThreshold},
		{"hardware.link.pollDelay", &p.PollDelay},
		{"hardware.link.logExchanges", &p.LogExchanges},
		{"hardware.queue.capacity", &p.QueueCapacity},
		{"hardware.bridge.port", &p.BridgePort},
		{"hardware.bridge.baud", &p.BridgeBaud},
	}
	for _, a := range add {
		var err error
		switch v := a.v.(type) {
		case *prefs.Bool:
			err = p.dsk.Add(a.key, v)
		case *prefs.Int:
			err = p.dsk.Add(a.key, v)
		case *prefs.String:
			err = p.dsk.Add(a.key, v)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

func minimumHook(v *prefs.Int, min int, def int) func(prefs.Value) error {
	return func(nv prefs.Value) error {
		if nv.(int) < min {
			return v.Set(def)
		}
		return nil
	}
}

// SetDefaults reverts all preferences to their default value.
func (p *Preferences) SetDefaults() {
	p.LivenessThreshold.Set(DefaultLivenessThreshold)
	p.PollDelay.Set(DefaultPollDelay)
	p.LogExchanges.Set(true)
	p.QueueCapacity.Set(DefaultQueueCapacity)
	p.BridgePort.Set("")
	p.BridgeBaud.Set(DefaultBridgeBaud)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Liveness returns the liveness threshold as an int.
func (p *Preferences) Liveness() int {
	return p.LivenessThreshold.Get().(int)
}

// Delay returns the poll delay as an int.
func (p *Preferences) Delay() int {
	return p.PollDelay.Get().(int)
}

// Capacity returns the queue capacity as an int.
func (p *Preferences) Capacity() int {
	return p.QueueCapacity.Get().(int)
}
