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

// Package environment provides the context for a connection to a peer. It
// collates the preferences and a label that identifies the connection in the
// log.
package environment

import (
	"github.com/jetsetilly/mode1pcm/hardware/preferences"
)

// Label is used to name the environment.
type Label string

// MainLabel is the label of the main connection.
const MainLabel = Label("")

// Environment is used to provide context for a link. Particularly useful
// when more than one link is active, for example a simulated peer and a real
// peer side by side.
type Environment struct {
	Label Label

	// the link preferences
	Prefs *preferences.Preferences

	// suppress log entries made with this environment as the permission
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type. If prefs is nil then a new Preferences instance is created from the
// default preferences file.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{Label: label}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}
	env.Prefs = prefs

	return env, nil
}

// Normalise reverts the preferences to their default values. Useful for
// testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.Quiet
}

// IsMain returns true if the environment is for the main link.
func (env *Environment) IsMain() bool {
	return env.Label == MainLabel
}

// Tag returns a log tag that includes the environment label.
func (env *Environment) Tag(tag string) string {
	if env.IsMain() {
		return tag
	}
	return string(env.Label) + ": " + tag
}
