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

package driver

import (
	"fmt"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/link"
)

// InvalidArgument is the sentinal error pattern for arguments that are out of
// range.
const InvalidArgument = "driver: invalid argument: %s"

func invalid(format string, args ...any) error {
	return curated.Errorf(InvalidArgument, fmt.Sprintf(format, args...))
}

func checkSource(id SourceID, allowAny bool) error {
	if id.Allocated() || (allowAny && id == AnySource) {
		return nil
	}
	return invalid("source %d", id)
}

func checkBuffer(id BufferID) error {
	if id < MinBuffer || id > MaxBuffer {
		return invalid("buffer %d", id)
	}
	return nil
}

func checkFreq(freq uint16) error {
	if freq > MaxFreq {
		return invalid("frequency %d", freq)
	}
	return nil
}

func flag(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// PlayCommand returns the command to play a buffer on a source.
func PlayCommand(p PlayParams) (link.Command, error) {
	if err := checkSource(p.Source, true); err != nil {
		return link.Command{}, err
	}
	if err := checkBuffer(p.Buffer); err != nil {
		return link.Command{}, err
	}
	if err := checkFreq(p.Freq); err != nil {
		return link.Command{}, err
	}
	return link.NewCommand(addresses.OpPlaySource,
		uint16(p.Source), uint16(p.Buffer), p.Freq, uint16(p.Pan), uint16(p.Vol), flag(p.Autoloop)), nil
}

// UpdateCommand returns the command to change the parameters of a source.
func UpdateCommand(p UpdateParams) (link.Command, error) {
	if err := checkSource(p.Source, true); err != nil {
		return link.Command{}, err
	}
	if err := checkFreq(p.Freq); err != nil {
		return link.Command{}, err
	}
	return link.NewCommand(addresses.OpUpdate,
		uint16(p.Source), p.Freq, uint16(p.Pan), uint16(p.Vol), flag(p.Autoloop)), nil
}

// StopCommand returns the command to stop a source.
func StopCommand(id SourceID) (link.Command, error) {
	if err := checkSource(id, false); err != nil {
		return link.Command{}, err
	}
	return link.NewCommand(addresses.OpStop, uint16(id)), nil
}

// ClearCommand returns the command to stop all sources.
func ClearCommand() link.Command {
	return link.NewCommand(addresses.OpClear)
}

// SuspendCommand returns the command to suspend or resume the mixer.
func SuspendCommand(suspend bool) link.Command {
	return link.NewCommand(addresses.OpSuspend, flag(suspend))
}
