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
	"fmt"
	"strings"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
)

// Command is a single request to the peer. The meaning of the arguments
// depends on the opcode. Values wider than 16 bits occupy two arguments, the
// high word first.
type Command struct {
	Opcode addresses.Opcode
	Args   [6]uint16
}

// NewCommand is a convenience function for creating a Command.
func NewCommand(op addresses.Opcode, args ...uint16) Command {
	c := Command{Opcode: op}
	copy(c.Args[:], args)
	return c
}

func (c Command) String() string {
	n := c.numArgs()
	if n == 0 {
		return fmt.Sprintf("%c %s", c.Opcode, c.Opcode)
	}
	a := make([]string, n)
	for i := range a {
		a[i] = fmt.Sprintf("%d", c.Args[i])
	}
	return fmt.Sprintf("%c %s(%s)", c.Opcode, c.Opcode, strings.Join(a, ", "))
}

// number of arguments used by the opcode
func (c Command) numArgs() int {
	switch c.Opcode {
	case addresses.OpPlaySource:
		return 6
	case addresses.OpUpdate, addresses.OpUpload:
		return 5
	case addresses.OpUploadSegs, addresses.OpPlaySPCM:
		return 4
	case addresses.OpPause, addresses.OpOpenFile, addresses.OpPlayTrack:
		return 2
	case addresses.OpStop, addresses.OpRewind, addresses.OpPosition,
		addresses.OpTrackInfo, addresses.OpTrackVolume, addresses.OpSuspend:
		return 1
	}
	return 0
}

// RegisterWrite is a single write to an argument register.
type RegisterWrite struct {
	Address uint32

	// size of write in bytes: 1, 2 or 4
	Size int
	Data uint32
}

func (w RegisterWrite) String() string {
	return fmt.Sprintf("%s=%0*x", addresses.Symbol(w.Address), w.Size*2, w.Data)
}

func byteWrite(offset uint32, v uint16) RegisterWrite {
	return RegisterWrite{Address: addresses.Args + offset, Size: 1, Data: uint32(v & 0xff)}
}

func wordWrite(offset uint32, v uint16) RegisterWrite {
	return RegisterWrite{Address: addresses.Args + offset, Size: 2, Data: uint32(v)}
}

func longWrite(offset uint32, hi uint16, lo uint16) RegisterWrite {
	return RegisterWrite{Address: addresses.Args + offset, Size: 4, Data: uint32(hi)<<16 | uint32(lo)}
}

// Encode returns the argument register writes for the command. This is the
// wire format expected by the PCM driver and the order of the writes is the
// order they are made.
func (c Command) Encode() []RegisterWrite {
	a := c.Args

	switch c.Opcode {
	case addresses.OpPlaySource:
		// source, buffer, frequency, pan, volume, autoloop
		return []RegisterWrite{
			longWrite(0x00, a[0], a[1]),
			longWrite(0x04, a[2], a[3]),
			longWrite(0x08, a[4], a[5]),
		}

	case addresses.OpUpdate:
		// source, frequency, pan, volume, autoloop
		return []RegisterWrite{
			longWrite(0x00, a[0], 0),
			longWrite(0x04, a[1], a[2]),
			longWrite(0x08, a[3], a[4]),
		}

	case addresses.OpPause:
		// source, paused
		return []RegisterWrite{longWrite(0x00, a[0], a[1])}

	case addresses.OpStop, addresses.OpRewind, addresses.OpPosition:
		// source
		return []RegisterWrite{longWrite(0x00, a[0], 0)}

	case addresses.OpUpload:
		// buffer, word RAM address, length
		return []RegisterWrite{
			wordWrite(0x00, a[0]),
			longWrite(0x04, a[1], a[2]),
			longWrite(0x08, a[3], a[4]),
		}

	case addresses.OpUploadSegs:
		// buffer, count, word RAM address
		return []RegisterWrite{
			wordWrite(0x00, a[0]),
			wordWrite(0x02, a[1]),
			longWrite(0x04, a[2], a[3]),
		}

	case addresses.OpOpenFile:
		// word RAM address
		return []RegisterWrite{longWrite(0x00, a[0], a[1])}

	case addresses.OpTrackInfo, addresses.OpTrackVolume:
		// track or volume
		return []RegisterWrite{wordWrite(0x00, a[0])}

	case addresses.OpPlayTrack:
		// track, repeat
		return []RegisterWrite{
			wordWrite(0x00, a[0]),
			byteWrite(0x02, a[1]),
		}

	case addresses.OpPlaySPCM:
		// word RAM address, repeat
		return []RegisterWrite{
			longWrite(0x00, a[0], a[1]),
			longWrite(0x04, a[2], a[3]),
		}

	case addresses.OpSuspend:
		// 1 to suspend, 0 to resume
		return []RegisterWrite{byteWrite(0x00, a[0])}
	}

	return nil
}
