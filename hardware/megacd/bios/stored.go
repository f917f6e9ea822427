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

package bios

import (
	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bus"
)

// DefaultStoredLength is the amount of program RAM that is write protected
// once the peer is running.
const DefaultStoredLength = 0x5400

// Stored is a Decompressor for uncompressed BIOS images. Length bytes are
// copied from the source to the destination.
type Stored struct {
	Length uint32
}

// Decompress implements the Decompressor interface.
func (s Stored) Decompress(b bus.Bus, src uint32, dst uint32) (int, error) {
	if s.Length == 0 || s.Length > addresses.DriverProgram-addresses.ProgramRAM {
		return 0, curated.Errorf("stored: illegal length (%d)", s.Length)
	}

	data := make([]byte, s.Length)
	b.ReadBlock(src, data)
	b.WriteBlock(dst, data)

	return len(data), nil
}
