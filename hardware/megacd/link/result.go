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
)

// Result of a command executed by the peer.
type Result struct {
	// the non-zero value of the status port that acknowledged the command
	Ack uint8

	// the result registers. only the number of words defined for the opcode
	// are read, the remainder are zero
	Words [4]uint16
}

func (r Result) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("ack=%#02x", r.Ack))
	for _, w := range r.Words {
		s.WriteString(fmt.Sprintf(" %04x", w))
	}
	return s.String()
}

// Long returns the 32 bit value held in the two result words starting at
// word i. Word i is the high word.
func (r Result) Long(i int) uint32 {
	return uint32(r.Words[i])<<16 | uint32(r.Words[i+1])
}

// High returns the high byte of result word i. This is the byte at the even
// address of the result register.
func (r Result) High(i int) uint8 {
	return uint8(r.Words[i] >> 8)
}

// Low returns the low byte of result word i.
func (r Result) Low(i int) uint8 {
	return uint8(r.Words[i])
}
