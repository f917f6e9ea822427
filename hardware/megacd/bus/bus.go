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

// Package bus defines how the host accesses the registers and memory of the
// Mega CD. All multi-byte values are big-endian, as they are on the 68000.
//
// Bus implementations do not return errors. On real hardware a register
// access can not fail and an implementation that can fail (for example, a
// bridge to remote hardware) must record the error and make it available by
// some other means.
package bus

// Bus is the register link between host and peer.
type Bus interface {
	Read8(address uint32) uint8
	Read16(address uint32) uint16
	Read32(address uint32) uint32
	Write8(address uint32, data uint8)
	Write16(address uint32, data uint16)
	Write32(address uint32, data uint32)

	// ReadBlock fills data with the memory starting at address
	ReadBlock(address uint32, data []byte)

	// WriteBlock copies data to memory starting at address
	WriteBlock(address uint32, data []byte)
}
