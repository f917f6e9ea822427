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

package addresses

import "fmt"

// Gate array registers.
const (
	// writing bit 8 raises a level 2 interrupt on the peer
	InterruptControl = uint32(0xa12000)

	// bit 1 is bus request (write) and bus acknowledge (read). bit 0 is the
	// peer reset line (write) and the peer running flag (read)
	ResetControl = uint32(0xa12001)

	// write protection, bank and word RAM mode
	MemoryMode = uint32(0xa12002)

	// CommandPort is written by the host and read by the peer
	CommandPort = uint32(0xa1200e)

	// StatusPort is written by the peer and read by the host
	StatusPort = uint32(0xa1200f)

	// argument registers written by the host before issuing a command
	Args    = uint32(0xa12010)
	ArgsEnd = uint32(0xa1201f)

	// result registers written by the peer before acknowledging a command
	Results    = uint32(0xa12020)
	ResultsEnd = uint32(0xa1202d)

	// bitmask of playing SPCM tracks and PCM sources
	SPCMStatus   = uint32(0xa1202e)
	SourceStatus = uint32(0xa1202f)
)

// Bits of the ResetControl and InterruptControl registers.
const (
	Level2Interrupt = uint16(0x0100)

	ResetBusAck  = uint8(0x02)
	ResetRunning = uint8(0x01)
)

// Values written to the MemoryMode and ResetControl registers during bring-up.
const (
	GateArrayReset  = uint16(0xff00)
	NoWriteProtect  = uint16(0x0002)
	WriteProtect    = uint8(0x2a)
	BusRequest      = uint8(0x02)
	ReleaseBus      = uint8(0x01)
	GateArrayReset1 = uint8(0x03)
	GateArrayReset2 = uint8(0x02)
	GateArrayReset3 = uint8(0x00)
)

// Memory regions.
const (
	// BIOS ROM is mapped at 0x400000 when a cartridge is inserted
	BIOS = uint32(0x400000)

	ProgramRAM       = uint32(0x420000)
	ProgramRAMLength = uint32(0x20000)

	// the driver program is copied into program RAM at this address
	DriverProgram = uint32(0x426000)

	// WordRAM is the address of word RAM as seen by the host. PeerWordRAM is
	// the same memory as seen by the peer. Length is for 1M mode
	WordRAM       = uint32(0x600000)
	PeerWordRAM   = uint32(0x0c0000)
	WordRAMLength = uint32(0x20000)
)

// BIOSCandidates are the locations in the BIOS ROM that may contain a valid
// BIOS header. The signature is at SignatureOffset from the candidate.
var BIOSCandidates = []uint32{0x415800, 0x416000, 0x41ad00}

// SignatureOffset is the offset of the BIOS signature from the candidate
// location.
const SignatureOffset = uint32(0x6d)

// Signatures that identify a BIOS. The WonderMega/X'Eye signature is only
// found at the second candidate location.
const (
	Signature       = "SEGA"
	WonderSignature = "WONDER"
)

// Liveness values written to the StatusPort by the peer.
const (
	PeerAlive = uint8('I')
	PeerIdle  = uint8(0x00)
)

// CanonicalSymbols lists the gate array registers with their names. Used when
// logging and tracing register access.
var CanonicalSymbols = map[uint32]string{
	InterruptControl: "INTCTRL",
	ResetControl:     "RESET",
	MemoryMode:       "MEMMODE",
	CommandPort:      "COMMIN",
	StatusPort:       "COMMOUT",
	Args:             "ARG0",
	Args + 2:         "ARG1",
	Args + 4:         "ARG2",
	Args + 6:         "ARG3",
	Args + 8:         "ARG4",
	Args + 10:        "ARG5",
	Results:          "RES0",
	Results + 2:      "RES1",
	Results + 4:      "RES2",
	Results + 6:      "RES3",
	SPCMStatus:       "SPCMSTAT",
	SourceStatus:     "SRCSTAT",
}

// Symbol returns the canonical name for the address or the address formatted
// as a hex string.
func Symbol(address uint32) string {
	if s, ok := CanonicalSymbols[address]; ok {
		return s
	}
	return fmt.Sprintf("$%06x", address)
}
