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

// Package bios prepares the peer for running the PCM driver. It locates the
// BIOS in the peer's ROM, decompresses it into program RAM and copies the
// driver program after it.
//
// The decompression of the BIOS is delegated to an implementation of the
// Decompressor interface. The Stored type is a decompressor for BIOS images
// that are not compressed.
package bios

import (
	"bytes"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bus"
	"github.com/jetsetilly/mode1pcm/logger"
)

// Sentinal error patterns.
const (
	PeerAbsent    = "bios: no peer found"
	ProgramVerify = "bios: program verify failed at %#06x"
	ProgramSize   = "bios: driver program too large (%d bytes)"
	Decompression = "bios: decompression: %v"
)

// Decompressor implementations copy the BIOS from src to dst, decompressing
// it as required. Returns the number of bytes written to dst.
type Decompressor interface {
	Decompress(b bus.Bus, src uint32, dst uint32) (int, error)
}

// maximum size of the driver program
const maxProgram = addresses.ProgramRAM + addresses.ProgramRAMLength - addresses.DriverProgram

// Loader implements the boot image collaborator required by the link
// bring-up sequence.
type Loader struct {
	perm logger.Permission

	// the driver program copied to program RAM. a nil program is not copied
	Program []byte

	Decompressor Decompressor
}

// NewLoader is the preferred method of initialisation for the Loader type. The
// Stored decompressor is used by default.
func NewLoader(perm logger.Permission, program []byte) (*Loader, error) {
	if uint32(len(program)) > maxProgram {
		return nil, curated.Errorf(ProgramSize, len(program))
	}
	return &Loader{
		perm:         perm,
		Program:      program,
		Decompressor: Stored{Length: DefaultStoredLength},
	}, nil
}

// Locate probes the candidate BIOS locations for a valid signature. Returns the
// location of the BIOS or the PeerAbsent error.
func (l *Loader) Locate(b bus.Bus) (uint32, error) {
	sig := make([]byte, len(addresses.WonderSignature))

	for i, c := range addresses.BIOSCandidates {
		b.ReadBlock(c+addresses.SignatureOffset, sig)
		if bytes.HasPrefix(sig, []byte(addresses.Signature)) {
			logger.Logf(l.perm, "bios", "found at %#06x", c)
			return c, nil
		}

		// WonderMega and X'Eye are only found at the second candidate
		if i == 1 && bytes.Equal(sig, []byte(addresses.WonderSignature)) {
			logger.Logf(l.perm, "bios", "found WonderMega/X'Eye at %#06x", c)
			return c, nil
		}
	}

	return 0, curated.Errorf(PeerAbsent)
}

// Load decompresses the BIOS at the location returned by Locate() into program
// RAM and then copies the driver program. The driver program is read back and
// verified.
//
// The bus must have been granted to the host before calling Load().
func (l *Loader) Load(b bus.Bus, location uint32) error {
	n, err := l.Decompressor.Decompress(b, location, addresses.ProgramRAM)
	if err != nil {
		return curated.Errorf(Decompression, err)
	}
	logger.Logf(l.perm, "bios", "decompressed %d bytes to program RAM", n)

	if l.Program == nil {
		logger.Log(l.perm, "bios", "no driver program to copy")
		return nil
	}

	b.WriteBlock(addresses.DriverProgram, l.Program)

	verify := make([]byte, len(l.Program))
	b.ReadBlock(addresses.DriverProgram, verify)
	for i := range verify {
		if verify[i] != l.Program[i] {
			return curated.Errorf(ProgramVerify, addresses.DriverProgram+uint32(i))
		}
	}

	logger.Logf(l.perm, "bios", "driver program copied (%d bytes)", len(l.Program))

	return nil
}

// StartInterrupts raises the level 2 interrupt on the peer. The peer's BIOS
// needs these in order to run. The host normally raises the interrupt once
// every vertical blank.
func (l *Loader) StartInterrupts(b bus.Bus) {
	v := b.Read16(addresses.InterruptControl)
	b.Write16(addresses.InterruptControl, v|addresses.Level2Interrupt)
}
