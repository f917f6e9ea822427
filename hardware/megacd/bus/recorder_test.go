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

package bus_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bus"
	"github.com/jetsetilly/mode1pcm/test"
)

// flat is a minimal Bus implementation covering the gate array registers.
type flat [0x40]byte

func (f *flat) Read8(a uint32) uint8 { return f[a-0xa12000] }
func (f *flat) Read16(a uint32) uint16 { return binary.BigEndian.Uint16(f[a-0xa12000:]) }
func (f *flat) Read32(a uint32) uint32 { return binary.BigEndian.Uint32(f[a-0xa12000:]) }
func (f *flat) Write8(a uint32, d uint8) { f[a-0xa12000] = d }
func (f *flat) Write16(a uint32, d uint16) { binary.BigEndian.PutUint16(f[a-0xa12000:], d) }
func (f *flat) Write32(a uint32, d uint32) { binary.BigEndian.PutUint32(f[a-0xa12000:], d) }
func (f *flat) ReadBlock(a uint32, d []byte) { copy(d, f[a-0xa12000:]) }
func (f *flat) WriteBlock(a uint32, d []byte) { copy(f[a-0xa12000:], d) }

func TestRecorder(t *testing.T) {
	r := bus.NewRecorder(&flat{})

	r.Write32(addresses.Args, 0x00010002)
	r.Write8(addresses.CommandPort, 'A')
	test.ExpectEquality(t, r.Read16(addresses.Args+2), uint16(0x0002))
	r.WriteBlock(addresses.Results, []byte{1, 2, 3})

	test.ExpectEquality(t, len(r.Record), 4)
	test.ExpectEquality(t, len(r.Writes()), 3)
	test.ExpectEquality(t, r.String(), "W32 ARG0=00010002\n"+
		"W8 COMMIN=41\n"+
		"R16 ARG1=0002\n"+
		"W0 RES0=3\n")

	r.Clear()
	test.ExpectEquality(t, len(r.Record), 0)
}

func TestRecorderRange(t *testing.T) {
	r := bus.NewRecorder(&flat{})
	r.From = addresses.CommandPort
	r.To = addresses.StatusPort

	r.Write32(addresses.Args, 0x00010002)
	r.Write8(addresses.CommandPort, 'A')
	r.Read8(addresses.StatusPort)

	test.ExpectEquality(t, len(r.Record), 2)
	test.ExpectEquality(t, r.Record[0].Address, addresses.CommandPort)
	test.ExpectEquality(t, r.Record[1].Address, addresses.StatusPort)
}
