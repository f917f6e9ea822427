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

package bus

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
)

// Access is a single register access recorded by the Recorder type.
type Access struct {
	Write   bool
	Address uint32
	Size    int
	Data    uint32
}

func (a Access) String() string {
	op := "R"
	if a.Write {
		op = "W"
	}
	return fmt.Sprintf("%s%d %s=%0*x", op, a.Size*8, addresses.Symbol(a.Address), a.Size*2, a.Data)
}

// Recorder wraps another Bus and records every register access made through
// it. Block accesses are recorded with a size of zero and the length of the
// block as the data.
type Recorder struct {
	bus    Bus
	Record []Access

	// only record accesses to addresses in the range [From, To]. if both
	// fields are zero then every access is recorded
	From uint32
	To   uint32
}

// NewRecorder is the preferred method of initialisation for the Recorder type.
func NewRecorder(bus Bus) *Recorder {
	return &Recorder{bus: bus}
}

func (r *Recorder) String() string {
	s := strings.Builder{}
	for _, a := range r.Record {
		s.WriteString(a.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Clear the record.
func (r *Recorder) Clear() {
	r.Record = r.Record[:0]
}

// Writes returns only the write accesses in the record.
func (r *Recorder) Writes() []Access {
	var w []Access
	for _, a := range r.Record {
		if a.Write {
			w = append(w, a)
		}
	}
	return w
}

func (r *Recorder) add(a Access) {
	if r.From == 0 && r.To == 0 || (a.Address >= r.From && a.Address <= r.To) {
		r.Record = append(r.Record, a)
	}
}

// Read8 implements the Bus interface.
func (r *Recorder) Read8(address uint32) uint8 {
	d := r.bus.Read8(address)
	r.add(Access{Address: address, Size: 1, Data: uint32(d)})
	return d
}

// Read16 implements the Bus interface.
func (r *Recorder) Read16(address uint32) uint16 {
	d := r.bus.Read16(address)
	r.add(Access{Address: address, Size: 2, Data: uint32(d)})
	return d
}

// Read32 implements the Bus interface.
func (r *Recorder) Read32(address uint32) uint32 {
	d := r.bus.Read32(address)
	r.add(Access{Address: address, Size: 4, Data: d})
	return d
}

// Write8 implements the Bus interface.
func (r *Recorder) Write8(address uint32, data uint8) {
	r.add(Access{Write: true, Address: address, Size: 1, Data: uint32(data)})
	r.bus.Write8(address, data)
}

// Write16 implements the Bus interface.
func (r *Recorder) Write16(address uint32, data uint16) {
	r.add(Access{Write: true, Address: address, Size: 2, Data: uint32(data)})
	r.bus.Write16(address, data)
}

// Write32 implements the Bus interface.
func (r *Recorder) Write32(address uint32, data uint32) {
	r.add(Access{Write: true, Address: address, Size: 4, Data: data})
	r.bus.Write32(address, data)
}

// ReadBlock implements the Bus interface.
func (r *Recorder) ReadBlock(address uint32, data []byte) {
	r.bus.ReadBlock(address, data)
	r.add(Access{Address: address, Data: uint32(len(data))})
}

// WriteBlock implements the Bus interface.
func (r *Recorder) WriteBlock(address uint32, data []byte) {
	r.add(Access{Write: true, Address: address, Data: uint32(len(data))})
	r.bus.WriteBlock(address, data)
}
