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

package bridge

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/bus"
)

const magic = "MCDB"

// length of the request header
const headerLen = 13

// MaxBlock is the largest block that can be transferred with a single
// request.
const MaxBlock = 0x20000

type op uint8

const (
	opRead8 op = iota + 1
	opRead16
	opRead32
	opWrite8
	opWrite16
	opWrite32
	opReadBlock
	opWriteBlock
)

func (o op) String() string {
	switch o {
	case opRead8:
		return "read8"
	case opRead16:
		return "read16"
	case opRead32:
		return "read32"
	case opWrite8:
		return "write8"
	case opWrite16:
		return "write16"
	case opWrite32:
		return "write32"
	case opReadBlock:
		return "readblock"
	case opWriteBlock:
		return "writeblock"
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// the fixed length of the operation. zero if the operation is a block transfer
// and -1 if the operation is not valid.
func (o op) size() int {
	switch o {
	case opRead8, opWrite8:
		return 1
	case opRead16, opWrite16:
		return 2
	case opRead32, opWrite32:
		return 4
	case opReadBlock, opWriteBlock:
		return 0
	}
	return -1
}

func (o op) write() bool {
	return o == opWrite8 || o == opWrite16 || o == opWrite32 || o == opWriteBlock
}

// response status values.
const (
	statusOK uint8 = iota
	statusMagic
	statusOp
	statusLength
)

type request struct {
	op      op
	address uint32
	length  uint32
	data    []byte
}

func (r request) encode() []byte {
	b := make([]byte, headerLen, headerLen+len(r.data))
	copy(b, magic)
	b[4] = uint8(r.op)
	binary.BigEndian.PutUint32(b[5:], r.address)
	binary.BigEndian.PutUint32(b[9:], r.length)
	return append(b, r.data...)
}

// the number of data bytes in the response to the request
func (r request) responseLen() int {
	if r.op.write() {
		return 0
	}
	return int(r.length)
}

// decodeHeader does not fill in the data field of the request.
func decodeHeader(h []byte) (request, uint8) {
	if string(h[:4]) != magic {
		return request{}, statusMagic
	}

	r := request{
		op:      op(h[4]),
		address: binary.BigEndian.Uint32(h[5:]),
		length:  binary.BigEndian.Uint32(h[9:]),
	}

	switch sz := r.op.size(); sz {
	case -1:
		return r, statusOp
	case 0:
		if r.length > MaxBlock {
			return r, statusLength
		}
	default:
		if r.length != uint32(sz) {
			return r, statusLength
		}
	}

	return r, statusOK
}

// execute the request against the bus and return the response data.
func execute(b bus.Bus, r request) []byte {
	switch r.op {
	case opRead8:
		return []byte{b.Read8(r.address)}
	case opRead16:
		return binary.BigEndian.AppendUint16(nil, b.Read16(r.address))
	case opRead32:
		return binary.BigEndian.AppendUint32(nil, b.Read32(r.address))
	case opWrite8:
		b.Write8(r.address, r.data[0])
	case opWrite16:
		b.Write16(r.address, binary.BigEndian.Uint16(r.data))
	case opWrite32:
		b.Write32(r.address, binary.BigEndian.Uint32(r.data))
	case opReadBlock:
		d := make([]byte, r.length)
		b.ReadBlock(r.address, d)
		return d
	case opWriteBlock:
		b.WriteBlock(r.address, r.data)
	}
	return nil
}
