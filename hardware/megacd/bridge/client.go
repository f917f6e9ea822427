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
	"io"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/logger"
)

// Sentinel error patterns.
const (
	BridgeIO      = "bridge: %v"
	BridgeRefused = "bridge: request refused (status %d)"
)

// transport sends a request and returns the data of the response. n is the
// number of data bytes expected in the response.
type transport interface {
	roundTrip(req []byte, n int) ([]byte, error)
}

// Client is a bus.Bus implementation that forwards every access over a
// transport. It is not safe for concurrent use.
//
// The bus.Bus interface has no means of returning an error so the first error
// is recorded and is available through the Err() function. Once an error has
// occurred all reads return zero and all writes are ignored.
type Client struct {
	perm logger.Permission
	t    transport
	c    io.Closer
	err  error
}

// NewStream creates a Client that sends requests over rw. If rw is also an
// io.Closer then it is closed by the Close() function.
func NewStream(perm logger.Permission, rw io.ReadWriter) *Client {
	c := &Client{
		perm: perm,
		t:    &stream{rw: rw},
	}
	if cl, ok := rw.(io.Closer); ok {
		c.c = cl
	}
	return c
}

// Err returns the first error encountered by the client.
func (c *Client) Err() error {
	return c.err
}

// Close the underlying connection.
func (c *Client) Close() error {
	if c.c == nil {
		return nil
	}
	return c.c.Close()
}

func (c *Client) do(r request) []byte {
	n := r.responseLen()
	if c.err != nil {
		return make([]byte, n)
	}

	d, err := c.t.roundTrip(r.encode(), n)
	if err != nil {
		if curated.Is(err, BridgeRefused) {
			c.err = err
		} else {
			c.err = curated.Errorf(BridgeIO, err)
		}
		logger.Logf(c.perm, "bridge", "%s %#06x: %v", r.op, r.address, c.err)
		return make([]byte, n)
	}

	return d
}

// Read8 implements the bus.Bus interface.
func (c *Client) Read8(address uint32) uint8 {
	return c.do(request{op: opRead8, address: address, length: 1})[0]
}

// Read16 implements the bus.Bus interface.
func (c *Client) Read16(address uint32) uint16 {
	return binary.BigEndian.Uint16(c.do(request{op: opRead16, address: address, length: 2}))
}

// Read32 implements the bus.Bus interface.
func (c *Client) Read32(address uint32) uint32 {
	return binary.BigEndian.Uint32(c.do(request{op: opRead32, address: address, length: 4}))
}

// Write8 implements the bus.Bus interface.
func (c *Client) Write8(address uint32, data uint8) {
	c.do(request{op: opWrite8, address: address, length: 1, data: []byte{data}})
}

// Write16 implements the bus.Bus interface.
func (c *Client) Write16(address uint32, data uint16) {
	c.do(request{op: opWrite16, address: address, length: 2, data: binary.BigEndian.AppendUint16(nil, data)})
}

// Write32 implements the bus.Bus interface.
func (c *Client) Write32(address uint32, data uint32) {
	c.do(request{op: opWrite32, address: address, length: 4, data: binary.BigEndian.AppendUint32(nil, data)})
}

// ReadBlock implements the bus.Bus interface. Blocks larger than MaxBlock are
// split into several requests.
func (c *Client) ReadBlock(address uint32, data []byte) {
	for len(data) > 0 {
		n := min(len(data), MaxBlock)
		copy(data, c.do(request{op: opReadBlock, address: address, length: uint32(n)}))
		data = data[n:]
		address += uint32(n)
	}
}

// WriteBlock implements the bus.Bus interface. Blocks larger than MaxBlock are
// split into several requests.
func (c *Client) WriteBlock(address uint32, data []byte) {
	for len(data) > 0 {
		n := min(len(data), MaxBlock)
		c.do(request{op: opWriteBlock, address: address, length: uint32(n), data: data[:n]})
		data = data[n:]
		address += uint32(n)
	}
}

// stream transport. the request is written in full and the response is read
// in two parts: the status byte and then the data
type stream struct {
	rw     io.ReadWriter
	status [1]byte
}

func (s *stream) roundTrip(req []byte, n int) ([]byte, error) {
	if _, err := s.rw.Write(req); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(s.rw, s.status[:]); err != nil {
		return nil, err
	}
	if s.status[0] != statusOK {
		return nil, curated.Errorf(BridgeRefused, s.status[0])
	}
	d := make([]byte, n)
	if _, err := io.ReadFull(s.rw, d); err != nil {
		return nil, err
	}
	return d, nil
}
