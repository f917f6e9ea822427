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

package bridge_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bios"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bridge"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/link"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/megacdtest"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/peer"
	"github.com/jetsetilly/mode1pcm/test"
)

// pipe returns a client connected to a server executing requests against p.
// the client is closed and the server is checked when the test ends.
func pipe(t *testing.T, p *peer.Peer) *bridge.Client {
	t.Helper()

	env := megacdtest.Environment(t)
	cli, srv := net.Pipe()

	done := make(chan error, 1)
	go func() {
		done <- bridge.Serve(env, srv, p)
	}()

	c := bridge.NewStream(env, cli)
	t.Cleanup(func() {
		c.Close()
		test.ExpectSuccess(t, <-done)
	})

	return c
}

func exercise(t *testing.T, c *bridge.Client, p *peer.Peer) {
	t.Helper()

	c.Write8(addresses.WordRAM, 0x12)
	test.ExpectEquality(t, p.Read8(addresses.WordRAM), uint8(0x12))
	test.ExpectEquality(t, c.Read8(addresses.WordRAM), uint8(0x12))

	c.Write16(addresses.WordRAM+2, 0x3456)
	test.ExpectEquality(t, p.Read16(addresses.WordRAM+2), uint16(0x3456))
	test.ExpectEquality(t, c.Read16(addresses.WordRAM+2), uint16(0x3456))

	c.Write32(addresses.WordRAM+4, 0x789abcde)
	test.ExpectEquality(t, p.Read32(addresses.WordRAM+4), uint32(0x789abcde))
	test.ExpectEquality(t, c.Read32(addresses.WordRAM+4), uint32(0x789abcde))

	blk := []byte("bridged block")
	c.WriteBlock(addresses.WordRAM+0x100, blk)
	rd := make([]byte, len(blk))
	c.ReadBlock(addresses.WordRAM+0x100, rd)
	test.ExpectEquality(t, string(rd), string(blk))

	test.ExpectSuccess(t, c.Err())
}

func TestStream(t *testing.T) {
	p := peer.NewPeer(peer.DefaultConfig())
	exercise(t, pipe(t, p), p)
}

func TestLargeBlock(t *testing.T) {
	p := peer.NewPeer(peer.DefaultConfig())
	c := pipe(t, p)

	blk := make([]byte, addresses.WordRAMLength)
	for i := range blk {
		blk[i] = uint8(i * 3)
	}
	c.WriteBlock(addresses.WordRAM, blk)

	// larger than a single request can carry. the memory following word RAM
	// reads as zero
	rd := make([]byte, bridge.MaxBlock+16)
	c.ReadBlock(addresses.WordRAM, rd)
	test.ExpectSuccess(t, bytes.Equal(rd[:len(blk)], blk))
	test.ExpectSuccess(t, bytes.Equal(rd[len(blk):], make([]byte, len(rd)-len(blk))))
	test.ExpectSuccess(t, c.Err())
}

func TestWebsocket(t *testing.T) {
	env := megacdtest.Environment(t)
	p := peer.NewPeer(peer.DefaultConfig())

	srv := httptest.NewServer(bridge.ServeWebsocket(env, p))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := bridge.DialWebsocket(context.Background(), env, url)
	test.DemandSuccess(t, err)
	defer c.Close()

	exercise(t, c, p)
}

func TestBringUpOverBridge(t *testing.T) {
	env := megacdtest.Environment(t)
	p := peer.NewPeer(peer.DefaultConfig())
	c := pipe(t, p)

	boot, err := bios.NewLoader(env, megacdtest.Program)
	test.DemandSuccess(t, err)

	l, err := link.BringUp(env, c, boot)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, l.Ready())

	d := driver.NewDriver(l)
	test.ExpectSuccess(t, d.UploadBuffer(1, make([]byte, 64)))
	id, err := d.PlaySource(driver.PlayParams{Source: driver.AnySource, Buffer: 1})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, id, driver.SourceID(1))
	test.ExpectEquality(t, p.Violations(), 0)
	test.ExpectSuccess(t, c.Err())
}

// failing is an io.ReadWriter that always fails.
type failing struct{}

func (failing) Read([]byte) (int, error)  { return 0, errors.New("unplugged") }
func (failing) Write([]byte) (int, error) { return 0, errors.New("unplugged") }

func TestStickyError(t *testing.T) {
	c := bridge.NewStream(megacdtest.Environment(t), failing{})
	test.ExpectEquality(t, c.Read16(addresses.StatusPort), uint16(0))
	test.ExpectSuccess(t, curated.Is(c.Err(), bridge.BridgeIO))

	c.Write8(addresses.CommandPort, 'I')
	test.ExpectEquality(t, c.Read32(addresses.WordRAM), uint32(0))
	test.ExpectSuccess(t, curated.Is(c.Err(), bridge.BridgeIO))
	test.ExpectSuccess(t, c.Close())
}

// duplex joins a reader and a writer.
type duplex struct {
	io.Reader
	io.Writer
}

func TestServeRefused(t *testing.T) {
	env := megacdtest.Environment(t)
	out := &bytes.Buffer{}
	rw := duplex{Reader: strings.NewReader("XXXX\x01\x00\x00\x00\x00\x00\x00\x00\x01"), Writer: out}

	err := bridge.Serve(env, rw, peer.NewPeer(peer.DefaultConfig()))
	test.ExpectSuccess(t, curated.Is(err, bridge.BridgeRefused))
	test.ExpectEquality(t, out.Len(), 1)
	test.ExpectInequality(t, out.Bytes()[0], uint8(0))

	// bad length for a fixed size operation
	out.Reset()
	rw.Reader = strings.NewReader("MCDB\x02\x00\xa1\x20\x0e\x00\x00\x00\x01")
	err = bridge.Serve(env, rw, peer.NewPeer(peer.DefaultConfig()))
	test.ExpectSuccess(t, curated.Is(err, bridge.BridgeRefused))
}

func TestClientRefused(t *testing.T) {
	env := megacdtest.Environment(t)
	rw := duplex{Reader: strings.NewReader("\x02"), Writer: io.Discard}
	c := bridge.NewStream(env, rw)
	c.Read8(addresses.StatusPort)
	test.ExpectSuccess(t, curated.Is(c.Err(), bridge.BridgeRefused))
}

func TestServeEOF(t *testing.T) {
	env := megacdtest.Environment(t)
	out := &bytes.Buffer{}

	// a single read8 of word RAM and then the end of the stream
	rw := duplex{Reader: strings.NewReader("MCDB\x01\x00\x60\x00\x00\x00\x00\x00\x01"), Writer: out}
	test.ExpectSuccess(t, bridge.Serve(env, rw, peer.NewPeer(peer.DefaultConfig())))
	test.ExpectEquality(t, out.String(), "\x00\x00")
}
