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
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bus"
	"github.com/jetsetilly/mode1pcm/logger"
)

// websocket transport. one binary message for each request and response
type websocket struct {
	conn net.Conn
}

func (w *websocket) roundTrip(req []byte, n int) ([]byte, error) {
	if err := wsutil.WriteClientBinary(w.conn, req); err != nil {
		return nil, err
	}

	resp, err := wsutil.ReadServerBinary(w.conn)
	if err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	if resp[0] != statusOK {
		return nil, curated.Errorf(BridgeRefused, resp[0])
	}
	if len(resp)-1 != n {
		return nil, fmt.Errorf("response of %d bytes, expected %d", len(resp)-1, n)
	}

	return resp[1:], nil
}

// DialWebsocket connects to a websocket bridge server and returns a Client
// that uses it.
func DialWebsocket(ctx context.Context, perm logger.Permission, url string) (*Client, error) {
	conn, br, _, err := ws.Dial(ctx, url)
	if err != nil {
		return nil, curated.Errorf(BridgeIO, err)
	}

	// the server never sends anything before the first request
	if br != nil {
		ws.PutReader(br)
	}

	logger.Logf(perm, "bridge", "connected to %s", url)

	return &Client{
		perm: perm,
		t:    &websocket{conn: conn},
		c:    conn,
	}, nil
}

// ServeWebsocket returns an http.Handler that upgrades the connection to a
// websocket and executes bridge requests against b until the connection is
// closed.
func ServeWebsocket(perm logger.Permission, b bus.Bus) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(req, rw)
		if err != nil {
			logger.Logf(perm, "bridge", "upgrade: %v", err)
			return
		}
		defer conn.Close()

		logger.Logf(perm, "bridge", "websocket client %s", req.RemoteAddr)

		for {
			msg, err := wsutil.ReadClientBinary(conn)
			if err != nil {
				logger.Logf(perm, "bridge", "websocket client %s: %v", req.RemoteAddr, err)
				return
			}

			if err := wsutil.WriteServerBinary(conn, message(b, msg)); err != nil {
				logger.Logf(perm, "bridge", "websocket client %s: %v", req.RemoteAddr, err)
				return
			}
		}
	})
}

// message decodes and executes a complete request and returns the response.
func message(b bus.Bus, msg []byte) []byte {
	if len(msg) < headerLen {
		return []byte{statusLength}
	}

	r, status := decodeHeader(msg[:headerLen])
	if status != statusOK {
		return []byte{status}
	}

	r.data = msg[headerLen:]
	if r.op.write() {
		if uint32(len(r.data)) != r.length {
			return []byte{statusLength}
		}
	} else if len(r.data) != 0 {
		return []byte{statusLength}
	}

	return append([]byte{statusOK}, execute(b, r)...)
}
