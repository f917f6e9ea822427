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
	"errors"
	"io"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bus"
	"github.com/jetsetilly/mode1pcm/logger"
)

// Serve executes requests read from rw against b and writes the responses
// back to rw. It returns nil when rw reaches the end of its input.
//
// A request with an invalid header is refused and, because the stream can no
// longer be trusted, Serve() returns with an error.
func Serve(perm logger.Permission, rw io.ReadWriter, b bus.Bus) error {
	h := make([]byte, headerLen)

	var n int
	defer func() {
		logger.Logf(perm, "bridge", "served %d requests", n)
	}()

	for {
		if _, err := io.ReadFull(rw, h); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return curated.Errorf(BridgeIO, err)
		}

		r, status := decodeHeader(h)
		if status != statusOK {
			_, _ = rw.Write([]byte{status})
			return curated.Errorf(BridgeRefused, status)
		}

		if r.op.write() {
			r.data = make([]byte, r.length)
			if _, err := io.ReadFull(rw, r.data); err != nil {
				return curated.Errorf(BridgeIO, err)
			}
		}

		if _, err := rw.Write(append([]byte{statusOK}, execute(b, r)...)); err != nil {
			return curated.Errorf(BridgeIO, err)
		}
		n++
	}
}
