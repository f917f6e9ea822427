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

// Package bridge carries bus accesses to a remote Mega CD. The Client type
// implements the bus.Bus interface by sending each access as a request and
// waiting for the response. The Serve() function and the ServeWebsocket()
// handler are the other end of the bridge and execute requests against any
// bus.Bus implementation, usually the simulated peer.
//
// A request is:
//
//	"MCDB" op:u8 address:u32 length:u32 [data]
//
// and a response is:
//
//	status:u8 [data]
//
// All values are big-endian. Write operations carry length bytes of data in
// the request and read operations return length bytes of data in the
// response. The response to a refused request is the status byte only.
//
// The stream transport is suitable for serial ports (see OpenSerial()) or any
// other io.ReadWriter. The websocket transport sends exactly one binary message
// per request and per response.
package bridge
