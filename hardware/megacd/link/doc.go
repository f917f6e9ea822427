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

// Package link implements the register level protocol between the host and
// the PCM driver running on the peer.
//
// A Link is created with BringUp(), which resets the peer, loads the driver
// and waits for the driver to report that it is alive. Only a link that has
// been brought up successfully can be used to execute commands. A link that
// failed to come up can not be brought up again and must be discarded.
//
// Commands are executed synchronously with Execute(). The exchange is:
//
//	1. wait for the status port to be idle
//	2. write the arguments and then the opcode to the command port
//	3. wait for the status port to be non-zero (the acknowledge)
//	4. read any result words
//	5. write zero to the command port (the completion)
//
// There is no timeout on any of these waits. A peer that stops responding
// will block the host forever.
package link
