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

// Package peer is a simulation of the Mega CD as seen by the host through
// the gate array registers. It implements the bus.Bus interface and can be
// used anywhere real hardware can be used.
//
// The simulation covers the gate array reset, bus request and run control,
// the liveness handshake of the PCM driver and the command protocol. Commands
// update a model of the driver state (sources, buffers, CDDA and SPCM
// playback) but no audio is ever produced.
//
// The timing of the peer is measured in register reads. For example, a
// Config.AckDelay of 10 means that the status port is read ten times before
// the acknowledge for a command is seen.
//
// The peer also records information useful for testing the host: a trace of
// executed commands, the number of reads of each register and the number of
// times the host broke the command protocol.
package peer
