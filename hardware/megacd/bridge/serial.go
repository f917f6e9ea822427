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
	"go.bug.st/serial"

	"github.com/jetsetilly/mode1pcm/curated"
	"github.com/jetsetilly/mode1pcm/logger"
)

// OpenSerial opens the named serial port and returns a Client that uses it as
// a stream transport.
func OpenSerial(perm logger.Permission, port string, baud int) (*Client, error) {
	f, err := OpenSerialPort(port, baud)
	if err != nil {
		return nil, err
	}

	logger.Logf(perm, "bridge", "opened %s at %d baud", port, baud)

	return NewStream(perm, f), nil
}

// OpenSerialPort opens the named serial port. The port can be used with the
// Serve() function.
func OpenSerialPort(port string, baud int) (serial.Port, error) {
	f, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, curated.Errorf(BridgeIO, err)
	}

	if err := f.SetDTR(true); err != nil {
		f.Close()
		return nil, curated.Errorf(BridgeIO, err)
	}

	return f, nil
}

// SerialPorts returns the names of the serial ports on the system.
func SerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, curated.Errorf(BridgeIO, err)
	}
	return ports, nil
}
