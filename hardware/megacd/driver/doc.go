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

// Package driver is the catalogue of operations supported by the PCM driver
// running on the peer. Each operation validates its arguments, encodes them
// as a link.Command and decodes the result.
//
// Operations that fail in the peer do so with an ordinary return value. For
// example, PlaySource() returns NoSource if no source could be allocated and
// OpenFile() returns a FileHandle with a negative length if the file could
// not be opened. Errors are only returned for invalid arguments or if the
// link is not ready.
package driver
