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

// Package prefs facilitates the storing of preference values on disk. Values
// are stored in one of the types of this package: Bool, Int and String.
// Each type is safe to read from more than one goroutine.
//
// A Disk instance associates a key with a value and handles the loading and
// saving of those values. The format of the file is simple, one key/value
// pair per line:
//
//	hardware.link.livenessThreshold :: 2000000
//	hardware.queue.capacity :: 16
//
// More than one Disk instance can use the same file. Entries in the file that
// are not known to a Disk instance are preserved when that instance saves.
//
// Values can also be supplied on the command line through the command line
// stack (see PushCommandLineStack()). Command line values take priority over
// values on disk but are never saved unless they are subsequently changed.
package prefs
