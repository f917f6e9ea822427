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

// Package logger is the central log for the application. Entries are made up
// of a tag and a detail string. The tag identifies the part of the program
// making the entry, for example "link" or "peer".
//
// Every log request is accompanied by an implementation of the Permission
// interface. Entries are only made when AllowLogging() returns true. The
// environment package provides the most common implementation.
//
// Repeated entries are collapsed into one entry with a repeat count. The log
// is bounded and oldest entries are discarded first.
package logger
