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

// Package modalflag wraps the flag package of the standard library so that a
// program can be split into modes, each mode with its own set of flags.
//
// A Modes value is first given the argument list with NewArgs() and then
// parsed with Parse(). Sub-modes are registered before a call to Parse() with
// AddSubModes(). The first sub-mode is the default and is selected if the
// first non-flag argument doesn't name one of the other sub-modes:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "SCRIPT", "SERVE", "VERSION")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		port := md.AddString("port", "", "serial port of the bridge")
//		...
//	}
//
// Sub-mode comparisons are case insensitive. The Path() function returns the
// chain of modes selected so far, separated by a forward slash.
package modalflag
