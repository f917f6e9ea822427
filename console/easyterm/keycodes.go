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

package easyterm

// list of ASCII codes for non-alphanumeric characters
const (
	KeyInterrupt      = 3  // end-of-text character
	KeySuspend        = 26 // substitute character
	KeyTab            = 9
	KeyCarriageReturn = 13
	KeyEsc            = 27
	KeyBackspace      = 8
)

// list of ASCII code for characters that can follow KeyEsc
const (
	EscCursor = 91
)

// list of ASCII code for characters that can follow EscCursor
const (
	CursorUp       = 'A'
	CursorDown     = 'B'
	CursorForward  = 'C'
	CursorBackward = 'D'
)

// Key is a single key press. Keys that produce a single character are
// represented by that character.
type Key rune

// Keys that do not produce a single character. Values are outside the range
// of valid unicode characters.
const (
	KeyUp Key = 0x110000 + iota
	KeyDown
	KeyRight
	KeyLeft
)

// Decode the first key in b. Returns the key and the number of bytes used. If
// b does not contain a complete key then the number of bytes is zero.
//
// An escape character that is not followed by a recognised sequence is
// returned as KeyEsc.
func Decode(b []byte) (Key, int) {
	if len(b) == 0 {
		return 0, 0
	}

	if b[0] != KeyEsc {
		return Key(b[0]), 1
	}

	if len(b) < 2 {
		return 0, 0
	}
	if b[1] != EscCursor {
		return KeyEsc, 1
	}
	if len(b) < 3 {
		return 0, 0
	}

	switch b[2] {
	case CursorUp:
		return KeyUp, 3
	case CursorDown:
		return KeyDown, 3
	case CursorForward:
		return KeyRight, 3
	case CursorBackward:
		return KeyLeft, 3
	}

	return KeyEsc, 1
}
