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

package addresses

// Opcode is the single byte command written to the CommandPort.
type Opcode uint8

// List of opcodes understood by the PCM driver.
const (
	OpInit        Opcode = 'I'
	OpPlaySource  Opcode = 'A'
	OpUpdate      Opcode = 'U'
	OpPause       Opcode = 'N'
	OpStop        Opcode = 'O'
	OpRewind      Opcode = 'W'
	OpPosition    Opcode = 'G'
	OpClear       Opcode = 'L'
	OpUpload      Opcode = 'B'
	OpUploadSegs  Opcode = 'K'
	OpOpenFile    Opcode = 'F'
	OpDiscInfo    Opcode = 'D'
	OpTrackInfo   Opcode = 'T'
	OpPlayTrack   Opcode = 'P'
	OpStopTrack   Opcode = 'S'
	OpPauseTrack  Opcode = 'Z'
	OpTrackVolume Opcode = 'V'
	OpPlaySPCM    Opcode = 'Q'
	OpStopSPCM    Opcode = 'R'
	OpResumeSPCM  Opcode = 'X'
	OpSuspend     Opcode = 'E'
)

var opcodeNames = map[Opcode]string{
	OpInit:        "Init",
	OpPlaySource:  "PlaySource",
	OpUpdate:      "UpdateSource",
	OpPause:       "PauseSource",
	OpStop:        "StopSource",
	OpRewind:      "RewindSource",
	OpPosition:    "SourcePosition",
	OpClear:       "Clear",
	OpUpload:      "UploadBuffer",
	OpUploadSegs:  "UploadSegments",
	OpOpenFile:    "OpenFile",
	OpDiscInfo:    "DiscInfo",
	OpTrackInfo:   "TrackInfo",
	OpPlayTrack:   "PlayTrack",
	OpStopTrack:   "StopTrack",
	OpPauseTrack:  "ToggleTrackPause",
	OpTrackVolume: "TrackVolume",
	OpPlaySPCM:    "PlaySPCM",
	OpStopSPCM:    "StopSPCM",
	OpResumeSPCM:  "ResumeSPCM",
	OpSuspend:     "SuspendMixer",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "unknown opcode"
}

// Valid returns true if the opcode is understood by the PCM driver.
func (op Opcode) Valid() bool {
	_, ok := opcodeNames[op]
	return ok
}

// ResultWords returns the number of 16 bit words the peer places in the
// result registers in response to the opcode.
func (op Opcode) ResultWords() int {
	switch op {
	case OpPlaySource, OpPosition:
		return 1
	case OpDiscInfo, OpTrackInfo:
		return 3
	case OpOpenFile:
		return 4
	}
	return 0
}
