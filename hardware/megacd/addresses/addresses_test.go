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

package addresses_test

import (
	"testing"

	"github.com/jetsetilly/mode1pcm/hardware/megacd/addresses"
	"github.com/jetsetilly/mode1pcm/test"
)

func TestSymbol(t *testing.T) {
	test.ExpectEquality(t, addresses.Symbol(addresses.CommandPort), "COMMIN")
	test.ExpectEquality(t, addresses.Symbol(addresses.StatusPort), "COMMOUT")
	test.ExpectEquality(t, addresses.Symbol(0xa12030), "$a12030")
	test.ExpectEquality(t, addresses.Symbol(addresses.WordRAM), "$600000")
}

func TestOpcodes(t *testing.T) {
	test.ExpectEquality(t, addresses.OpPlaySource.ResultWords(), 1)
	test.ExpectEquality(t, addresses.OpPosition.ResultWords(), 1)
	test.ExpectEquality(t, addresses.OpDiscInfo.ResultWords(), 3)
	test.ExpectEquality(t, addresses.OpTrackInfo.ResultWords(), 3)
	test.ExpectEquality(t, addresses.OpOpenFile.ResultWords(), 4)
	test.ExpectEquality(t, addresses.OpStop.ResultWords(), 0)

	test.ExpectSuccess(t, addresses.OpSuspend.Valid())
	test.ExpectFailure(t, addresses.Opcode('Y').Valid())
	test.ExpectEquality(t, addresses.OpStopTrack.String(), "StopTrack")
	test.ExpectEquality(t, addresses.Opcode(0).String(), "unknown opcode")
}
