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

package link

import (
	"github.com/aybabtme/uniplot/histogram"
)

// number of acknowledge poll counts kept for the histogram
const statsHistory = 1024

// Stats collates information about the commands executed by a Link.
type Stats struct {
	// number of commands executed
	Commands int

	// number of commands executed for each opcode
	Opcodes map[byte]int

	// number of reads of the status port before the acknowledge was seen. the
	// most recent commands only
	AckPolls []int

	// number of reads of the status port during the liveness wait of the
	// bring-up
	LivenessPolls int
}

func newStats() Stats {
	return Stats{
		Opcodes:  make(map[byte]int),
		AckPolls: make([]int, 0, statsHistory),
	}
}

func (s *Stats) record(op byte, polls int) {
	s.Commands++
	s.Opcodes[op]++
	if len(s.AckPolls) >= statsHistory {
		copy(s.AckPolls, s.AckPolls[1:])
		s.AckPolls = s.AckPolls[:len(s.AckPolls)-1]
	}
	s.AckPolls = append(s.AckPolls, polls)
}

// copy returns a deep copy of the Stats instance.
func (s Stats) copy() Stats {
	c := s
	c.Opcodes = make(map[byte]int, len(s.Opcodes))
	for k, v := range s.Opcodes {
		c.Opcodes[k] = v
	}
	c.AckPolls = append([]int(nil), s.AckPolls...)
	return c
}

// Histogram of the acknowledge poll counts, divided into the number of bins.
// Returns nil if no commands have been executed.
func (s Stats) Histogram(bins int) *histogram.Histogram {
	if len(s.AckPolls) == 0 {
		return nil
	}
	data := make([]float64, len(s.AckPolls))
	for i, p := range s.AckPolls {
		data[i] = float64(p)
	}
	h := histogram.Hist(bins, data)
	return &h
}
