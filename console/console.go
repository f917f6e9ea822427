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

package console

import (
	"sync"
	"time"

	"github.com/jetsetilly/mode1pcm/console/easyterm"
)

// Ticker is implemented by peers that need to be told that time has passed.
// The simulated peer implements this interface.
type Ticker interface {
	Tick(samples int)
}

// the rate at which the Ticker is advanced. the number of samples per tick
// assumes a mixer rate of 32552Hz
const (
	tickPeriod  = 20 * time.Millisecond
	tickSamples = 651
)

// Run the player using the terminal until the quit key is pressed. The
// terminal is put into cbreak mode for the duration.
//
// If ticker is not nil then it is advanced in real time.
func Run(term *easyterm.Terminal, p *Player, ticker Ticker) error {
	term.CBreakMode()
	defer term.CanonicalMode()

	if ticker != nil {
		var wg sync.WaitGroup
		done := make(chan bool)
		wg.Add(1)
		go func() {
			defer wg.Done()
			t := time.NewTicker(tickPeriod)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					ticker.Tick(tickSamples)
				case <-done:
					return
				}
			}
		}()
		defer func() {
			close(done)
			wg.Wait()
		}()
	}

	term.Print("Mode 1 PCM Player\n\n%s\n", Help)

	for {
		k, err := term.ReadKey()
		if err != nil {
			return err
		}

		switch k {
		case easyterm.KeySuspend:
			easyterm.SuspendProcess()
			continue
		case 'h', 'H':
			if err := p.Histogram(term, term.Cols()-20); err != nil {
				return err
			}
			continue
		case '?':
			term.Print("%s\n", Help)
			continue
		}

		cont, err := p.Key(k)
		if err != nil {
			term.Print("* %v\n", err)
		}
		if !cont {
			return nil
		}

		if err := p.Status(term); err != nil {
			return err
		}
		term.Print("\n")
	}
}
