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

// Package console is an interactive, key driven player for the Mode 1 PCM
// driver. Up to three buffers are played on the mixer sources with the
// current pan and volume settings.
//
// The Player type holds the state of the player and is independent of any
// terminal. The Run() function drives a Player from a terminal in cbreak mode.
package console

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/jetsetilly/mode1pcm/console/easyterm"
	"github.com/jetsetilly/mode1pcm/environment"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/queue"
	"github.com/jetsetilly/mode1pcm/logger"
)

// the amount pan and volume change with each key press
const step = 8

// Help lists the keys recognised by the player.
const Help = `A/B/C  play buffer 1/2/3 on source 1/2/3
X/Y/Z  play buffer 1/2/3 on a free source
SPACE  pause/unpause last source
LEFT/RIGHT  pan left/right
UP/DOWN  volume up/down
M  clear all sources
D  toggle deferred mode
F  flush deferred commands
H  acknowledge histogram
Q  quit
`

// Player is the state of the interactive player.
type Player struct {
	env *environment.Environment
	drv *driver.Driver
	q   *queue.Queue

	Pan  uint8
	Vol  uint8
	Last driver.SourceID

	paused [driver.NumSources + 1]bool

	// commands are added to the queue rather than being executed
	Deferred bool
}

// NewPlayer is the preferred method of initialisation for the Player type.
func NewPlayer(env *environment.Environment, drv *driver.Driver) *Player {
	return &Player{
		env: env,
		drv: drv,
		q:   queue.NewQueue(env, drv),
		Pan: driver.PanCentre,
		Vol: 255,
	}
}

// Queue returns the queue used in deferred mode.
func (p *Player) Queue() *queue.Queue {
	return p.q
}

// Key handles a single key press. Returns false if the key is the quit key.
func (p *Player) Key(k easyterm.Key) (bool, error) {
	var err error

	switch k {
	case 'q', 'Q', easyterm.KeyInterrupt:
		return false, nil

	case 'a', 'A', 'b', 'B', 'c', 'C':
		id := driver.SourceID(lower(k)-'a') + 1
		err = p.play(id, driver.BufferID(id))

	case 'x', 'X', 'y', 'Y', 'z', 'Z':
		err = p.play(driver.AnySource, driver.BufferID(lower(k)-'x')+1)

	case ' ':
		if p.Last.Allocated() {
			p.paused[p.Last] = !p.paused[p.Last]
			_, err = p.drv.PauseSource(p.Last, p.paused[p.Last])
		}

	case easyterm.KeyLeft:
		p.Pan = uint8(max(int(p.Pan)-step, driver.PanLeft))
	case easyterm.KeyRight:
		p.Pan = uint8(min(int(p.Pan)+step, driver.PanRight))
	case easyterm.KeyDown:
		p.Vol = uint8(max(int(p.Vol)-step, 0))
	case easyterm.KeyUp:
		p.Vol = uint8(min(int(p.Vol)+step, 255))

	case 'm', 'M':
		if p.Deferred {
			err = p.outcome(p.q.Clear(), nil)
		} else {
			err = p.drv.ClearAll()
		}

	case 'd', 'D':
		p.Deferred = !p.Deferred
		logger.Logf(p.env, "console", "deferred mode: %v", p.Deferred)
		return true, nil

	case 'f', 'F':
		var n int
		n, err = p.q.Flush()
		logger.Logf(p.env, "console", "flushed %d commands", n)
		return true, err

	default:
		return true, nil
	}

	if err != nil {
		return true, err
	}

	return true, p.update()
}

func lower(k easyterm.Key) easyterm.Key {
	if k >= 'A' && k <= 'Z' {
		return k + 'a' - 'A'
	}
	return k
}

func (p *Player) outcome(o queue.Outcome, err error) error {
	if err != nil {
		return err
	}
	if o == queue.Full {
		logger.Logf(p.env, "console", "queue is full (%d commands)", p.q.Len())
	}
	return nil
}

func (p *Player) play(id driver.SourceID, buf driver.BufferID) error {
	params := driver.PlayParams{
		Source: id,
		Buffer: buf,
		Pan:    p.Pan,
		Vol:    p.Vol,
	}

	if p.Deferred {
		if err := p.outcome(p.q.Play(params)); err != nil {
			return err
		}
		if id.Allocated() {
			p.Last = id
			p.paused[id] = false
		}
		return nil
	}

	n, err := p.drv.PlaySource(params)
	if err != nil {
		return err
	}
	if n.Allocated() {
		p.Last = n
		p.paused[n] = false
	} else {
		logger.Logf(p.env, "console", "no source for buffer %d", buf)
	}
	return nil
}

// the pan and volume of the last source follow the player settings
func (p *Player) update() error {
	if !p.Last.Allocated() {
		return nil
	}
	params := driver.UpdateParams{
		Source: p.Last,
		Pan:    p.Pan,
		Vol:    p.Vol,
	}
	if p.Deferred {
		return p.outcome(p.q.Update(params))
	}
	return p.drv.UpdateSource(params)
}

// Status writes the state of the player to w.
func (p *Player) Status(w io.Writer) error {
	var pos uint16
	if p.Last.Allocated() {
		var err error
		pos, err = p.drv.SourcePosition(p.Last)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Last Source: %d\n", p.Last)
	fmt.Fprintf(w, "Position:    %04X\n", pos)
	fmt.Fprintf(w, "Panning:     %03d\n", p.Pan)
	fmt.Fprintf(w, "Volume:      %03d\n", p.Vol)
	fmt.Fprintf(w, "Playing:     %08b\n", p.drv.PlaybackStatus())
	if p.Deferred {
		fmt.Fprintf(w, "Queued:      %d/%d\n", p.q.Len(), p.q.Cap())
	}

	return nil
}

// Histogram writes a histogram of the number of status port polls required
// for each command to be acknowledged.
func (p *Player) Histogram(w io.Writer, width int) error {
	h := p.drv.Link().Stats().Histogram(10)
	if h == nil {
		_, err := io.WriteString(w, "no commands executed\n")
		return err
	}
	return histogram.Fprint(w, *h, histogram.Linear(width))
}
