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

// Package queue defers mixer commands so that they can be applied to the peer
// as a single unit. The mixer is suspended while the queued commands are
// executed and resumed afterwards, so that no intermediate state is ever
// heard.
//
// The queue has a fixed capacity. Commands added to a full queue are dropped.
package queue

import (
	"github.com/jetsetilly/mode1pcm/environment"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/link"
	"github.com/jetsetilly/mode1pcm/logger"
)

// Outcome of adding a command to the queue.
type Outcome int

// List of valid Outcome values.
const (
	Queued Outcome = iota
	Full

	// the command was not queued because of an argument error
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Queued:
		return "queued"
	case Full:
		return "full"
	case Rejected:
		return "rejected"
	}
	return "unknown outcome"
}

// Executor is the means by which queued commands are executed. The
// link.Link and driver.Driver types both satisfy this interface.
type Executor interface {
	Execute(cmd link.Command) (link.Result, error)
}

// Queue is a bounded FIFO of commands. It is not safe for concurrent use.
type Queue struct {
	env  *environment.Environment
	exec Executor
	cmds []link.Command
}

// NewQueue is the preferred method of initialisation for the Queue type. The
// capacity of the queue is taken from the environment's preferences.
func NewQueue(env *environment.Environment, exec Executor) *Queue {
	return &Queue{
		env:  env,
		exec: exec,
		cmds: make([]link.Command, 0, env.Prefs.Capacity()),
	}
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	return len(q.cmds)
}

// Cap returns the capacity of the queue.
func (q *Queue) Cap() int {
	return cap(q.cmds)
}

// Commands returns a copy of the queued commands in the order in which they
// will be executed.
func (q *Queue) Commands() []link.Command {
	return append([]link.Command(nil), q.cmds...)
}

func (q *Queue) push(cmd link.Command) Outcome {
	if len(q.cmds) >= cap(q.cmds) {
		logger.Logf(q.env, q.env.Tag("queue"), "dropped %s", cmd)
		return Full
	}
	q.cmds = append(q.cmds, cmd)
	return Queued
}

// Play queues a play command. Arguments are checked before the capacity of the
// queue.
func (q *Queue) Play(p driver.PlayParams) (Outcome, error) {
	cmd, err := driver.PlayCommand(p)
	if err != nil {
		return Rejected, err
	}
	return q.push(cmd), nil
}

// Update queues an update command.
func (q *Queue) Update(p driver.UpdateParams) (Outcome, error) {
	cmd, err := driver.UpdateCommand(p)
	if err != nil {
		return Rejected, err
	}
	return q.push(cmd), nil
}

// Stop queues a stop command.
func (q *Queue) Stop(id driver.SourceID) (Outcome, error) {
	cmd, err := driver.StopCommand(id)
	if err != nil {
		return Rejected, err
	}
	return q.push(cmd), nil
}

// Clear queues a command that stops all sources.
func (q *Queue) Clear() Outcome {
	return q.push(driver.ClearCommand())
}

// Flush executes every queued command with the mixer suspended. Returns the
// number of commands executed. An empty queue executes nothing, not even the
// suspend and resume commands.
//
// The queue is emptied even if a command fails to execute.
func (q *Queue) Flush() (int, error) {
	if len(q.cmds) == 0 {
		return 0, nil
	}

	defer func() {
		q.cmds = q.cmds[:0]
	}()

	if _, err := q.exec.Execute(driver.SuspendCommand(true)); err != nil {
		return 0, err
	}

	var n int
	for _, cmd := range q.cmds {
		if _, err := q.exec.Execute(cmd); err != nil {
			return n, err
		}
		n++
	}

	if _, err := q.exec.Execute(driver.SuspendCommand(false)); err != nil {
		return n, err
	}

	logger.Logf(q.env, q.env.Tag("queue"), "flushed %d commands", n)

	return n, nil
}
