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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/mode1pcm/console"
	"github.com/jetsetilly/mode1pcm/console/easyterm"
	"github.com/jetsetilly/mode1pcm/environment"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bios"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bridge"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/bus"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/driver"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/link"
	"github.com/jetsetilly/mode1pcm/hardware/megacd/peer"
	"github.com/jetsetilly/mode1pcm/logger"
	"github.com/jetsetilly/mode1pcm/modalflag"
	"github.com/jetsetilly/mode1pcm/prefs"
	"github.com/jetsetilly/mode1pcm/samples"
	"github.com/jetsetilly/mode1pcm/script"
	"github.com/jetsetilly/mode1pcm/statsview"
	"github.com/jetsetilly/mode1pcm/version"
	"github.com/jetsetilly/mode1pcm/wavwriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "SCRIPT", "SERVE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "SCRIPT":
		err = runScript(md)

	case "SERVE":
		err = serve(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// options common to the modes that connect to a peer
type connection struct {
	serial    *string
	websocket *string
	program   *string
	prefs     *string
	log       *bool
	stats     *bool
}

func addConnectionFlags(md *modalflag.Modes) *connection {
	c := &connection{
		serial:    md.AddString("serial", "", "connect to a peer through the named serial port bridge"),
		websocket: md.AddString("ws", "", "connect to a peer through a websocket bridge (ws://host:port/)"),
		program:   md.AddString("program", "", "driver program to copy to the peer during bring-up"),
		prefs:     md.AddString("prefs", "", "preferences for this session (key::value; key::value)"),
		log:       md.AddBool("log", false, "echo log to stdout"),
	}
	if statsview.Available() {
		c.stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return c
}

func (c *connection) environment() (*environment.Environment, error) {
	if *c.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if c.stats != nil && *c.stats {
		statsview.Launch(logger.Allow, os.Stdout)
	}

	prefs.PushCommandLineStack(*c.prefs)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Printf("! unused preferences: %s\n", unused)
		}
	}()

	return environment.NewEnvironment(environment.MainLabel, nil)
}

// connect to the peer and bring the link up. the simulated peer is returned
// if it is being used, otherwise the peer is nil. the returned function
// closes the connection
func (c *connection) connect(env *environment.Environment) (*link.Link, *peer.Peer, func(), error) {
	var b bus.Bus
	var sim *peer.Peer
	closer := func() {}

	switch {
	case *c.serial != "":
		cl, err := bridge.OpenSerial(env, *c.serial, env.Prefs.BridgeBaud.Get().(int))
		if err != nil {
			return nil, nil, nil, err
		}
		b = cl
		closer = func() { cl.Close() }

	case *c.websocket != "":
		cl, err := bridge.DialWebsocket(context.Background(), env, *c.websocket)
		if err != nil {
			return nil, nil, nil, err
		}
		b = cl
		closer = func() { cl.Close() }

	default:
		if pt := env.Prefs.BridgePort.Get().(string); pt != "" {
			cl, err := bridge.OpenSerial(env, pt, env.Prefs.BridgeBaud.Get().(int))
			if err != nil {
				return nil, nil, nil, err
			}
			b = cl
			closer = func() { cl.Close() }
		} else {
			sim = peer.NewPeer(peer.DefaultConfig())
			b = sim
			fmt.Println("! using simulated peer")
		}
	}

	var program []byte
	if *c.program != "" {
		var err error
		program, err = os.ReadFile(*c.program)
		if err != nil {
			closer()
			return nil, nil, nil, err
		}
	}

	boot, err := bios.NewLoader(env, program)
	if err != nil {
		closer()
		return nil, nil, nil, err
	}

	l, err := link.BringUp(env, b, boot)
	if err != nil {
		closer()
		return nil, nil, nil, err
	}

	return l, sim, closer, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("Up to three sample files (WAV or MP3) are uploaded to buffers 1, 2 and 3")

	conn := addConnectionFlags(md)
	dump := md.AddString("dump", "", "write converted 8-bit samples to this directory")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 3 {
		return fmt.Errorf("too many sample files for %s mode", md)
	}

	env, err := conn.environment()
	if err != nil {
		return err
	}

	l, sim, closer, err := conn.connect(env)
	if err != nil {
		return err
	}
	defer closer()

	drv := driver.NewDriver(l)
	if err := drv.Init(); err != nil {
		return err
	}

	for i, fn := range md.RemainingArgs() {
		s, err := samples.Load(env, fn)
		if err != nil {
			return err
		}
		if err := drv.UploadBuffer(driver.BufferID(i+1), s.Payload); err != nil {
			return err
		}
		fmt.Printf("buffer %d: %s\n", i+1, s)

		if *dump != "" && s.PCM != nil {
			if err := dumpSample(*dump, s); err != nil {
				return err
			}
		}
	}

	term := &easyterm.Terminal{}
	if err := term.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}
	defer term.CleanUp()

	// the simulated peer needs to be told that time has passed
	var ticker console.Ticker
	if sim != nil {
		ticker = sim
	}

	err = console.Run(term, console.NewPlayer(env, drv), ticker)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func dumpSample(dir string, s *samples.Sample) error {
	fn := filepath.Join(dir, strings.TrimSuffix(s.Name, filepath.Ext(s.Name))+".u8.wav")
	aw, err := wavwriter.New(fn, s.Channels, s.SampleRate)
	if err != nil {
		return err
	}
	if _, err := aw.Write(s.PCM); err != nil {
		return err
	}
	return aw.Close()
}

func runScript(md *modalflag.Modes) error {
	md.NewMode()

	conn := addConnectionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("lua script required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	env, err := conn.environment()
	if err != nil {
		return err
	}

	l, sim, closer, err := conn.connect(env)
	if err != nil {
		return err
	}
	defer closer()

	var ticker script.Ticker
	if sim != nil {
		ticker = sim
	}

	scr := script.NewScript(env, driver.NewDriver(l), ticker, os.Stdout)
	defer scr.Close()

	return scr.RunFile(md.GetArg(0))
}

func serve(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("Serve the simulated peer over a websocket or a serial port")

	listen := md.AddString("listen", "localhost:12651", "address of websocket server")
	port := md.AddString("serial", "", "serve over the named serial port instead of a websocket")
	baud := md.AddInt("baud", 115200, "baud rate of serial port")
	log := md.AddBool("log", false, "echo log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	}

	sim := peer.NewPeer(peer.DefaultConfig())

	if *port != "" {
		f, err := bridge.OpenSerialPort(*port, *baud)
		if err != nil {
			return err
		}
		defer f.Close()
		fmt.Printf("serving simulated peer on %s\n", *port)
		return bridge.Serve(logger.Allow, f, sim)
	}

	srv := &http.Server{
		Addr:    *listen,
		Handler: bridge.ServeWebsocket(logger.Allow, sim),
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		srv.Close()
	}()

	fmt.Printf("serving simulated peer at ws://%s/\n", *listen)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Println(r)
	}

	return nil
}
