// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"bufio"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type EngineConfig struct {
	Name string `yaml:"name"`
	Cmd  string `yaml:"cmd"`
	Dir  string `yaml:"dir"`
	Arg  string `yaml:"arg"`

	// UCI Skill Level option, 0 (weakest) to 20.
	SkillLevel int `yaml:"skill-level"`

	// Per-move thinking budget in seconds.
	MoveTime float64 `yaml:"move-time"`

	Options map[string]string `yaml:"options"`
}

func StartEngine(config EngineConfig) (*Engine, error) {
	var engine Engine
	process := exec.Command(config.Cmd, strings.Fields(config.Arg)...)

	engine.config = config

	process.Dir = config.Dir

	stdin, _ := process.StdinPipe()
	stdout, _ := process.StdoutPipe()

	engine.writer = bufio.NewWriter(stdin)
	engine.reader = bufio.NewReader(stdout)
	engine.lines = make(chan string)

	engine.Cmd = process

	if err := engine.Cmd.Start(); err != nil {
		return nil, err
	}

	go func() {
		for {
			line, err := engine.reader.ReadString('\n')
			if err != nil {
				engine.err = err
				close(engine.lines)
				return
			}

			line = strings.Trim(line, " \n\t\r")

			logrus.Debugf("info: ("+engine.config.Name+")> %s\n", line)
			engine.lines <- line
		}
	}()

	if err := engine.Initialize(); err != nil {
		return nil, err
	}

	if err := engine.NewGame(); err != nil {
		return nil, err
	}

	return &engine, nil
}

type Engine struct {
	config EngineConfig

	*exec.Cmd

	writer *bufio.Writer
	reader *bufio.Reader

	lines chan string

	err error
}

// NewGame prepares the engine for a new game of chess.
func (engine *Engine) NewGame() error {
	if err := engine.Write("ucinewgame"); err != nil {
		return err
	}

	return engine.Synchronize()
}

// Initialize completes the uci handshake on startup and configures the
// engine's strength and any extra options.
func (engine *Engine) Initialize() error {
	if err := engine.Write("uci"); err != nil {
		return err
	}

	if _, err := engine.Await("uciok", 5*time.Second); err != nil {
		return err
	}

	for name, value := range engine.config.Options {
		if err := engine.Write("setoption name %s value %s", name, value); err != nil {
			return err
		}
	}

	if err := engine.Write(
		"setoption name Skill Level value %d", engine.config.SkillLevel,
	); err != nil {
		return err
	}

	return engine.Synchronize()
}

// Synchronize waits for the engine to complete some time consuming task
// and synchronizes the interface with it.
func (engine *Engine) Synchronize() error {
	if err := engine.Write("isready"); err != nil {
		return err
	}

	_, err := engine.Await("readyok", 5*time.Second)
	return err
}

// BestMove asks the engine for a move in the given position, thinking
// for the configured per-move budget. The move is returned as an uci
// coordinate token.
func (engine *Engine) BestMove(fen string) (string, error) {
	if err := engine.Write("position fen %s", fen); err != nil {
		return "", err
	}

	if err := engine.Synchronize(); err != nil {
		return "", err
	}

	movetime := time.Duration(engine.config.MoveTime * float64(time.Second))
	if err := engine.Write("go movetime %d", movetime.Milliseconds()); err != nil {
		return "", err
	}

	// Grace period on top of the budget before the engine is
	// considered unresponsive.
	line, err := engine.Await("bestmove .*", movetime+5*time.Second)
	if err != nil {
		return "", err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", errors.New("engine: malformed bestmove line")
	}

	return fields[1], nil
}

// Kill kills the engine. The process is killed even when the clean
// quit can no longer be written to a wedged engine.
func (engine *Engine) Kill() error {
	err := engine.Write("quit")

	if killErr := engine.Process.Kill(); err == nil {
		err = killErr
	}

	return err
}

var ErrReadTimeout = errors.New("engine: read i/o timeout")

// Await is a utility function which waits for a particular string from
// the engine with a fixed timeout.
func (engine *Engine) Await(pattern string, timeout time.Duration) (string, error) {
	regex := regexp.MustCompile(pattern)
	timer := time.NewTimer(timeout)

	for {
		select {
		case <-timer.C:
			// timer ran out: wait timeout

			if engine.err != nil {
				return "", engine.err
			}

			return "", ErrReadTimeout

		case line, ok := <-engine.lines:
			if !ok {
				// engine closed its stdout: process fault
				if engine.err != nil {
					return "", engine.err
				}

				return "", errors.New("engine: process closed its output")
			}

			if regex.MatchString(line) {
				// line is the expected line
				return line, nil
			}
		}
	}
}

func (engine *Engine) Write(format string, a ...any) error {
	logrus.Debugf("info: ("+engine.config.Name+")< "+format+"\n", a...)

	if _, err := fmt.Fprintf(engine.writer, format+"\n", a...); err != nil {
		return err
	}

	return engine.writer.Flush()
}
