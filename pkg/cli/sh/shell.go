// Package sh provides the interactive shell controlling the scanner.
package sh

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/padscan/pkg/display"
	"github.com/robotalks/padscan/pkg/gamepad"
	"github.com/robotalks/padscan/pkg/scanner"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	Timeout     time.Duration

	Shell   *ishell.Shell
	Scanner *scanner.Scanner
	Source  gamepad.Source
}

// DeviceInfo describes an enumerated gamepad.
type DeviceInfo struct {
	Slot     int    `json:"slot"`
	ID       string `json:"id"`
	Mapping  string `json:"mapping"`
	Buttons  int    `json:"buttons"`
	Axes     int    `json:"axes"`
	Actuated string `json:"actuated,omitempty"`
}

const (
	shellKey      = "$shell"
	promptIdle    = "padscan > "
	promptRunning = "padscan* > "
)

// ErrTimeout indicates the loop didn't process the request in time.
var ErrTimeout = errors.New("command timeout")

var (
	// flags

	evalOnly   bool
	outputJSON bool

	commands = []*ishell.Cmd{
		&DetectCmd,
		&StartCmd,
		&StopCmd,
		&StatusCmd,
		&DevicesCmd,
	}
)

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluate the command line arguments only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a new shell.
func New(s *scanner.Scanner, src gamepad.Source) *Shell {
	sh := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Timeout:     time.Second,
		Shell:       ishell.New(),
		Scanner:     s,
		Source:      src,
	}
	sh.Shell.Set(shellKey, sh)
	sh.Shell.SetPrompt(promptIdle)
	for _, cmd := range commands {
		sh.Shell.AddCmd(cmd)
	}
	return sh
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Toggle flips scanning and returns the new label.
func (s *Shell) Toggle() (string, error) {
	return s.wait(s.Scanner.Toggle())
}

// Start enables scanning.
func (s *Shell) Start() (string, error) {
	return s.wait(s.Scanner.Start())
}

// Stop disables scanning.
func (s *Shell) Stop() (string, error) {
	return s.wait(s.Scanner.Stop())
}

// Devices lists enumerated gamepads.
func (s *Shell) Devices() ([]DeviceInfo, error) {
	slots, err := s.Source.Gamepads()
	if err != nil {
		return nil, err
	}
	devices := []DeviceInfo{}
	for slot, pad := range slots {
		if pad == nil {
			continue
		}
		info := DeviceInfo{
			Slot:     slot,
			ID:       pad.ID,
			Mapping:  pad.Mapping,
			Buttons:  len(pad.Buttons),
			Axes:     len(pad.Axes),
			Actuated: gamepad.Actuated(pad).Names(),
		}
		if info.Mapping == "" {
			info.Mapping = "-"
		}
		devices = append(devices, info)
	}
	return devices, nil
}

// FormatStatus prints Status into friendly string for display.
func FormatStatus(st scanner.Status) string {
	state := "idle"
	if st.Scanning {
		state = "scanning"
	}
	out := fmt.Sprintf("%s [%s]", state, st.Label)
	if len(st.Devices) > 0 {
		out += ": " + strings.Join(st.Devices, ", ")
	}
	return out
}

// FormatDevice prints DeviceInfo into friendly string for display.
func FormatDevice(info DeviceInfo) string {
	out := fmt.Sprintf("%d: %s (%s, %d buttons, %d axes)",
		info.Slot, info.ID, info.Mapping, info.Buttons, info.Axes)
	if info.Actuated != "" {
		out += " " + info.Actuated
	}
	return out
}

// Run runs the shell.
func (s *Shell) Run(args ...string) error {
	if len(args) > 0 {
		return s.Shell.Process(args...)
	}
	if s.Interactive {
		s.Shell.Run()
		return nil
	}
	return fmt.Errorf("command expected")
}

// KeepRunning indicates the program should continue after Run
// returned: commands were evaluated and left scanning on.
func (s *Shell) KeepRunning(args []string) bool {
	return len(args) > 0 && s.Scanner.Status().Scanning
}

// Close closes the underlying shell.
func (s *Shell) Close() {
	s.Shell.Close()
}

func (s *Shell) wait(ch <-chan string) (string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	select {
	case label := <-ch:
		if s.Shell != nil {
			if label == display.LabelScanning {
				s.Shell.SetPrompt(promptRunning)
			} else {
				s.Shell.SetPrompt(promptIdle)
			}
		}
		return label, nil
	case <-time.After(timeout):
		return "", ErrTimeout
	}
}

func (s *Shell) print(c *ishell.Context, v interface{}, text string) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Println(text)
}
