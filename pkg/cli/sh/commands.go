package sh

import (
	"github.com/abiosoft/ishell"
)

func labelCmd(action func(*Shell) (string, error)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		label, err := action(s)
		if err != nil {
			c.Err(err)
			return
		}
		st := s.Scanner.Status()
		s.print(c, map[string]interface{}{"label": label, "scanning": st.Scanning}, label)
	}
}

var (
	// DetectCmd clicks the toggle control.
	DetectCmd = ishell.Cmd{
		Name:    "detect",
		Aliases: []string{"toggle", "d"},
		Help:    "start or stop scanning",
		Func:    labelCmd((*Shell).Toggle),
	}

	// StartCmd starts scanning.
	StartCmd = ishell.Cmd{
		Name: "start",
		Help: "start scanning",
		Func: labelCmd((*Shell).Start),
	}

	// StopCmd stops scanning.
	StopCmd = ishell.Cmd{
		Name: "stop",
		Help: "stop scanning and clear the output",
		Func: labelCmd((*Shell).Stop),
	}

	// StatusCmd prints the scanner status.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "show scanning state and displayed devices",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			st := s.Scanner.Status()
			s.print(c, st, FormatStatus(st))
		},
	}

	// DevicesCmd lists enumerated gamepads.
	DevicesCmd = ishell.Cmd{
		Name:    "devices",
		Aliases: []string{"ls"},
		Help:    "list connected gamepads",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			devices, err := s.Devices()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				s.print(c, devices, "")
				return
			}
			if len(devices) == 0 {
				c.Println("No gamepads found")
				return
			}
			for _, info := range devices {
				c.Println(FormatDevice(info))
			}
		},
	}
)
