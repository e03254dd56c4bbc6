package device

import (
	"sort"
	"strings"

	"github.com/robotalks/padscan/pkg/gamepad"
)

// Layout translates raw joystick indices of a known device family
// into the standard gamepad layout.
type Layout struct {
	Family string
	// Buttons maps raw buttons to standard buttons.
	Buttons map[int]int
	// Axes maps raw axes to standard axes.
	Axes map[int]int
	// Triggers maps raw axes to analog standard buttons.
	Triggers map[int]int
	// HatX and HatY are the raw axes of the D-pad, -1 if absent.
	HatX, HatY int
}

// TriggerThreshold is the trigger value above which the
// trigger button is reported pressed.
const TriggerThreshold = 0.12

var (
	xpadLayout = &Layout{
		Family: "xpad",
		Buttons: map[int]int{
			0:  gamepad.ButtonA,
			1:  gamepad.ButtonB,
			2:  gamepad.ButtonX,
			3:  gamepad.ButtonY,
			4:  gamepad.ButtonLB,
			5:  gamepad.ButtonRB,
			6:  gamepad.ButtonSelect,
			7:  gamepad.ButtonStart,
			8:  gamepad.ButtonHome,
			9:  gamepad.ButtonLeftStick,
			10: gamepad.ButtonRightStick,
		},
		Axes: map[int]int{
			0: gamepad.AxisLeftX,
			1: gamepad.AxisLeftY,
			3: gamepad.AxisRightX,
			4: gamepad.AxisRightY,
		},
		Triggers: map[int]int{
			2: gamepad.ButtonLT,
			5: gamepad.ButtonRT,
		},
		HatX: 6,
		HatY: 7,
	}

	// hid-playstation: L2/R2 also show up as buttons 6/7, the
	// analog axes are used instead.
	dualShockLayout = &Layout{
		Family: "dualshock",
		Buttons: map[int]int{
			0:  gamepad.ButtonA,
			1:  gamepad.ButtonB,
			2:  gamepad.ButtonY,
			3:  gamepad.ButtonX,
			4:  gamepad.ButtonLB,
			5:  gamepad.ButtonRB,
			8:  gamepad.ButtonSelect,
			9:  gamepad.ButtonStart,
			10: gamepad.ButtonHome,
			11: gamepad.ButtonLeftStick,
			12: gamepad.ButtonRightStick,
		},
		Axes: map[int]int{
			0: gamepad.AxisLeftX,
			1: gamepad.AxisLeftY,
			3: gamepad.AxisRightX,
			4: gamepad.AxisRightY,
		},
		Triggers: map[int]int{
			2: gamepad.ButtonLT,
			5: gamepad.ButtonRT,
		},
		HatX: 6,
		HatY: 7,
	}

	knownLayouts = map[string]*Layout{
		"Microsoft X-Box 360 pad":              xpadLayout,
		"Microsoft X-Box One pad":              xpadLayout,
		"Microsoft X-Box One S pad":            xpadLayout,
		"Microsoft Xbox Series S|X Controller": xpadLayout,
		"Xbox Wireless Controller":             xpadLayout,
		"Generic X-Box pad":                    xpadLayout,
		"Logitech Gamepad F310":                xpadLayout,
		"8BitDo Pro 2":                         xpadLayout,

		"Sony Interactive Entertainment Wireless Controller": dualShockLayout,
		"Sony Computer Entertainment Wireless Controller":    dualShockLayout,
		"Wireless Controller":                                dualShockLayout,
		"DualSense Wireless Controller":                      dualShockLayout,
	}
)

// LayoutFor finds the layout of a device by its name, nil if unknown.
func LayoutFor(name string) *Layout {
	if l, ok := knownLayouts[name]; ok {
		return l
	}
	// xpad names some pads "Microsoft X-Box 360 pad 0", "... pad 1".
	for _, prefix := range layoutPrefixes {
		if strings.HasPrefix(name, prefix+" ") {
			return knownLayouts[prefix]
		}
	}
	return nil
}

var layoutPrefixes = sortedPrefixes(knownLayouts)

// sortedPrefixes orders names longest first so the most specific
// prefix matches, ties broken alphabetically.
func sortedPrefixes(layouts map[string]*Layout) []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}
