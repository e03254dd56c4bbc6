package gamepad

// Unknown is the name of a control which can't be identified.
const Unknown = "unknown"

var buttonNames = [...]string{
	"A",
	"B",
	"X",
	"Y",
	"LB",
	"RB",
	"LT",
	"RT",
	"Select",
	"Start",
	"Left Stick",
	"Right Stick",
	"Up",
	"Down",
	"Left",
	"Right",
	"XBox",
}

var axisNames = [...]string{
	"Left Horizontally",
	"Left Vertically",
	"Right Horizontally",
	"Right Vertically",
}

// Standard layout indices.
const (
	ButtonA = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLB
	ButtonRB
	ButtonLT
	ButtonRT
	ButtonSelect
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonHome

	StandardButtons = len(buttonNames)
)

// Standard layout axis indices.
const (
	AxisLeftX = iota
	AxisLeftY
	AxisRightX
	AxisRightY

	StandardAxes = len(axisNames)
)

// ButtonName names a button index, only for the standard mapping.
func ButtonName(index int, mapping string) string {
	if mapping != MappingStandard || index < 0 || index >= len(buttonNames) {
		return Unknown
	}
	return buttonNames[index]
}

// AxisName names an axis index, only for the standard mapping.
func AxisName(index int, mapping string) string {
	if mapping != MappingStandard || index < 0 || index >= len(axisNames) {
		return Unknown
	}
	return axisNames[index]
}
