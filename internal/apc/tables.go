package apc

// Color is a semantic color name. Hosts map it to their own palette.
type Color string

const (
	ColorDefault Color = ""
	ColorGood    Color = "good"
	ColorAverage Color = "average"
	ColorBad     Color = "bad"
)

// PowerStatus is the readout for one external power or charging code.
type PowerStatus struct {
	Color             Color
	ExternalPowerText string
	ChargingText      string
}

var powerStatusMap = map[int]PowerStatus{
	2: {Color: ColorGood, ExternalPowerText: "External Power", ChargingText: "Fully Charged"},
	1: {Color: ColorAverage, ExternalPowerText: "Low External Power", ChargingText: "Charging"},
	0: {Color: ColorBad, ExternalPowerText: "No External Power", ChargingText: "Not Charging"},
}

// PowerStatusFor looks up an externalPower/chargingStatus code, falling back
// to the "no power" entry for codes outside the table.
func PowerStatusFor(code Code) PowerStatus {
	if key, ok := code.Int(); ok {
		if status, ok := powerStatusMap[key]; ok {
			return status
		}
	}
	return powerStatusMap[0]
}

// Malfunction is the silicon-only header button for a malfStatus code.
type Malfunction struct {
	Icon    string
	Content string
	Action  string
}

// Codes 2-4 (occupy/deoccupy core process) are reserved by the backend but
// not offered here.
var malfunctionMap = map[int]Malfunction{
	1: {Icon: "terminal", Content: "Override Programming", Action: ActionHack},
}

// MalfunctionFor reports the header button for code, if it has one.
func MalfunctionFor(code Code) (Malfunction, bool) {
	key, ok := code.Int()
	if !ok {
		return Malfunction{}, false
	}
	malf, ok := malfunctionMap[key]
	return malf, ok
}
