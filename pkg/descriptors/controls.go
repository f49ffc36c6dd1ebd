package descriptors

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Unit identifies which VC entity a control is addressed to.
type Unit int

const (
	UnitCameraTerminal Unit = iota
	UnitProcessing
)

func (u Unit) String() string {
	switch u {
	case UnitCameraTerminal:
		return "camera terminal"
	case UnitProcessing:
		return "processing unit"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

type Option struct {
	Label string
	Code  int
}

// ControlField is one little-endian member of a control's payload.
type ControlField struct {
	Name    string
	Size    int
	Signed  bool
	Boolean bool
	Options []Option
}

// Bounds returns the smallest and largest value the field can carry.
func (f ControlField) Bounds() (int64, int64) {
	bits := uint(f.Size * 8)
	if f.Signed {
		return -1 << (bits - 1), 1<<(bits-1) - 1
	}
	return 0, 1<<bits - 1
}

// Control describes a camera terminal or processing unit control as defined
// in UVC spec 1.5, sections 4.2.2.1 and 4.2.2.3.
type Control struct {
	Name     string
	Unit     Unit
	Selector uint8
	// Bit is the position of the control in the unit's bmControls.
	Bit    int
	Fields []ControlField
	// Ranged controls accept GET_MIN and GET_MAX.
	Ranged bool
}

// Length is the size of the control payload in bytes.
func (c Control) Length() int {
	n := 0
	for _, f := range c.Fields {
		n += f.Size
	}
	return n
}

// Supported reports whether the bit for this control is set in bmControls.
func (c Control) Supported(bitmap []byte) bool {
	i := c.Bit / 8
	// UVC 1.0 devices report shorter bitmaps.
	if i >= len(bitmap) {
		return false
	}
	return bitmap[i]&(1<<(c.Bit%8)) != 0
}

// Decode splits a payload into one value per field, sign-extending signed
// fields.
func (c Control) Decode(buf []byte) ([]int64, error) {
	if len(buf) < c.Length() {
		return nil, io.ErrShortBuffer
	}
	values := make([]int64, len(c.Fields))
	off := 0
	for i, f := range c.Fields {
		b := buf[off : off+f.Size]
		switch f.Size {
		case 1:
			if f.Signed {
				values[i] = int64(int8(b[0]))
			} else {
				values[i] = int64(b[0])
			}
		case 2:
			if f.Signed {
				values[i] = int64(int16(binary.LittleEndian.Uint16(b)))
			} else {
				values[i] = int64(binary.LittleEndian.Uint16(b))
			}
		case 4:
			if f.Signed {
				values[i] = int64(int32(binary.LittleEndian.Uint32(b)))
			} else {
				values[i] = int64(binary.LittleEndian.Uint32(b))
			}
		default:
			return nil, fmt.Errorf("%s.%s: unsupported field size %d", c.Name, f.Name, f.Size)
		}
		off += f.Size
	}
	return values, nil
}

// Encode builds a payload from one value per field. Values outside a field's
// width are clamped.
func (c Control) Encode(values []int64) ([]byte, error) {
	if len(values) != len(c.Fields) {
		return nil, fmt.Errorf("%s: got %d values for %d fields", c.Name, len(values), len(c.Fields))
	}
	buf := make([]byte, c.Length())
	off := 0
	for i, f := range c.Fields {
		lo, hi := f.Bounds()
		v := min(max(values[i], lo), hi)
		b := buf[off : off+f.Size]
		switch f.Size {
		case 1:
			b[0] = byte(v)
		case 2:
			binary.LittleEndian.PutUint16(b, uint16(v))
		case 4:
			binary.LittleEndian.PutUint32(b, uint32(v))
		default:
			return nil, fmt.Errorf("%s.%s: unsupported field size %d", c.Name, f.Name, f.Size)
		}
		off += f.Size
	}
	return buf, nil
}

func u8(name string) ControlField  { return ControlField{Name: name, Size: 1} }
func i8(name string) ControlField  { return ControlField{Name: name, Size: 1, Signed: true} }
func u16(name string) ControlField { return ControlField{Name: name, Size: 2} }
func i16(name string) ControlField { return ControlField{Name: name, Size: 2, Signed: true} }
func u32(name string) ControlField { return ControlField{Name: name, Size: 4} }
func i32(name string) ControlField { return ControlField{Name: name, Size: 4, Signed: true} }

func boolean(name string) ControlField {
	return ControlField{Name: name, Size: 1, Boolean: true}
}

func ct(name string, sel CameraTerminalControlSelector, bit int, ranged bool, fields ...ControlField) Control {
	return Control{Name: name, Unit: UnitCameraTerminal, Selector: uint8(sel), Bit: bit, Ranged: ranged, Fields: fields}
}

func pu(name string, sel ProcessingUnitControlSelector, bit int, ranged bool, fields ...ControlField) Control {
	return Control{Name: name, Unit: UnitProcessing, Selector: uint8(sel), Bit: bit, Ranged: ranged, Fields: fields}
}

var autoExposureModes = []Option{
	{Label: "MANUAL", Code: int(AutoExposureModeManual)},
	{Label: "AUTO", Code: int(AutoExposureModeAuto)},
	{Label: "SHUTTER_PRIORITY", Code: int(AutoExposureModeShutterPriority)},
	{Label: "APERTURE_PRIORITY", Code: int(AutoExposureModeAperturePriority)},
}

var focusSimpleRanges = []Option{
	{Label: "FULL_RANGE", Code: int(FocusSimpleRangeFull)},
	{Label: "MACRO", Code: int(FocusSimpleRangeMacro)},
	{Label: "PEOPLE", Code: int(FocusSimpleRangePeople)},
	{Label: "SCENE", Code: int(FocusSimpleRangeScene)},
}

var powerLineFrequencies = []Option{
	{Label: "DISABLED", Code: int(PowerLineFrequencyDisabled)},
	{Label: "50HZ", Code: int(PowerLineFrequency50Hz)},
	{Label: "60HZ", Code: int(PowerLineFrequency60Hz)},
	{Label: "AUTO", Code: int(PowerLineFrequencyAuto)},
}

// Controls lists every supported control in bmControls order, camera
// terminal first.
var Controls = []Control{
	ct("scanning_mode", CameraTerminalControlSelectorScanningModeControl, 0, false, boolean("scanning_mode")),
	ct("auto_exposure_mode", CameraTerminalControlSelectorAutoExposureModeControl, 1, false,
		ControlField{Name: "mode", Size: 1, Options: autoExposureModes}),
	ct("auto_exposure_priority", CameraTerminalControlSelectorAutoExposurePriorityControl, 2, false, boolean("priority")),
	ct("absolute_exposure_time", CameraTerminalControlSelectorExposureTimeAbsoluteControl, 3, true, u32("time")),
	ct("relative_exposure_time", CameraTerminalControlSelectorExposureTimeRelativeControl, 4, false, i8("time")),
	ct("absolute_focus", CameraTerminalControlSelectorFocusAbsoluteControl, 5, true, u16("focus")),
	ct("relative_focus", CameraTerminalControlSelectorFocusRelativeControl, 6, true, i8("focus"), u8("speed")),
	ct("absolute_iris", CameraTerminalControlSelectorIrisAbsoluteControl, 7, true, u16("aperture")),
	ct("relative_iris", CameraTerminalControlSelectorIrisRelativeControl, 8, false, i8("aperture")),
	ct("absolute_zoom", CameraTerminalControlSelectorZoomAbsoluteControl, 9, true, u16("focal_length")),
	ct("relative_zoom", CameraTerminalControlSelectorZoomRelativeControl, 10, true, i8("zoom"), boolean("digital_zoom"), u8("speed")),
	ct("absolute_pan_tilt", CameraTerminalControlSelectorPanTiltAbsoluteControl, 11, true, i32("pan"), i32("tilt")),
	ct("relative_pan_tilt", CameraTerminalControlSelectorPanTiltRelativeControl, 12, true,
		i8("pan_relative"), u8("pan_speed"), i8("tilt_relative"), u8("tilt_speed")),
	ct("absolute_roll", CameraTerminalControlSelectorRollAbsoluteControl, 13, true, i16("roll")),
	ct("relative_roll", CameraTerminalControlSelectorRollRelativeControl, 14, true, i8("roll_relative"), u8("speed")),
	ct("auto_focus", CameraTerminalControlSelectorFocusAutoControl, 17, false, boolean("focus_auto")),
	ct("privacy", CameraTerminalControlSelectorPrivacyControl, 18, false, boolean("privacy")),
	ct("focus_simple", CameraTerminalControlSelectorFocusSimpleControl, 19, false,
		ControlField{Name: "focus", Size: 1, Options: focusSimpleRanges}),

	pu("brightness", ProcessingUnitBrightnessControl, 0, true, i16("brightness")),
	pu("contrast", ProcessingUnitContrastControl, 1, true, u16("contrast")),
	pu("hue", ProcessingUnitHueControl, 2, true, i16("hue")),
	pu("saturation", ProcessingUnitSaturationControl, 3, true, u16("saturation")),
	pu("sharpness", ProcessingUnitSharpnessControl, 4, true, u16("sharpness")),
	pu("gamma", ProcessingUnitGammaControl, 5, true, u16("gamma")),
	pu("white_balance_temperature", ProcessingUnitWhiteBalanceTemperatureControl, 6, true, u16("temperature")),
	pu("white_balance_component", ProcessingUnitWhiteBalanceComponentControl, 7, true, u16("blue"), u16("red")),
	pu("backlight_compensation", ProcessingUnitBacklightCompensationControl, 8, true, u16("compensation")),
	pu("gain", ProcessingUnitGainControl, 9, true, u16("gain")),
	pu("power_line_frequency", ProcessingUnitPowerLineFrequencyControl, 10, false,
		ControlField{Name: "frequency", Size: 1, Options: powerLineFrequencies}),
	pu("auto_hue", ProcessingUnitHueAutoControl, 11, false, boolean("hue_auto")),
	pu("auto_white_balance_temperature", ProcessingUnitWhiteBalanceTemperatureAutoControl, 12, false, boolean("temperature_auto")),
	pu("auto_white_balance_component", ProcessingUnitWhiteBalanceComponentAutoControl, 13, false, boolean("component_auto")),
	pu("digital_multiplier", ProcessingUnitDigitalMultiplierControl, 14, true, u16("multiplier")),
	pu("digital_multiplier_limit", ProcessingUnitDigitalMultiplierLimitControl, 15, true, u16("limit")),
	pu("auto_contrast", ProcessingUnitContrastAutoControl, 18, false, boolean("contrast_auto")),
}

var controlsByName = func() map[string]Control {
	m := make(map[string]Control, len(Controls))
	for _, c := range Controls {
		m[c.Name] = c
	}
	return m
}()

// LookupControl returns the control with the given name.
func LookupControl(name string) (Control, bool) {
	c, ok := controlsByName[name]
	return c, ok
}
