package descriptors

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestUnmarshalControlInterface_Header(t *testing.T) {
	buf := []byte{0x0d, 0x24, 0x01, 0x50, 0x01, 0x4e, 0x00, 0x80, 0xc3, 0xc9, 0x01, 0x01, 0x01}

	desc, err := UnmarshalControlInterface(buf)
	if err != nil {
		t.Fatalf("UnmarshalControlInterface failed: %v", err)
	}
	hd, ok := desc.(*HeaderDescriptor)
	if !ok {
		t.Fatalf("got %T, want *HeaderDescriptor", desc)
	}
	want := &HeaderDescriptor{UVC: 0x0150, TotalLength: 0x4e, ClockFrequency: 30000000, VideoStreamingInterfaceIndexes: []uint8{1}}
	if diff := cmp.Diff(want, hd); diff != "" {
		t.Errorf("HeaderDescriptor mismatch (-want +got):\n%s", diff)
	}
	if hd.UVC.String() != "1.50" {
		t.Errorf("UVC = %s, want 1.50", hd.UVC)
	}
}

func TestUnmarshalControlInterface_CameraTerminal(t *testing.T) {
	buf := []byte{0x12, 0x24, 0x02, 0x01, 0x01, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0x2a, 0x00, 0x02}

	desc, err := UnmarshalControlInterface(buf)
	if err != nil {
		t.Fatalf("UnmarshalControlInterface failed: %v", err)
	}
	ctd, ok := desc.(*CameraTerminalDescriptor)
	if !ok {
		t.Fatalf("got %T, want *CameraTerminalDescriptor", desc)
	}
	if ctd.TerminalID != 1 {
		t.Errorf("TerminalID = %d, want 1", ctd.TerminalID)
	}
	if diff := cmp.Diff([]byte{0x2a, 0x00, 0x02}, ctd.ControlsBitmask); diff != "" {
		t.Errorf("ControlsBitmask mismatch (-want +got):\n%s", diff)
	}
	focus, _ := LookupControl("auto_focus")
	if !focus.Supported(ctd.ControlsBitmask) {
		t.Error("auto_focus not supported")
	}
}

func TestUnmarshalControlInterface_InputTerminal(t *testing.T) {
	buf := []byte{0x08, 0x24, 0x02, 0x04, 0x02, 0x02, 0x00, 0x00}

	desc, err := UnmarshalControlInterface(buf)
	if err != nil {
		t.Fatalf("UnmarshalControlInterface failed: %v", err)
	}
	if _, ok := desc.(*InputTerminalDescriptor); !ok {
		t.Fatalf("got %T, want *InputTerminalDescriptor", desc)
	}
}

func TestUnmarshalControlInterface_ProcessingUnit(t *testing.T) {
	buf := []byte{0x0d, 0x24, 0x05, 0x02, 0x01, 0x00, 0x40, 0x03, 0x5b, 0x17, 0x00, 0x00, 0x00}

	desc, err := UnmarshalControlInterface(buf)
	if err != nil {
		t.Fatalf("UnmarshalControlInterface failed: %v", err)
	}
	pud := desc.(*ProcessingUnitDescriptor)
	if pud.UnitID != 2 || pud.MaxMultiplier != 0x4000 {
		t.Errorf("ProcessingUnitDescriptor = %+v", pud)
	}
	if diff := cmp.Diff([]byte{0x5b, 0x17, 0x00}, pud.ControlsBitmask); diff != "" {
		t.Errorf("ControlsBitmask mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalControlInterface_ProcessingUnitUVC10(t *testing.T) {
	buf := []byte{0x0b, 0x24, 0x05, 0x02, 0x01, 0x00, 0x00, 0x02, 0x7f, 0x15, 0x00}

	desc, err := UnmarshalControlInterface(buf)
	if err != nil {
		t.Fatalf("UnmarshalControlInterface failed: %v", err)
	}
	if pud := desc.(*ProcessingUnitDescriptor); pud.VideoStandardsBitmask != 0 {
		t.Errorf("VideoStandardsBitmask = %d, want 0", pud.VideoStandardsBitmask)
	}
}

func TestUnmarshalControlInterface_ExtensionUnit(t *testing.T) {
	buf := []byte{
		0x1b, 0x24, 0x06, 0x03,
		0x6a, 0xd1, 0x49, 0x2c, 0xb8, 0x32, 0x85, 0x44, 0x3e, 0xa8, 0x64, 0x3a, 0x15, 0x23, 0x62, 0xf2,
		0x06, 0x01, 0x02, 0x02, 0x3f, 0x00, 0x00,
	}

	desc, err := UnmarshalControlInterface(buf)
	if err != nil {
		t.Fatalf("UnmarshalControlInterface failed: %v", err)
	}
	xu := desc.(*ExtensionUnitDescriptor)
	want := uuid.MustParse("2c49d16a-32b8-4485-3ea8-643a152362f2")
	if xu.GUIDExtensionCode != want {
		t.Errorf("GUIDExtensionCode = %s, want %s", xu.GUIDExtensionCode, want)
	}
	if xu.NumControls != 6 || len(xu.SourceIDs) != 1 || xu.SourceIDs[0] != 2 {
		t.Errorf("ExtensionUnitDescriptor = %+v", xu)
	}
}

func TestUnmarshalControlInterface_Errors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{name: "empty", buf: nil, want: io.ErrShortBuffer},
		{name: "truncated", buf: []byte{0x0d, 0x24, 0x01, 0x50}, want: io.ErrShortBuffer},
		{name: "unknown subtype", buf: []byte{0x03, 0x24, 0x09}, want: ErrUnknownDescriptor},
		{name: "wrong type", buf: []byte{0x08, 0x25, 0x02, 0x04, 0x02, 0x02, 0x00, 0x00}, want: ErrInvalidDescriptor},
		{name: "short header list", buf: []byte{0x0c, 0x24, 0x01, 0x50, 0x01, 0x4e, 0x00, 0x80, 0xc3, 0xc9, 0x01, 0x02}, want: io.ErrShortBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalControlInterface(tt.buf); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
