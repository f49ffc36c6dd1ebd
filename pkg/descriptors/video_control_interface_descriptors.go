// This file implements the descriptors as defined in the UVC spec 1.5, section 3.7.
package descriptors

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
)

type ControlInterface interface {
	encoding.BinaryUnmarshaler
	isControlInterface()
}

// UnmarshalControlInterface parses one class-specific VC interface block.
// Input terminals of camera type are returned as *CameraTerminalDescriptor.
func UnmarshalControlInterface(buf []byte) (ControlInterface, error) {
	if len(buf) < 3 || len(buf) < int(buf[0]) {
		return nil, io.ErrShortBuffer
	}
	var desc ControlInterface
	switch VideoControlInterfaceDescriptorSubtype(buf[2]) {
	case VideoControlInterfaceDescriptorSubtypeHeader:
		desc = &HeaderDescriptor{}
	case VideoControlInterfaceDescriptorSubtypeInputTerminal:
		if len(buf) >= 6 && InputTerminalType(binary.LittleEndian.Uint16(buf[4:6])) == InputTerminalTypeCamera {
			desc = &CameraTerminalDescriptor{}
		} else {
			desc = &InputTerminalDescriptor{}
		}
	case VideoControlInterfaceDescriptorSubtypeOutputTerminal:
		desc = &OutputTerminalDescriptor{}
	case VideoControlInterfaceDescriptorSubtypeSelectorUnit:
		desc = &SelectorUnitDescriptor{}
	case VideoControlInterfaceDescriptorSubtypeProcessingUnit:
		desc = &ProcessingUnitDescriptor{}
	case VideoControlInterfaceDescriptorSubtypeEncodingUnit:
		desc = &EncodingUnitDescriptor{}
	case VideoControlInterfaceDescriptorSubtypeExtensionUnit:
		desc = &ExtensionUnitDescriptor{}
	default:
		return nil, fmt.Errorf("%w: %#02x", ErrUnknownDescriptor, buf[2])
	}
	return desc, desc.UnmarshalBinary(buf)
}

type VideoControlInterfaceDescriptorSubtype byte

const (
	VideoControlInterfaceDescriptorSubtypeUndefined      VideoControlInterfaceDescriptorSubtype = 0x00
	VideoControlInterfaceDescriptorSubtypeHeader         VideoControlInterfaceDescriptorSubtype = 0x01
	VideoControlInterfaceDescriptorSubtypeInputTerminal  VideoControlInterfaceDescriptorSubtype = 0x02
	VideoControlInterfaceDescriptorSubtypeOutputTerminal VideoControlInterfaceDescriptorSubtype = 0x03
	VideoControlInterfaceDescriptorSubtypeSelectorUnit   VideoControlInterfaceDescriptorSubtype = 0x04
	VideoControlInterfaceDescriptorSubtypeProcessingUnit VideoControlInterfaceDescriptorSubtype = 0x05
	VideoControlInterfaceDescriptorSubtypeExtensionUnit  VideoControlInterfaceDescriptorSubtype = 0x06
	VideoControlInterfaceDescriptorSubtypeEncodingUnit   VideoControlInterfaceDescriptorSubtype = 0x07
)

type InputTerminalType uint16

const (
	InputTerminalTypeVendorSpecific      InputTerminalType = 0x0200
	InputTerminalTypeCamera              InputTerminalType = 0x0201
	InputTerminalTypeMediaTransportInput InputTerminalType = 0x0202
)

type OutputTerminalType uint16

const (
	OutputTerminalTypeVendorSpecific       OutputTerminalType = 0x0300
	OutputTerminalTypeCamera               OutputTerminalType = 0x0301
	OutputTerminalTypeMediaTransportOutput OutputTerminalType = 0x0302
)

func checkHeader(buf []byte, min int, subtype VideoControlInterfaceDescriptorSubtype) error {
	if len(buf) < min || len(buf) < int(buf[0]) {
		return io.ErrShortBuffer
	}
	if ClassSpecificDescriptorType(buf[1]) != ClassSpecificDescriptorTypeInterface {
		return ErrInvalidDescriptor
	}
	if VideoControlInterfaceDescriptorSubtype(buf[2]) != subtype {
		return ErrInvalidDescriptor
	}
	return nil
}

// HeaderDescriptor as defined in UVC spec 1.5, 3.7.2.1
type HeaderDescriptor struct {
	UVC                            BinaryCodedDecimal
	TotalLength                    uint16
	ClockFrequency                 uint32
	VideoStreamingInterfaceIndexes []uint8
}

func (hd *HeaderDescriptor) UnmarshalBinary(buf []byte) error {
	if err := checkHeader(buf, 12, VideoControlInterfaceDescriptorSubtypeHeader); err != nil {
		return err
	}
	hd.UVC = BinaryCodedDecimal(binary.LittleEndian.Uint16(buf[3:5]))
	hd.TotalLength = binary.LittleEndian.Uint16(buf[5:7])
	hd.ClockFrequency = binary.LittleEndian.Uint32(buf[7:11])
	n := int(buf[11])
	if len(buf) < 12+n {
		return io.ErrShortBuffer
	}
	hd.VideoStreamingInterfaceIndexes = make([]uint8, n)
	copy(hd.VideoStreamingInterfaceIndexes, buf[12:12+n])
	return nil
}

func (hd *HeaderDescriptor) isControlInterface() {}

// InputTerminalDescriptor as defined in UVC spec 1.5, 3.7.2.1
type InputTerminalDescriptor struct {
	TerminalID           uint8
	TerminalType         InputTerminalType
	AssociatedTerminalID uint8
	DescriptionIndex     uint8
}

func (itd *InputTerminalDescriptor) UnmarshalBinary(buf []byte) error {
	if err := checkHeader(buf, 8, VideoControlInterfaceDescriptorSubtypeInputTerminal); err != nil {
		return err
	}
	itd.TerminalID = buf[3]
	itd.TerminalType = InputTerminalType(binary.LittleEndian.Uint16(buf[4:6]))
	itd.AssociatedTerminalID = buf[6]
	itd.DescriptionIndex = buf[7]
	return nil
}

func (itd *InputTerminalDescriptor) isControlInterface() {}

// OutputTerminalDescriptor as defined in UVC spec 1.5, 3.7.2.2
type OutputTerminalDescriptor struct {
	TerminalID           uint8
	TerminalType         OutputTerminalType
	AssociatedTerminalID uint8
	SourceID             uint8
}

func (otd *OutputTerminalDescriptor) UnmarshalBinary(buf []byte) error {
	if err := checkHeader(buf, 9, VideoControlInterfaceDescriptorSubtypeOutputTerminal); err != nil {
		return err
	}
	otd.TerminalID = buf[3]
	otd.TerminalType = OutputTerminalType(binary.LittleEndian.Uint16(buf[4:6]))
	otd.AssociatedTerminalID = buf[6]
	otd.SourceID = buf[7]
	return nil
}

func (otd *OutputTerminalDescriptor) isControlInterface() {}

// CameraTerminalDescriptor as defined in UVC spec 1.5, 3.7.2.3
type CameraTerminalDescriptor struct {
	InputTerminalDescriptor
	ObjectiveFocalLengthMin uint16
	ObjectiveFocalLengthMax uint16
	OcularFocalLength       uint16
	ControlsBitmask         []byte
}

func (ctd *CameraTerminalDescriptor) UnmarshalBinary(buf []byte) error {
	if err := ctd.InputTerminalDescriptor.UnmarshalBinary(buf); err != nil {
		return err
	}
	if ctd.TerminalType != InputTerminalTypeCamera {
		return ErrInvalidDescriptor
	}
	if len(buf) < 15 {
		return io.ErrShortBuffer
	}
	ctd.ObjectiveFocalLengthMin = binary.LittleEndian.Uint16(buf[8:10])
	ctd.ObjectiveFocalLengthMax = binary.LittleEndian.Uint16(buf[10:12])
	ctd.OcularFocalLength = binary.LittleEndian.Uint16(buf[12:14])
	n := int(buf[14])
	if len(buf) < 15+n {
		return io.ErrShortBuffer
	}
	ctd.ControlsBitmask = make([]byte, n)
	copy(ctd.ControlsBitmask, buf[15:15+n])
	return nil
}

// SelectorUnitDescriptor as defined in UVC spec 1.5, 3.7.2.4
type SelectorUnitDescriptor struct {
	UnitID           uint8
	SourceID         []uint8
	DescriptionIndex uint8
}

func (sud *SelectorUnitDescriptor) UnmarshalBinary(buf []byte) error {
	if err := checkHeader(buf, 5, VideoControlInterfaceDescriptorSubtypeSelectorUnit); err != nil {
		return err
	}
	sud.UnitID = buf[3]
	p := int(buf[4])
	if len(buf) < 6+p {
		return io.ErrShortBuffer
	}
	sud.SourceID = make([]uint8, p)
	copy(sud.SourceID, buf[5:5+p])
	sud.DescriptionIndex = buf[5+p]
	return nil
}

func (sud *SelectorUnitDescriptor) isControlInterface() {}

// ProcessingUnitDescriptor as defined in UVC spec 1.5, 3.7.2.5
type ProcessingUnitDescriptor struct {
	UnitID                uint8
	SourceID              uint8
	MaxMultiplier         uint16
	ControlsBitmask       []byte
	DescriptionIndex      uint8
	VideoStandardsBitmask uint8
}

func (pud *ProcessingUnitDescriptor) UnmarshalBinary(buf []byte) error {
	if err := checkHeader(buf, 8, VideoControlInterfaceDescriptorSubtypeProcessingUnit); err != nil {
		return err
	}
	pud.UnitID = buf[3]
	pud.SourceID = buf[4]
	pud.MaxMultiplier = binary.LittleEndian.Uint16(buf[5:7])
	n := int(buf[7])
	if len(buf) < 9+n {
		return io.ErrShortBuffer
	}
	pud.ControlsBitmask = make([]byte, n)
	copy(pud.ControlsBitmask, buf[8:8+n])
	pud.DescriptionIndex = buf[8+n]
	// UVC 1.0 processing units end at iProcessing.
	if len(buf) > 9+n {
		pud.VideoStandardsBitmask = buf[9+n]
	}
	return nil
}

func (pud *ProcessingUnitDescriptor) isControlInterface() {}

// EncodingUnitDescriptor as defined in UVC spec 1.5, 3.7.2.6
type EncodingUnitDescriptor struct {
	UnitID                 uint8
	SourceID               uint8
	DescriptionIndex       uint8
	ControlsBitmask        uint32
	ControlsRuntimeBitmask uint32
}

func (eud *EncodingUnitDescriptor) UnmarshalBinary(buf []byte) error {
	if err := checkHeader(buf, 13, VideoControlInterfaceDescriptorSubtypeEncodingUnit); err != nil {
		return err
	}
	eud.UnitID = buf[3]
	eud.SourceID = buf[4]
	eud.DescriptionIndex = buf[5]
	// both bitmaps are three bytes wide.
	eud.ControlsBitmask = uint32(buf[7]) | uint32(buf[8])<<8 | uint32(buf[9])<<16
	eud.ControlsRuntimeBitmask = uint32(buf[10]) | uint32(buf[11])<<8 | uint32(buf[12])<<16
	return nil
}

func (eud *EncodingUnitDescriptor) isControlInterface() {}

// ExtensionUnitDescriptor as defined in UVC spec 1.5, 3.7.2.7
type ExtensionUnitDescriptor struct {
	UnitID            uint8
	GUIDExtensionCode uuid.UUID
	NumControls       uint8
	SourceIDs         []uint8
	ControlsBitmask   []byte
	DescriptionIndex  uint8
}

func (eud *ExtensionUnitDescriptor) UnmarshalBinary(buf []byte) error {
	if err := checkHeader(buf, 22, VideoControlInterfaceDescriptorSubtypeExtensionUnit); err != nil {
		return err
	}
	eud.UnitID = buf[3]
	eud.GUIDExtensionCode = guid(buf[4:20])
	eud.NumControls = buf[20]
	p := int(buf[21])
	if len(buf) < 23+p {
		return io.ErrShortBuffer
	}
	eud.SourceIDs = make([]uint8, p)
	copy(eud.SourceIDs, buf[22:22+p])
	n := int(buf[22+p])
	if len(buf) < 24+p+n {
		return io.ErrShortBuffer
	}
	eud.ControlsBitmask = make([]byte, n)
	copy(eud.ControlsBitmask, buf[23+p:23+p+n])
	eud.DescriptionIndex = buf[23+p+n]
	return nil
}

func (eud *ExtensionUnitDescriptor) isControlInterface() {}
