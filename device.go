package uvc

import (
	"errors"
	"fmt"
	"sync/atomic"

	usb "github.com/kevmo314/go-usb"
	"github.com/kevmo314/uvc-controls/pkg/descriptors"
	"golang.org/x/sys/unix"
)

type UVCDevice struct {
	handle *usb.DeviceHandle
	closed atomic.Bool
}

// NewUVCDevice wraps an already opened usbfs file descriptor.
func NewUVCDevice(fd uintptr) (*UVCDevice, error) {
	handle, err := usb.WrapSysDevice(int(fd))
	if err != nil {
		return nil, err
	}
	return &UVCDevice{handle: handle}, nil
}

// OpenPath opens a usbfs node such as /dev/bus/usb/001/004.
func OpenPath(path string) (*UVCDevice, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	dev, err := NewUVCDevice(uintptr(fd))
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to wrap %s: %w", path, err)
	}
	return dev, nil
}

func (d *UVCDevice) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	return d.handle.Close()
}

// DeviceInfo parses the class-specific descriptors of the Video Control
// interface in the active configuration.
func (d *UVCDevice) DeviceInfo() (*DeviceInfo, error) {
	config, err := d.handle.GetActiveConfigDescriptor()
	if err != nil {
		return nil, fmt.Errorf("failed to get config descriptor: %w", err)
	}
	for _, iface := range config.Interfaces {
		if len(iface.AltSettings) == 0 {
			continue
		}
		alt := iface.AltSettings[0]
		if isVideoControl(uint8(alt.InterfaceClass), uint8(alt.InterfaceSubClass)) {
			return parseDeviceInfo(d.handle, uint8(alt.InterfaceNumber), alt.Extra)
		}
	}
	return nil, ErrControlInterfaceNotFound
}

func isVideoControl(class, subclass uint8) bool {
	return descriptors.ClassCode(class) == descriptors.ClassCodeVideo &&
		descriptors.SubclassCode(subclass) == descriptors.SubclassCodeVideoControl
}

type DeviceInfo struct {
	handle         transferer
	ifnum          uint8
	Header         *descriptors.HeaderDescriptor
	CameraTerminal *descriptors.CameraTerminalDescriptor
	ProcessingUnit *descriptors.ProcessingUnitDescriptor
	ExtensionUnits []*descriptors.ExtensionUnitDescriptor
	Descriptors    []descriptors.ControlInterface
}

func parseDeviceInfo(handle transferer, ifnum uint8, vcbuf []byte) (*DeviceInfo, error) {
	info := &DeviceInfo{handle: handle, ifnum: ifnum}
	for i := 0; i < len(vcbuf); {
		n := int(vcbuf[i])
		if n < 2 || i+n > len(vcbuf) {
			return nil, fmt.Errorf("descriptor at offset %d: %w", i, descriptors.ErrInvalidDescriptor)
		}
		block := vcbuf[i : i+n]
		i += n
		if descriptors.ClassSpecificDescriptorType(block[1]) != descriptors.ClassSpecificDescriptorTypeInterface {
			// ignore blocks that are not CS_INTERFACE
			continue
		}
		ci, err := descriptors.UnmarshalControlInterface(block)
		if errors.Is(err, descriptors.ErrUnknownDescriptor) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("failed to parse control interface: %w", err)
		}
		info.Descriptors = append(info.Descriptors, ci)
		switch ci := ci.(type) {
		case *descriptors.HeaderDescriptor:
			info.Header = ci
		case *descriptors.CameraTerminalDescriptor:
			if info.CameraTerminal == nil {
				info.CameraTerminal = ci
			}
		case *descriptors.ProcessingUnitDescriptor:
			if info.ProcessingUnit == nil {
				info.ProcessingUnit = ci
			}
		case *descriptors.ExtensionUnitDescriptor:
			info.ExtensionUnits = append(info.ExtensionUnits, ci)
		}
	}
	return info, nil
}

func (info *DeviceInfo) InterfaceNumber() uint8 {
	return info.ifnum
}

func (info *DeviceInfo) UVCVersionString() string {
	if info.Header == nil {
		return "unknown"
	}
	return info.Header.UVC.String()
}

// Controls returns the camera terminal and processing unit controls of the
// device.
func (info *DeviceInfo) Controls() *ControlSet {
	cs := &ControlSet{handle: info.handle, ifnum: info.ifnum, units: map[descriptors.Unit]unit{}}
	if ct := info.CameraTerminal; ct != nil {
		cs.units[descriptors.UnitCameraTerminal] = unit{id: ct.TerminalID, bitmap: ct.ControlsBitmask}
	}
	if pu := info.ProcessingUnit; pu != nil {
		cs.units[descriptors.UnitProcessing] = unit{id: pu.UnitID, bitmap: pu.ControlsBitmask}
	}
	return cs
}
