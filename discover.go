package uvc

import (
	"fmt"

	usb "github.com/kevmo314/go-usb"
	"github.com/samber/lo"
)

// Candidate is an enumerated USB device exposing a Video Control interface.
type Candidate struct {
	Path      string
	VendorID  uint16
	ProductID uint16
	Product   string
	open      func() (*usb.DeviceHandle, error)
}

func (c Candidate) String() string {
	if c.Product != "" {
		return fmt.Sprintf("%04x:%04x %s (%s)", c.VendorID, c.ProductID, c.Product, c.Path)
	}
	return fmt.Sprintf("%04x:%04x (%s)", c.VendorID, c.ProductID, c.Path)
}

func (c Candidate) Open() (*UVCDevice, error) {
	handle, err := c.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	return &UVCDevice{handle: handle}, nil
}

// Filter narrows discovery to a vendor and product. Zero matches anything.
type Filter struct {
	VendorID  uint16
	ProductID uint16
}

func (f Filter) Match(c Candidate) bool {
	return (f.VendorID == 0 || f.VendorID == c.VendorID) &&
		(f.ProductID == 0 || f.ProductID == c.ProductID)
}

// Discover lists the USB devices that have a Video Control interface in
// their active configuration, in enumeration order. Devices that cannot be
// opened are skipped.
func Discover() ([]Candidate, error) {
	devices, err := usb.DeviceList()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	var candidates []Candidate
	for _, dev := range devices {
		handle, err := dev.Open()
		if err != nil {
			continue
		}
		config, err := handle.GetActiveConfigDescriptor()
		handle.Close()
		if err != nil {
			continue
		}
		video := false
		for _, iface := range config.Interfaces {
			for _, alt := range iface.AltSettings {
				if isVideoControl(uint8(alt.InterfaceClass), uint8(alt.InterfaceSubClass)) {
					video = true
				}
			}
		}
		if !video {
			continue
		}
		c := Candidate{
			Path:      dev.Path,
			VendorID:  uint16(dev.Descriptor.VendorID),
			ProductID: uint16(dev.Descriptor.ProductID),
			open:      dev.Open,
		}
		if dev.SysfsStrings != nil {
			c.Product = dev.SysfsStrings.Product
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// OpenFirst opens the first discovered device that matches the filter.
func OpenFirst(filter Filter) (*UVCDevice, Candidate, error) {
	candidates, err := Discover()
	if err != nil {
		return nil, Candidate{}, err
	}
	c, ok := lo.Find(candidates, filter.Match)
	if !ok {
		return nil, Candidate{}, ErrNoDevice
	}
	dev, err := c.Open()
	return dev, c, err
}
