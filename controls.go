package uvc

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kevmo314/uvc-controls/pkg/descriptors"
	"github.com/kevmo314/uvc-controls/pkg/fields"
	"github.com/kevmo314/uvc-controls/pkg/requests"
	"github.com/samber/lo"
)

type transferer interface {
	ControlTransfer(requestType, request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error)
}

type unit struct {
	id     uint8
	bitmap []byte
}

// ControlSet exposes the camera terminal and processing unit controls of a
// device. It implements fields.Source.
type ControlSet struct {
	handle transferer
	ifnum  uint8
	units  map[descriptors.Unit]unit
}

var _ fields.Source = (*ControlSet)(nil)

func (cs *ControlSet) lookup(name string) (descriptors.Control, unit, error) {
	c, ok := descriptors.LookupControl(name)
	if !ok {
		return c, unit{}, fmt.Errorf("%w: %s", ErrUnknownControl, name)
	}
	u, ok := cs.units[c.Unit]
	if !ok || !c.Supported(u.bitmap) {
		return c, unit{}, fmt.Errorf("%w: %s not supported by %s", ErrUnknownControl, name, c.Unit)
	}
	return c, u, nil
}

func (cs *ControlSet) transfer(ctx context.Context, request requests.RequestCode, c descriptors.Control, u unit, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	requestType := requests.RequestTypeVideoInterfaceGetRequest
	if request == requests.RequestCodeSetCur {
		requestType = requests.RequestTypeVideoInterfaceSetRequest
	}
	// wValue: control selector in the high byte
	wValue := uint16(c.Selector) << 8
	// wIndex: entity ID in the high byte, interface in the low byte
	wIndex := uint16(u.id)<<8 | uint16(cs.ifnum)

	n, err := cs.handle.ControlTransfer(uint8(requestType), uint8(request), wValue, wIndex, buf, 0)
	if err != nil {
		return fmt.Errorf("control transfer %#02x for %s failed: %w", uint8(request), c.Name, err)
	}
	if n < len(buf) {
		return fmt.Errorf("control transfer %#02x for %s: short transfer of %d bytes, want %d", uint8(request), c.Name, n, len(buf))
	}
	return nil
}

func (cs *ControlSet) read(ctx context.Context, request requests.RequestCode, c descriptors.Control, u unit) ([]int64, error) {
	buf := make([]byte, c.Length())
	if err := cs.transfer(ctx, request, c, u, buf); err != nil {
		return nil, err
	}
	return c.Decode(buf)
}

// Controls returns the names of the controls advertised in bmControls, in
// table order.
func (cs *ControlSet) Controls(ctx context.Context) ([]string, error) {
	return lo.FilterMap(descriptors.Controls, func(c descriptors.Control, _ int) (string, bool) {
		u, ok := cs.units[c.Unit]
		return c.Name, ok && c.Supported(u.bitmap)
	}), nil
}

// Info issues GET_INFO for a control.
func (cs *ControlSet) Info(ctx context.Context, name string) (requests.Info, error) {
	c, u, err := cs.lookup(name)
	if err != nil {
		return 0, err
	}
	buf := make([]byte, 1)
	if err := cs.transfer(ctx, requests.RequestCodeGetInfo, c, u, buf); err != nil {
		return 0, err
	}
	return requests.Info(buf[0]), nil
}

func (cs *ControlSet) Descriptor(ctx context.Context, name string) (fields.Descriptor, error) {
	c, _, err := cs.lookup(name)
	if err != nil {
		return fields.Descriptor{}, err
	}
	info, err := cs.Info(ctx, name)
	if err != nil {
		return fields.Descriptor{}, err
	}
	if !info.Has(requests.InfoSupportsGet) {
		return fields.Descriptor{}, fmt.Errorf("%s does not support GET_CUR (info %#02x)", name, uint8(info))
	}
	desc := fields.Descriptor{Name: c.Name, CanQueryRange: c.Ranged}
	for _, f := range c.Fields {
		sf := fields.SubField{Name: f.Name, Type: "number"}
		if f.Boolean {
			sf.Type = "boolean"
		}
		for _, o := range f.Options {
			sf.Options = append(sf.Options, fields.Option{Label: o.Label, Code: float64(o.Code)})
		}
		desc.SubFields = append(desc.SubFields, sf)
	}
	return desc, nil
}

func (cs *ControlSet) Get(ctx context.Context, name string) (fields.RawValue, error) {
	c, u, err := cs.lookup(name)
	if err != nil {
		return nil, err
	}
	values, err := cs.read(ctx, requests.RequestCodeGetCur, c, u)
	if err != nil {
		return nil, err
	}
	if len(c.Fields) == 1 {
		return fields.Scalar(values[0]), nil
	}
	md := make(fields.MultiDimensional, len(c.Fields))
	for i, f := range c.Fields {
		md[f.Name] = float64(values[i])
	}
	return md, nil
}

// Range issues GET_MIN and GET_MAX. Controls that do not accept range
// requests return fields.ErrRangeUnsupported.
func (cs *ControlSet) Range(ctx context.Context, name string) (fields.RawRange, error) {
	c, u, err := cs.lookup(name)
	if err != nil {
		return nil, err
	}
	if !c.Ranged {
		return nil, fields.ErrRangeUnsupported
	}
	mins, err := cs.read(ctx, requests.RequestCodeGetMin, c, u)
	if err != nil {
		return nil, err
	}
	maxs, err := cs.read(ctx, requests.RequestCodeGetMax, c, u)
	if err != nil {
		return nil, err
	}
	rng := make(fields.RawRange, len(c.Fields))
	for i := range c.Fields {
		rng[i] = fields.MinMax{Min: float64(mins[i]), Max: float64(maxs[i])}
	}
	return rng, nil
}

// Set writes the whole control payload with a single SET_CUR. Sub-fields
// missing from a MultiDimensional value keep their current value.
func (cs *ControlSet) Set(ctx context.Context, name string, value fields.RawValue) error {
	c, u, err := cs.lookup(name)
	if err != nil {
		return err
	}
	var values []int64
	switch v := value.(type) {
	case fields.Scalar:
		if len(c.Fields) != 1 {
			return fmt.Errorf("%s has %d fields, cannot set a scalar", name, len(c.Fields))
		}
		values = []int64{toWire(float64(v), c.Fields[0])}
	case fields.MultiDimensional:
		current, err := cs.read(ctx, requests.RequestCodeGetCur, c, u)
		if err != nil {
			return err
		}
		values = current
		for i, f := range c.Fields {
			if x, ok := v[f.Name]; ok {
				values[i] = toWire(x, f)
			}
		}
	default:
		return fmt.Errorf("unsupported value %T for %s", value, name)
	}
	buf, err := c.Encode(values)
	if err != nil {
		return err
	}
	return cs.transfer(ctx, requests.RequestCodeSetCur, c, u, buf)
}

// toWire truncates toward zero and clamps to the field's width.
func toWire(v float64, f descriptors.ControlField) int64 {
	if math.IsNaN(v) {
		return 0
	}
	floor, ceil := f.Bounds()
	return int64(math.Max(float64(floor), math.Min(float64(ceil), math.Trunc(v))))
}
