package descriptors

import "fmt"

type BinaryCodedDecimal uint16

// String formats a bcdUVC release number, e.g. 0x0150 as "1.50".
func (bcd BinaryCodedDecimal) String() string {
	return fmt.Sprintf("%x.%02x", uint16(bcd)>>8, uint16(bcd)&0xff)
}
