package requests

import "testing"

func TestInfo_Has(t *testing.T) {
	info := Info(0x03)
	if !info.Has(InfoSupportsGet) || !info.Has(InfoSupportsSet) {
		t.Errorf("Info(%#x) should support get and set", uint8(info))
	}
	if info.Has(InfoDisabledByAuto) {
		t.Errorf("Info(%#x).Has(InfoDisabledByAuto) = true", uint8(info))
	}
	if !info.Has(InfoSupportsGet | InfoSupportsSet) {
		t.Errorf("Info(%#x) should have both flags", uint8(info))
	}
}
