package memalloc

import "testing"

func TestAlignUp(t *testing.T) {
	cases := []struct {
		p, alignment, want uintptr
	}{
		{0x0, 8, 0x0},
		{0x1, 8, 0x8},
		{0xc, 8, 0x10},
		{0x10, 8, 0x10},
		{0xb, 4, 0xc},
	}
	for _, c := range cases {
		if g := AlignUp(c.p, c.alignment); g != c.want {
			t.Errorf("AlignUp(%#x, %d) = %#x, want %#x", c.p, c.alignment, g, c.want)
		}
	}
}

func TestAdjustment(t *testing.T) {
	if g := Adjustment(0xb, 4); g != 1 {
		t.Errorf("Adjustment(0xb, 4) = %d, want 1", g)
	}

	aligned := AlignUp(0xc, 8)
	if aligned != 0x10 {
		t.Fatalf("AlignUp(0xc, 8) = %#x, want 0x10", aligned)
	}
	if g := Adjustment(aligned, 8); g != 0 {
		t.Errorf("Adjustment(%#x, 8) = %d, want 0", aligned, g)
	}

	for p := uintptr(0); p < 64; p++ {
		for _, alignment := range []uintptr{1, 2, 4, 8, 16, 32} {
			d := Adjustment(p, alignment)
			if d >= alignment {
				t.Fatalf("Adjustment(%d, %d) = %d, want < %d", p, alignment, d, alignment)
			}
			if (p+d)%alignment != 0 {
				t.Fatalf("Adjustment(%d, %d) = %d, (p+d) not aligned", p, alignment, d)
			}
		}
	}
}

func TestAdjustmentWithHeader(t *testing.T) {
	aligned := AlignUp(0xf, 8)
	for h := uintptr(0); h <= 32; h++ {
		d := AdjustmentWithHeader(aligned, 8, h)
		if d < h {
			t.Fatalf("AdjustmentWithHeader(%#x, 8, %d) = %d, want >= %d", aligned, h, d, h)
		}
		if (aligned+d)%8 != 0 {
			t.Fatalf("AdjustmentWithHeader(%#x, 8, %d) = %d, not aligned", aligned, h, d)
		}
	}
}

func TestAdjustmentWithHeaderIsMinimal(t *testing.T) {
	// No smaller d' >= h sharing the same residue class should also satisfy
	// alignment: d must be the smallest multiple-of-alignment bump on top
	// of the bare adjustment that is still >= headerSize.
	const alignment = 8
	for p := uintptr(0); p < 64; p++ {
		base := Adjustment(p, alignment)
		for h := uintptr(0); h <= 40; h++ {
			d := AdjustmentWithHeader(p, alignment, h)
			if d < base || (d-base)%alignment != 0 {
				t.Fatalf("AdjustmentWithHeader(%d,%d,%d)=%d not in base+k*alignment", p, alignment, h, d)
			}
			if d >= alignment+base && d-alignment >= h {
				t.Fatalf("AdjustmentWithHeader(%d,%d,%d)=%d not minimal, %d also works", p, alignment, h, d, d-alignment)
			}
		}
	}
}

func TestIsAlignedAndIsAdjusted(t *testing.T) {
	region := NewLinear(64)
	defer region.Close()

	a := region.Allocate(1, 16)
	if !IsAligned(a, 16) {
		t.Fatalf("expected %p to be 16-byte aligned", a)
	}
	if !IsAdjusted(a, 16) {
		t.Fatalf("expected %p to be considered adjusted to 16", a)
	}
	region.Deallocate(a)
	region.Clear()
}
