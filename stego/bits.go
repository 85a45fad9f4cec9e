package stego

// Bit is one binary digit.
type Bit = bool

// BitGroup is a fixed-width bit sequence, most significant bit first.
type BitGroup []Bit

// maxWidth keeps every group representable as a non-negative rune.
const maxWidth = 31

// ToBitGroups writes each value as a width-bit group, most significant bit
// first. A value that is negative or needs more than width bits fails with
// KindValueTooLarge.
func ToBitGroups(scalars []rune, width int) ([]BitGroup, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	limit := int64(1) << width
	groups := make([]BitGroup, 0, len(scalars))
	for i, v := range scalars {
		if v < 0 || int64(v) >= limit {
			return nil, newErrorf(KindValueTooLarge, RuleValueTooLarge,
				"value %#x at index %d does not fit in %d bits", v, i, width)
		}
		g := make(BitGroup, width)
		for b := 0; b < width; b++ {
			g[b] = v&(1<<(width-1-b)) != 0
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// ToScalars is the inverse of ToBitGroups. Every group must hold exactly
// width bits; otherwise it fails with KindMalformedPayload.
func ToScalars(groups []BitGroup, width int) ([]rune, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	out := make([]rune, 0, len(groups))
	for i, g := range groups {
		if len(g) != width {
			return nil, newErrorf(KindMalformedPayload, RuleGroupLength,
				"group %d has %d bits, want %d", i, len(g), width)
		}
		var v rune
		for _, bit := range g {
			v <<= 1
			if bit {
				v |= 1
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func checkWidth(width int) error {
	if width < 1 || width > maxWidth {
		return newErrorf(KindInternal, RuleBadWidth, "bit width %d outside 1..%d", width, maxWidth)
	}
	return nil
}

// digits splits a group into BitsPerCarrier-sized digits, most significant first.
func digits(g BitGroup) []uint8 {
	out := make([]uint8, 0, (len(g)+BitsPerCarrier-1)/BitsPerCarrier)
	for i := 0; i < len(g); i += BitsPerCarrier {
		var d uint8
		for j := i; j < i+BitsPerCarrier; j++ {
			d <<= 1
			if j < len(g) && g[j] {
				d |= 1
			}
		}
		out = append(out, d)
	}
	return out
}

// groupsFromDigits reassembles BitWidth-sized groups from carrier digits.
// Leftover digits that do not complete a group end up in a short final group,
// which ToScalars rejects.
func groupsFromDigits(ds []uint8) []BitGroup {
	groups := make([]BitGroup, 0, (len(ds)+CarriersPerGroup-1)/CarriersPerGroup)
	var cur BitGroup
	for _, d := range ds {
		for b := BitsPerCarrier - 1; b >= 0; b-- {
			cur = append(cur, d&(1<<b) != 0)
		}
		if len(cur) == BitWidth {
			groups = append(groups, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}
