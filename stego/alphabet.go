package stego

const (
	// BitWidth is the fixed size of one bit group. Encoder and scanner must agree
	// on it; it is not configurable.
	BitWidth = 8

	// BitsPerCarrier is the number of bits carried by one carrier character.
	BitsPerCarrier = 2

	// CarriersPerGroup is the number of carrier characters that spell one group.
	CarriersPerGroup = BitWidth / BitsPerCarrier
)

// carrierAlphabet maps a 2-bit digit to its carrier character.
var carrierAlphabet = [1 << BitsPerCarrier]rune{
	'\u2061', // FUNCTION APPLICATION
	'\u2062', // INVISIBLE TIMES
	'\u2063', // INVISIBLE SEPARATOR
	'\u2064', // INVISIBLE PLUS
}

const (
	carrierFirst = '\u2061'
	carrierLast  = '\u2064'
)

// Alphabet returns a copy of the carrier alphabet, ordered by digit value.
func Alphabet() []rune {
	out := make([]rune, len(carrierAlphabet))
	copy(out, carrierAlphabet[:])
	return out
}

// IsCarrier reports whether r belongs to the carrier alphabet.
func IsCarrier(r rune) bool {
	return r >= carrierFirst && r <= carrierLast
}

// carrierFor returns the carrier character for a digit.
func carrierFor(digit uint8) (rune, error) {
	if int(digit) >= len(carrierAlphabet) {
		return 0, newErrorf(KindInternal, RuleInternalAlphabet, "digit %d outside carrier alphabet", digit)
	}
	return carrierAlphabet[digit], nil
}

// digitFor is the inverse of carrierFor. ok is false for non-carrier runes.
func digitFor(r rune) (digit uint8, ok bool) {
	if !IsCarrier(r) {
		return 0, false
	}
	return uint8(r - carrierFirst), true
}
