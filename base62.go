package ksuid

import "fmt"

const (
	// Base62 alphabet. Digit value and character ordinal increase
	// together, which is what keeps string order equal to numeric order.
	base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// MinString is Min in string form, 27 zero digits.
	MinString = "000000000000000000000000000"

	// MaxString is Max in string form.
	MaxString = "aWgEPTl1tmebfsQzFP4bxwgy80V"
)

var (
	// Base62 decode lookup table
	base62DecodeMap [256]byte
)

func init() {
	// Set up base62 decode map
	for i := range base62DecodeMap {
		base62DecodeMap[i] = 0xFF
	}
	for i := 0; i < len(base62Alphabet); i++ {
		base62DecodeMap[base62Alphabet[i]] = byte(i)
	}
}

// String returns the canonical 27-character base-62 string form.
func (k KSUID) String() string {
	// Interpret the 20 bytes as a 160-bit big-endian integer and
	// convert by repeated division, filling digits right to left.
	var result [EncodedSize]byte
	value := k

	for i := EncodedSize - 1; i >= 0; i-- {
		remainder := uint16(0)
		for j := 0; j < BinarySize; j++ {
			temp := remainder<<8 | uint16(value[j])
			value[j] = byte(temp / 62)
			remainder = temp % 62
		}
		result[i] = base62Alphabet[remainder]
	}

	return string(result[:])
}

// Parse creates a KSUID from its 27-character base-62 string form.
func Parse(s string) (KSUID, error) {
	if len(s) != EncodedSize {
		return Min, fmt.Errorf("%w: %q has length %d, want %d",
			ErrInvalidKSUIDString, s, len(s), EncodedSize)
	}

	var value KSUID
	for i := 0; i < EncodedSize; i++ {
		digit := base62DecodeMap[s[i]]
		if digit == 0xFF {
			return Min, fmt.Errorf("%w: %w: %q at position %d",
				ErrInvalidKSUIDString, ErrInvalidBase62Digit, s[i], i)
		}

		// Multiply value by 62 and add digit
		carry := uint16(digit)
		for j := BinarySize - 1; j >= 0; j-- {
			temp := uint16(value[j])*62 + carry
			value[j] = byte(temp)
			carry = temp >> 8
		}
		if carry != 0 {
			// 27 base-62 digits can name values past 2^160-1
			return Min, fmt.Errorf("%w: %q exceeds the 160-bit value space",
				ErrInvalidKSUIDString, s)
		}
	}

	return value, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) KSUID {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}
