package numeric

import "fconst/internal/bignum"

// BitAnd, BitOr, BitXor implement IAND/IOR/IEOR.
func BitAnd(a, b bignum.BigInt) bignum.BigInt {
	v, _ := bignum.IntAnd(a, b)
	return v
}

func BitOr(a, b bignum.BigInt) bignum.BigInt {
	v, _ := bignum.IntOr(a, b)
	return v
}

func BitXor(a, b bignum.BigInt) bignum.BigInt {
	v, _ := bignum.IntXor(a, b)
	return v
}

// BitSet implements IBSET: sets bit position pos (0-based from the LSB).
func BitSet(a bignum.BigInt, pos int, byteWidth int) bignum.BigInt {
	width := widthBits(byteWidth)
	bit := bignum.IntFromInt64(1)
	shifted, _ := bignum.IntShl(bit, pos)
	v, _ := bignum.IntOr(a, shifted)
	return truncateToWidth(v, width)
}

// BitClear implements IBCLR: clears bit position pos.
func BitClear(a bignum.BigInt, pos int, byteWidth int) bignum.BigInt {
	width := widthBits(byteWidth)
	all := bignum.TwosComplementWidth(bignum.IntFromInt64(-1), width)
	bit := bignum.IntFromInt64(1)
	shifted, _ := bignum.IntShl(bit, pos)
	mask := bignum.UintXor(all, bignum.TwosComplementWidth(shifted, width))
	masked := bignum.UintAnd(bignum.TwosComplementWidth(a, width), mask)
	return fromBits(masked, width)
}

// BitTest implements BTEST: reports whether bit position pos is set.
func BitTest(a bignum.BigInt, pos int, byteWidth int) bool {
	width := widthBits(byteWidth)
	return bignum.TwosComplementWidth(a, width).Bit(pos)
}

// ShiftLeft, ShiftRight implement the logical shift behind ISHFT's two
// forms (positive count = left, negative = zero-filling right).
func ShiftLeft(a bignum.BigInt, count int, byteWidth int) bignum.BigInt {
	v, _ := bignum.ShiftLogicalWidth(a, count, widthBits(byteWidth))
	return v
}

func ShiftRight(a bignum.BigInt, count int, byteWidth int) bignum.BigInt {
	v, _ := bignum.ShiftLogicalWidth(a, -count, widthBits(byteWidth))
	return v
}

// ShiftArithmetic performs a sign-extending right shift (used by SHIFTA).
func ShiftArithmetic(a bignum.BigInt, count int) bignum.BigInt {
	v, _ := bignum.IntShr(a, count)
	return v
}

// ShiftCircular implements ISHFTC: a circular shift of the low byteWidth*8
// bits (or of the low `size` bits when a SIZE argument narrower than the
// kind is given).
func ShiftCircular(a bignum.BigInt, count int, size int) bignum.BigInt {
	v, _ := bignum.RotateWidth(a, count, size)
	return v
}

// MaskLeft implements MASKL(n): a bit mask with the leftmost n bits set.
func MaskLeft(n int, byteWidth int) bignum.BigInt {
	width := widthBits(byteWidth)
	if n <= 0 {
		return bignum.IntZero()
	}
	if n >= width {
		return fromBits(bignum.TwosComplementWidth(bignum.IntFromInt64(-1), width), width)
	}
	ones := bignum.TwosComplementWidth(bignum.IntFromInt64(-1), n)
	shifted, _ := bignum.UintShl(ones, width-n)
	return fromBits(shifted, width)
}

// MaskRight implements MASKR(n): a bit mask with the rightmost n bits set.
func MaskRight(n int, byteWidth int) bignum.BigInt {
	width := widthBits(byteWidth)
	if n <= 0 {
		return bignum.IntZero()
	}
	if n >= width {
		return fromBits(bignum.TwosComplementWidth(bignum.IntFromInt64(-1), width), width)
	}
	pow2, _ := bignum.UintShl(bignum.UintFromUint64(1), n)
	ones, _ := bignum.UintSub(pow2, bignum.UintFromUint64(1))
	return fromBits(ones, width)
}

// MergeBits implements MERGE_BITS(a,b,mask) = (a AND mask) OR (b AND NOT mask).
func MergeBits(a, b, mask bignum.BigInt, byteWidth int) bignum.BigInt {
	width := widthBits(byteWidth)
	am := bignum.UintAnd(bignum.TwosComplementWidth(a, width), bignum.TwosComplementWidth(mask, width))
	notMask := bignum.UintNotWidth(bignum.TwosComplementWidth(mask, width), width)
	bm := bignum.UintAnd(bignum.TwosComplementWidth(b, width), notMask)
	return fromBits(bignum.UintOr(am, bm), width)
}

// Ibits extracts a field of len bits starting at position pos, right-
// justified, implementing the IBITS intrinsic.
func Ibits(a bignum.BigInt, pos, length, byteWidth int) bignum.BigInt {
	width := widthBits(byteWidth)
	bits := bignum.TwosComplementWidth(a, width)
	shifted, _ := bignum.UintShr(bits, pos)
	if length >= width {
		return fromBits(shifted, width)
	}
	pow2, _ := bignum.UintShl(bignum.UintFromUint64(1), length)
	mask, _ := bignum.UintSub(pow2, bignum.UintFromUint64(1))
	return fromBits(bignum.UintAnd(shifted, mask), width)
}

// PopulationCount implements POPCNT: the number of set bits.
func PopulationCount(a bignum.BigInt, byteWidth int) int {
	width := widthBits(byteWidth)
	return bignum.TwosComplementWidth(a, width).PopCount()
}

// PopulationParity implements POPPAR: POPCNT(a) modulo 2.
func PopulationParity(a bignum.BigInt, byteWidth int) int {
	return PopulationCount(a, byteWidth) % 2
}

// LeadingZeros implements LEADZ over a fixed bit width.
func LeadingZeros(a bignum.BigInt, byteWidth int) int {
	width := widthBits(byteWidth)
	bl := bignum.TwosComplementWidth(a, width).BitLen()
	return width - bl
}

// TrailingZeros implements TRAILZ over a fixed bit width. A zero value has
// no set bit; Fortran defines TRAILZ(0) as the kind's full bit width.
func TrailingZeros(a bignum.BigInt, byteWidth int) int {
	width := widthBits(byteWidth)
	bits := bignum.TwosComplementWidth(a, width)
	if bits.IsZero() {
		return width
	}
	return bits.TrailingZeros()
}

func truncateToWidth(v bignum.BigInt, width int) bignum.BigInt {
	return fromBits(bignum.TwosComplementWidth(v, width), width)
}

func fromBits(bits bignum.BigUint, width int) bignum.BigInt {
	if width <= 0 {
		return bignum.IntZero()
	}
	if !bits.Bit(width - 1) {
		return bignum.BigInt{Limbs: bits.Limbs}
	}
	pow2, _ := bignum.UintShl(bignum.UintFromUint64(1), width)
	mag, _ := bignum.UintSub(pow2, bits)
	if mag.IsZero() {
		return bignum.IntZero()
	}
	return bignum.BigInt{Neg: true, Limbs: mag.Limbs}
}
