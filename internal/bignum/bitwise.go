package bignum

// UintAnd returns the bitwise AND of a and b.
func UintAnd(a, b BigUint) BigUint {
	al := trimLimbs(a.Limbs)
	bl := trimLimbs(b.Limbs)
	if len(al) == 0 || len(bl) == 0 {
		return BigUint{}
	}
	n := len(al)
	if len(bl) < n {
		n = len(bl)
	}
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = al[i] & bl[i]
	}
	return BigUint{Limbs: trimLimbs(out)}
}

// UintOr returns the bitwise OR of a and b.
func UintOr(a, b BigUint) BigUint {
	al := trimLimbs(a.Limbs)
	bl := trimLimbs(b.Limbs)
	n := len(al)
	if len(bl) > n {
		n = len(bl)
	}
	if n == 0 {
		return BigUint{}
	}
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		var av, bv uint32
		if i < len(al) {
			av = al[i]
		}
		if i < len(bl) {
			bv = bl[i]
		}
		out[i] = av | bv
	}
	return BigUint{Limbs: trimLimbs(out)}
}

// UintXor returns the bitwise XOR of a and b.
func UintXor(a, b BigUint) BigUint {
	al := trimLimbs(a.Limbs)
	bl := trimLimbs(b.Limbs)
	n := len(al)
	if len(bl) > n {
		n = len(bl)
	}
	if n == 0 {
		return BigUint{}
	}
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		var av, bv uint32
		if i < len(al) {
			av = al[i]
		}
		if i < len(bl) {
			bv = bl[i]
		}
		out[i] = av ^ bv
	}
	return BigUint{Limbs: trimLimbs(out)}
}

// UintNotWidth returns the one's complement of u within a fixed bit width
// (the bits above width are assumed zero). Used by MERGE_BITS
// (numeric.MergeBits), where the result must stay inside the declared
// kind's width.
func UintNotWidth(u BigUint, width int) BigUint {
	if width <= 0 {
		return BigUint{}
	}
	words := (width + 31) / 32
	limbs := trimLimbs(u.Limbs)
	out := make([]uint32, words)
	for i := 0; i < words; i++ {
		var v uint32
		if i < len(limbs) {
			v = limbs[i]
		}
		out[i] = ^v
	}
	remBits := width % 32
	if remBits != 0 {
		mask := uint32(1<<remBits) - 1
		out[words-1] &= mask
	}
	return BigUint{Limbs: trimLimbs(out)}
}

// IntAnd returns the bitwise AND of a and b using two's complement semantics.
func IntAnd(a, b BigInt) (BigInt, error) {
	return intBitOp(a, b, UintAnd)
}

// IntOr returns the bitwise OR of a and b using two's complement semantics.
func IntOr(a, b BigInt) (BigInt, error) {
	return intBitOp(a, b, UintOr)
}

// IntXor returns the bitwise XOR of a and b using two's complement semantics.
func IntXor(a, b BigInt) (BigInt, error) {
	return intBitOp(a, b, UintXor)
}

// IntShl returns a << bitsCount using arithmetic shift semantics.
func IntShl(a BigInt, bitsCount int) (BigInt, error) {
	if bitsCount < 0 {
		return BigInt{}, ErrNegativeShift
	}
	if bitsCount == 0 || a.IsZero() {
		return BigInt{Neg: a.Neg, Limbs: trimLimbs(a.Limbs)}, nil
	}
	mag := BigUint{Limbs: trimLimbs(a.Limbs)}
	shifted, err := UintShl(mag, bitsCount)
	if err != nil {
		return BigInt{}, err
	}
	if shifted.IsZero() {
		return BigInt{}, nil
	}
	return BigInt{Neg: a.Neg, Limbs: shifted.Limbs}, nil
}

// IntShr returns a >> bitsCount using arithmetic (sign-preserving) shift
// semantics.
func IntShr(a BigInt, bitsCount int) (BigInt, error) {
	if bitsCount < 0 {
		return BigInt{}, ErrNegativeShift
	}
	if bitsCount == 0 || a.IsZero() {
		return BigInt{Neg: a.Neg, Limbs: trimLimbs(a.Limbs)}, nil
	}
	mag := BigUint{Limbs: trimLimbs(a.Limbs)}
	if !a.Neg {
		shifted, err := UintShr(mag, bitsCount)
		if err != nil {
			return BigInt{}, err
		}
		if shifted.IsZero() {
			return BigInt{}, nil
		}
		return BigInt{Neg: false, Limbs: shifted.Limbs}, nil
	}
	pow2, err := UintShl(UintFromUint64(1), bitsCount)
	if err != nil {
		return BigInt{}, err
	}
	pow2Minus1, err := UintSub(pow2, UintFromUint64(1))
	if err != nil {
		return BigInt{}, err
	}
	sum, err := UintAdd(mag, pow2Minus1)
	if err != nil {
		return BigInt{}, err
	}
	shifted, err := UintShr(sum, bitsCount)
	if err != nil {
		return BigInt{}, err
	}
	if shifted.IsZero() {
		return BigInt{}, nil
	}
	return BigInt{Neg: true, Limbs: shifted.Limbs}, nil
}

// ShiftLogicalWidth implements ISHFT: a left shift for positive counts, a
// zero-filling (logical) right shift for negative counts, within a fixed bit
// width. Shifts with |count| >= width yield zero, matching the intrinsic's
// defined behavior.
func ShiftLogicalWidth(a BigInt, count int, width int) (BigInt, error) {
	if width <= 0 {
		return BigInt{}, nil
	}
	bits := TwosComplementWidth(a, width)
	if count >= 0 {
		if count >= width {
			return BigInt{}, nil
		}
		shifted, err := UintShl(bits, count)
		if err != nil {
			return BigInt{}, err
		}
		return fromTwosComplementWidth(maskWidth(shifted, width), width), nil
	}
	n := -count
	if n >= width {
		return BigInt{}, nil
	}
	shifted, err := UintShr(bits, n)
	if err != nil {
		return BigInt{}, err
	}
	return fromTwosComplementWidth(shifted, width), nil
}

// RotateWidth implements ISHFTC: a circular shift of the low `width` bits.
// Positive counts rotate left, negative counts rotate right.
func RotateWidth(a BigInt, count int, width int) (BigInt, error) {
	if width <= 0 {
		return BigInt{}, nil
	}
	n := count % width
	if n < 0 {
		n += width
	}
	if n == 0 {
		return a, nil
	}
	bits := TwosComplementWidth(a, width)
	left, err := UintShl(bits, n)
	if err != nil {
		return BigInt{}, err
	}
	right, err := UintShr(bits, width-n)
	if err != nil {
		return BigInt{}, err
	}
	combined := maskWidth(UintOr(left, right), width)
	return fromTwosComplementWidth(combined, width), nil
}

// TwosComplementWidth returns the two's complement bit pattern of a within a
// fixed width, as an unsigned magnitude.
func TwosComplementWidth(a BigInt, width int) BigUint {
	mag := maskWidth(BigUint{Limbs: trimLimbs(a.Limbs)}, width)
	if !a.Neg || mag.IsZero() {
		return mag
	}
	pow2, err := UintShl(UintFromUint64(1), width)
	if err != nil {
		return mag
	}
	comp, err := UintSub(pow2, mag)
	if err != nil {
		return mag
	}
	return maskWidth(comp, width)
}

func fromTwosComplementWidth(bits BigUint, width int) BigInt {
	if width <= 0 {
		return BigInt{}
	}
	if !bits.Bit(width - 1) {
		out := trimLimbs(bits.Limbs)
		if len(out) == 0 {
			return BigInt{}
		}
		return BigInt{Limbs: out}
	}
	pow2, err := UintShl(UintFromUint64(1), width)
	if err != nil {
		return BigInt{}
	}
	mag, err := UintSub(pow2, bits)
	if err != nil {
		return BigInt{}
	}
	if mag.IsZero() {
		return BigInt{}
	}
	return BigInt{Neg: true, Limbs: mag.Limbs}
}

func maskWidth(u BigUint, width int) BigUint {
	if width <= 0 {
		return BigUint{}
	}
	words := (width + 31) / 32
	limbs := trimLimbs(u.Limbs)
	if len(limbs) > words {
		limbs = limbs[:words]
	}
	out := make([]uint32, words)
	copy(out, limbs)
	remBits := width % 32
	if remBits != 0 {
		mask := uint32(1<<remBits) - 1
		out[words-1] &= mask
	}
	return BigUint{Limbs: trimLimbs(out)}
}

func intBitOp(a, b BigInt, op func(BigUint, BigUint) BigUint) (BigInt, error) {
	aa := BigUint{Limbs: trimLimbs(a.Limbs)}
	bb := BigUint{Limbs: trimLimbs(b.Limbs)}
	if aa.IsZero() && bb.IsZero() {
		return BigInt{}, nil
	}
	width := maxInt(aa.BitLen(), bb.BitLen()) + 1
	pow2, err := UintShl(UintFromUint64(1), width)
	if err != nil {
		return BigInt{}, err
	}
	repA, err := twosComplement(aa, a.Neg, pow2)
	if err != nil {
		return BigInt{}, err
	}
	repB, err := twosComplement(bb, b.Neg, pow2)
	if err != nil {
		return BigInt{}, err
	}
	res := op(repA, repB)
	if !uintBitSet(res.Limbs, width-1) {
		out := trimLimbs(res.Limbs)
		if len(out) == 0 {
			return BigInt{}, nil
		}
		return BigInt{Limbs: out}, nil
	}
	mag, err := UintSub(pow2, res)
	if err != nil {
		return BigInt{}, err
	}
	if mag.IsZero() {
		return BigInt{}, nil
	}
	return BigInt{Neg: true, Limbs: mag.Limbs}, nil
}

func twosComplement(mag BigUint, neg bool, pow2 BigUint) (BigUint, error) {
	if mag.IsZero() || !neg {
		return mag, nil
	}
	return UintSub(pow2, mag)
}
