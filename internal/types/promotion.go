package types

// numericRank orders numeric categories for mixed-type arithmetic promotion:
// Integer widens to Real widens to Complex. Logical and Character never
// promote against anything; Derived participates in no arithmetic.
func numericRank(cat Category) int {
	switch cat {
	case CategoryInteger:
		return 0
	case CategoryReal:
		return 1
	case CategoryComplex:
		return 2
	default:
		return -1
	}
}

// IsNumeric reports whether cat is Integer, Real, or Complex.
func IsNumeric(cat Category) bool {
	return numericRank(cat) >= 0
}

// PromoteOperands derives the common operand type for a binary arithmetic
// operator per Fortran's numeric conversion rules: the category with higher
// rank wins (Integer < Real < Complex); within equal rank the wider kind
// wins; a Real/Complex operand facing a narrower Integer keeps its own kind
// rather than widening to match the integer's byte count (Fortran does not
// have a "common numeric width" rule that crosses category — an INTEGER
// operand converts to the other operand's type outright). ok is false when
// neither operand is numeric, or the two categories cannot be compared (e.g.
// Character vs Integer).
func PromoteOperands(a, b Type) (Type, bool) {
	ra, rb := numericRank(a.Category), numericRank(b.Category)
	if ra < 0 || rb < 0 {
		return Invalid, false
	}
	switch {
	case ra > rb:
		return promoteWithinCategory(a, b), true
	case rb > ra:
		return promoteWithinCategory(b, a), true
	default:
		if a.Kind >= b.Kind {
			return a, true
		}
		return b, true
	}
}

// promoteWithinCategory returns the wider-category operand's type, with its
// kind widened if the narrower operand (once converted) would need more
// precision — Fortran keeps the wider category's kind unless the narrower
// operand's kind is itself larger (e.g. REAL(4) + INTEGER(8) keeps REAL(8)
// so the integer's full range survives conversion).
func promoteWithinCategory(wide, narrow Type) Type {
	if narrow.Kind > wide.Kind && KindSupported(wide.Category, narrow.Kind) {
		return Type{Category: wide.Category, Kind: narrow.Kind}
	}
	return wide
}

// RelationalOperandType derives the single operand type both sides of a
// Relational are converted to before comparison, per spec.md's Relational
// promotion rule. Logical and Complex operands are rejected by the caller
// before this is consulted (Relational is defined only for
// Integer/Real/Character operands of like category, or mixed Integer/Real).
func RelationalOperandType(a, b Type) (Type, bool) {
	if a.Category == CategoryCharacter && b.Category == CategoryCharacter {
		if a.Kind != b.Kind {
			return Invalid, false
		}
		return a, true
	}
	if a.Category == CategoryCharacter || b.Category == CategoryCharacter {
		return Invalid, false
	}
	if a.Category == CategoryLogical || b.Category == CategoryLogical {
		return Invalid, false
	}
	return PromoteOperands(a, b)
}

// WidestKind returns the widest supported kind for a category, used when a
// literal or intrinsic result needs "the biggest kind available" (e.g. BOZ
// widened to the broadest INTEGER kind for a width-agnostic host intrinsic).
func WidestKind(cat Category) int {
	switch cat {
	case CategoryInteger:
		return IntegerKinds[len(IntegerKinds)-1]
	case CategoryReal, CategoryComplex:
		return RealKinds[len(RealKinds)-1]
	case CategoryLogical:
		return LogicalKinds[len(LogicalKinds)-1]
	case CategoryCharacter:
		return CharacterKinds[len(CharacterKinds)-1]
	default:
		return 0
	}
}
