package descriptor

type Kind uint8

const (
	KindBool Kind = iota
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindList
	KindArray
	KindOption
	KindObject
	KindVoid
)

var kindNames = [...]string{
	KindBool:   "boolean",
	KindByte:   "byte",
	KindChar:   "char",
	KindShort:  "short",
	KindInt:    "int",
	KindLong:   "long",
	KindFloat:  "float",
	KindDouble: "double",
	KindString: "string",
	KindList:   "list",
	KindArray:  "array",
	KindOption: "option",
	KindObject: "object",
	KindVoid:   "void",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k maps to a JVM primitive slot.
// Primitive slots are never nullable.
func (k Kind) IsPrimitive() bool {
	return k <= KindDouble
}

// IsReference reports whether values of this kind live behind a VM
// object reference.
func (k Kind) IsReference() bool {
	switch k {
	case KindString, KindList, KindArray, KindObject:
		return true
	default:
		return false
	}
}

// primitiveCodes are the single-token JVM type codes.
var primitiveCodes = [...]byte{
	KindBool:   'Z',
	KindByte:   'B',
	KindChar:   'C',
	KindShort:  'S',
	KindInt:    'I',
	KindLong:   'J',
	KindFloat:  'F',
	KindDouble: 'D',
}

// Code returns the one-token descriptor code for a primitive kind,
// or 0 for non-primitives.
func (k Kind) Code() byte {
	if k.IsPrimitive() {
		return primitiveCodes[k]
	}
	return 0
}
