package jvm

import "math"

// Ref is an opaque handle to a VM-resident object. The zero value is the
// VM's null reference. Handles are only meaningful to the Env that
// produced them and only for the duration of the call that produced it.
type Ref uint64

// IsNil reports whether r is the VM null reference.
func (r Ref) IsNil() bool { return r == 0 }

// Value is one VM call slot, the Go analogue of a jvalue union: either a
// primitive (stored bit-exact) or an object reference.
type Value struct {
	bits  uint64
	ref   Ref
	isRef bool
}

func BoolValue(b bool) Value {
	if b {
		return Value{bits: 1}
	}
	return Value{}
}

func ByteValue(v int8) Value      { return Value{bits: uint64(uint8(v))} }
func CharValue(v uint16) Value    { return Value{bits: uint64(v)} }
func ShortValue(v int16) Value    { return Value{bits: uint64(uint16(v))} }
func IntValue(v int32) Value      { return Value{bits: uint64(uint32(v))} }
func LongValue(v int64) Value     { return Value{bits: uint64(v)} }
func FloatValue(v float32) Value  { return Value{bits: uint64(math.Float32bits(v))} }
func DoubleValue(v float64) Value { return Value{bits: math.Float64bits(v)} }
func RefValue(r Ref) Value        { return Value{ref: r, isRef: true} }

// Null is the VM null reference as a call slot.
func Null() Value { return Value{isRef: true} }

func (v Value) Bool() bool       { return v.bits != 0 }
func (v Value) Byte() int8       { return int8(uint8(v.bits)) }
func (v Value) Char() uint16     { return uint16(v.bits) }
func (v Value) Short() int16     { return int16(uint16(v.bits)) }
func (v Value) Int() int32       { return int32(uint32(v.bits)) }
func (v Value) Long() int64      { return int64(v.bits) }
func (v Value) Float() float32   { return math.Float32frombits(uint32(v.bits)) }
func (v Value) Double() float64  { return math.Float64frombits(v.bits) }
func (v Value) Ref() Ref         { return v.ref }
func (v Value) IsRef() bool      { return v.isRef }
func (v Value) IsNullRef() bool  { return v.isRef && v.ref.IsNil() }
