// Package descriptor computes canonical JVM wire-format type descriptors.
//
// A descriptor uniquely identifies a value's shape in the VM's type
// system: a one-token code for primitives (I, Z, J, ...), a class path
// for reference types (Ljava/lang/String;), and composite markers for
// arrays ([I, [Ljava/lang/String;). Collections are erased to
// Ljava/util/List; at the ABI level; the element type is carried
// out-of-band on the Type value for overload resolution.
//
// Descriptor computation is structural, deterministic and side-effect
// free. Shapes the VM cannot represent (an optional of a primitive,
// method names the symbol mangling cannot express) are rejected when the
// Type is built, never at call time.
//
//	Go shape          Type                    Descriptor
//	────────────────────────────────────────────────────────────
//	bool              Bool                    Z
//	int8              Byte                    B
//	uint16            Char                    C
//	int16             Short                   S
//	int32             Int                     I
//	int64             Long                    J
//	float32           Float                   F
//	float64           Double                  D
//	string            String                  Ljava/lang/String;
//	[]T               ListOf(T)               Ljava/util/List;
//	array of byte     ArrayOf(Byte)           [B
//	array of string   ArrayOf(String)         [Ljava/lang/String;
//	*T                OptionOf(T)             descriptor of T
//	mapped class      Class("com.x", "User")  Lcom/x/User;
package descriptor
