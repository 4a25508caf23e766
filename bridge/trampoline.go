package bridge

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/vmglue/javabind/convert"
	"github.com/vmglue/javabind/jvm"
)

// DefaultThrowClass is the exception raised on checked conversion
// failure unless the declaration overrides it.
const DefaultThrowClass = "java/lang/RuntimeException"

// DefaultThrowMessage is used when a failure carries no description of
// its own.
const DefaultThrowMessage = "VM conversion error"

// Trampoline is one exported entry point: the body behind a mangled
// native symbol. Invoke performs, in order: pending exception check,
// parameter conversion in declaration order, the Go body, result
// conversion. Under the checked discipline any conversion failure raises
// a VM exception and yields a zeroed slot without running the body;
// under the unchecked discipline a shape mismatch panics, which is the
// documented contract breach.
type Trampoline struct {
	Symbol    string
	Class     string
	Name      string
	Signature string

	discipline Discipline
	static     bool
	throwClass string
	throwMsg   string
	shape      *methodShape
	recvType   *convert.CompiledType
	fn         reflect.Value
	enc        *convert.Encoder
	dec        *convert.Decoder
}

// Discipline reports the declared calling discipline.
func (t *Trampoline) Discipline() Discipline { return t.discipline }

// Static reports whether the entry takes no receiver.
func (t *Trampoline) Static() bool { return t.static }

// Invoke runs the entry. recv is ignored for static entries. The
// returned slot is what the VM caller observes; after a raised exception
// it is the zeroed slot the VM discards.
func (t *Trampoline) Invoke(env jvm.Env, recv jvm.Ref, args ...jvm.Value) jvm.Value {
	// An exception already recorded on the handle takes precedence over
	// everything, including argument conversion.
	if env.ExceptionPending() {
		Logger().Debug("entry skipped, exception pending", zap.String("symbol", t.Symbol))
		return t.zeroSlot()
	}

	if len(args) != len(t.shape.params) {
		return t.fail(env, DefaultThrowMessage+": argument count mismatch")
	}

	in := make([]reflect.Value, 0, len(args)+2)
	if t.shape.wantsEnv {
		in = append(in, reflect.ValueOf(env))
	}
	if t.shape.hasRecv {
		rv, err := t.decodeValue(env, t.recvType, jvm.RefValue(recv))
		if err != nil {
			return t.fail(env, err.Error())
		}
		in = append(in, rv)
	}
	for i, slot := range args {
		av, err := t.decodeValue(env, t.shape.params[i], slot)
		if err != nil {
			return t.fail(env, err.Error())
		}
		in = append(in, av)
	}

	out := t.fn.Call(in)

	if t.shape.retErr {
		if errv := out[len(out)-1]; !errv.IsNil() {
			return t.fail(env, errv.Interface().(error).Error())
		}
	}
	if t.shape.ret == nil {
		return jvm.Value{}
	}

	slot, err := t.encodeValue(env, t.shape.ret, out[0].Interface())
	if err != nil {
		return t.fail(env, err.Error())
	}
	return slot
}

func (t *Trampoline) decodeValue(env jvm.Env, ct *convert.CompiledType, slot jvm.Value) (reflect.Value, error) {
	if t.discipline == Unchecked {
		return reflect.ValueOf(t.dec.MustDecode(env, ct, slot)), nil
	}
	v, err := t.dec.Decode(env, ct, slot)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(v), nil
}

func (t *Trampoline) encodeValue(env jvm.Env, ct *convert.CompiledType, v any) (jvm.Value, error) {
	if t.discipline == Unchecked {
		return t.enc.MustEncode(env, ct, v), nil
	}
	return t.enc.Encode(env, ct, v)
}

// fail raises the declared exception and zeroes the result slot. Only
// the checked discipline reaches it for conversion failures; body errors
// raise under both disciplines.
func (t *Trampoline) fail(env jvm.Env, msg string) jvm.Value {
	if t.throwMsg != "" {
		msg = t.throwMsg
	}
	if msg == "" {
		msg = DefaultThrowMessage
	}
	if err := env.Throw(t.throwClass, msg); err != nil {
		Logger().Error("failed to raise VM exception",
			zap.String("symbol", t.Symbol),
			zap.String("class", t.throwClass),
			zap.Error(err))
	}
	return t.zeroSlot()
}

func (t *Trampoline) zeroSlot() jvm.Value {
	if t.shape != nil && t.shape.ret != nil && t.shape.ret.Type.Unerased().Kind.IsReference() {
		return jvm.Null()
	}
	return jvm.Value{}
}
