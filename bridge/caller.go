package bridge

import (
	"github.com/vmglue/javabind/convert"
	"github.com/vmglue/javabind/errors"
	"github.com/vmglue/javabind/jvm"
)

// Caller is one resolved native-to-VM call: the (class, name, signature)
// triple is fixed at build time from the declared prototype, so the only
// run-time failures left are the VM's own.
type Caller struct {
	Class     string
	Name      string
	Signature string

	discipline Discipline
	static     bool
	shape      *methodShape
	enc        *convert.Encoder
	dec        *convert.Decoder
}

// Static reports whether the call omits the receiver.
func (c *Caller) Static() bool { return c.static }

// Invoke performs the VM call. recv must be a bound handle for instance
// calls and is ignored for static calls. Arguments convert to VM slots,
// the method runs inside the VM, and the result converts back. Because
// the receiver is a live handle, any field mutation the VM method
// performs is visible through that handle after Invoke returns.
func (c *Caller) Invoke(env jvm.Env, recv convert.ObjectValue, args ...any) (any, error) {
	// A pending exception forbids further VM interaction; it propagates
	// unchanged to the entry's caller.
	if env.ExceptionPending() {
		return nil, errors.PendingException(errors.PhaseDispatch)
	}

	slots, err := c.encodeArgs(env, args)
	if err != nil {
		return nil, err
	}

	var out jvm.Value
	if c.static {
		out, err = env.CallStaticMethod(c.Class, c.Name, c.Signature, slots...)
	} else {
		if recv == nil || recv.JavaRef().IsNil() {
			return nil, errors.NullValue(errors.PhaseDispatch, nil, "L"+c.Class+";")
		}
		out, err = env.CallMethod(recv.JavaRef(), c.Class, c.Name, c.Signature, slots...)
	}
	if err != nil {
		return nil, errors.New(errors.PhaseDispatch, errors.KindNotFound).
			JavaType(c.Signature).
			Cause(err).
			Detail("VM call %s.%s failed", c.Class, c.Name).
			Build()
	}

	if c.shape.ret == nil {
		return nil, nil
	}
	if c.discipline == Unchecked {
		return c.dec.MustDecode(env, c.shape.ret, out), nil
	}
	return c.dec.Decode(env, c.shape.ret, out)
}

// MustInvoke is the unchecked-unwrap form of Invoke.
func (c *Caller) MustInvoke(env jvm.Env, recv convert.ObjectValue, args ...any) any {
	out, err := c.Invoke(env, recv, args...)
	if err != nil {
		panic(err)
	}
	return out
}

func (c *Caller) encodeArgs(env jvm.Env, args []any) ([]jvm.Value, error) {
	if len(args) != len(c.shape.params) {
		return nil, errors.New(errors.PhaseDispatch, errors.KindInvalidInput).
			JavaType(c.Signature).
			Detail("call %s.%s wants %d arguments, got %d", c.Class, c.Name, len(c.shape.params), len(args)).
			Build()
	}
	if c.discipline == Unchecked {
		out := make([]jvm.Value, len(args))
		for i, a := range args {
			out[i] = c.enc.MustEncode(env, c.shape.params[i], a)
		}
		return out, nil
	}
	return c.enc.EncodeArgs(env, c.shape.params, args)
}
