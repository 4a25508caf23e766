package bridge

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/vmglue/javabind/convert"
	"github.com/vmglue/javabind/descriptor"
	"github.com/vmglue/javabind/errors"
	"github.com/vmglue/javabind/jvm"
)

// Discipline selects how a declaration's conversions fail.
type Discipline uint8

const (
	// Checked uses the fallible conversion roles. A conversion failure
	// raises a VM exception and skips the native body.
	Checked Discipline = iota
	// Unchecked uses the infallible roles. A shape mismatch at the
	// boundary is the caller's contract breach, not a recoverable error.
	Unchecked
)

func (d Discipline) String() string {
	if d == Unchecked {
		return "unchecked"
	}
	return "checked"
}

type methodConfig struct {
	discipline Discipline
	static     bool
	throwClass string
	throwMsg   string
	forced     map[int]string
}

// MethodOption configures a single declared method.
type MethodOption func(*methodConfig)

// WithUnchecked selects the unchecked calling discipline.
func WithUnchecked() MethodOption {
	return func(c *methodConfig) { c.discipline = Unchecked }
}

// AsStatic declares the method static: no receiver is passed.
func AsStatic() MethodOption {
	return func(c *methodConfig) { c.static = true }
}

// ThrowAs overrides the exception class raised on checked conversion
// failure. The default is java/lang/RuntimeException.
func ThrowAs(class string) MethodOption {
	return func(c *methodConfig) { c.throwClass = class }
}

// ThrowMessage fixes the exception message raised on checked conversion
// failure instead of the failure's own description.
func ThrowMessage(msg string) MethodOption {
	return func(c *methodConfig) { c.throwMsg = msg }
}

// ForceDescriptor overrides the advertised wire descriptor of one
// parameter (zero-based, not counting the receiver). Only the advertised
// signature changes; conversion still follows the Go type.
func ForceDescriptor(param int, desc string) MethodOption {
	return func(c *methodConfig) {
		if c.forced == nil {
			c.forced = make(map[int]string)
		}
		c.forced[param] = desc
	}
}

type exportDecl struct {
	name    string
	handler any
	cfg     methodConfig
}

type callbackDecl struct {
	name      string
	prototype any
	cfg       methodConfig
}

// ClassDecl accumulates the declared methods of one VM class. Method
// names are given in Go style and converted to the VM's lower camel
// convention at build time.
type ClassDecl struct {
	reg       *Registry
	pkg       string
	name      string
	goType    reflect.Type
	exports   []exportDecl
	callbacks []callbackDecl
}

// Export declares a native-exported method: the VM resolves its mangled
// symbol and calls into the Go handler. The handler may take a jvm.Env
// first, then the receiver (instance methods), then the converted
// parameters; it may return nothing, a value, an error, or both.
func (c *ClassDecl) Export(name string, handler any, opts ...MethodOption) *ClassDecl {
	cfg := methodConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	c.exports = append(c.exports, exportDecl{name: name, handler: handler, cfg: cfg})
	return c
}

// CallBack declares a native-to-VM call. prototype is a nil func value
// whose type spells the call shape: optional jvm.Env first, then the
// receiver (instance calls), then the arguments, then at most one
// result. The VM method is resolved by the exact (class, name,
// signature) triple computed from the prototype.
func (c *ClassDecl) CallBack(name string, prototype any, opts ...MethodOption) *ClassDecl {
	cfg := methodConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	c.callbacks = append(c.callbacks, callbackDecl{name: name, prototype: prototype, cfg: cfg})
	return c
}

// Registry is the declaration table: classes and their methods are
// declared up front, then Build compiles every involved type, validates
// names and signatures, and emits trampolines and callers. Nothing is
// deferred to call time that can fail at build time.
type Registry struct {
	compiler *convert.Compiler
	classes  []*ClassDecl
}

func NewRegistry() *Registry {
	return &Registry{compiler: convert.NewCompiler()}
}

// Compiler exposes the registry's type compiler so callers can register
// additional array types before Build.
func (r *Registry) Compiler() *convert.Compiler { return r.compiler }

// Class declares a VM class implemented by goType, a struct embedding
// convert.Object. pkg is the dotted package path.
func (r *Registry) Class(pkg, name string, goType reflect.Type) *ClassDecl {
	decl := &ClassDecl{reg: r, pkg: pkg, name: name, goType: goType}
	r.classes = append(r.classes, decl)
	return decl
}

// Bound is the immutable build product: one trampoline per exported
// declaration, keyed by mangled symbol, and one caller per call-back.
type Bound struct {
	trampolines map[string]*Trampoline
	callers     map[string]*Caller
	symbols     []string
}

// Trampoline looks up an exported entry by its mangled symbol.
func (b *Bound) Trampoline(symbol string) (*Trampoline, bool) {
	t, ok := b.trampolines[symbol]
	return t, ok
}

// Symbols lists every exported symbol in declaration order.
func (b *Bound) Symbols() []string {
	out := make([]string, len(b.symbols))
	copy(out, b.symbols)
	return out
}

// Caller looks up a call-back by its declaring class and Go-style name.
func (b *Bound) Caller(pkg, class, name string) (*Caller, bool) {
	c, ok := b.callers[callerKey(pkg, class, name)]
	return c, ok
}

func callerKey(pkg, class, name string) string {
	return pkg + "." + class + "#" + descriptor.LowerCamel(name)
}

// Build compiles and validates every declaration. Any unsupported type
// shape, invalid name, duplicate symbol or ambiguous call-back triple
// fails the build; nothing is left to fail at dispatch time.
func (r *Registry) Build() (*Bound, error) {
	for _, cls := range r.classes {
		if err := r.compiler.RegisterClass(cls.goType, cls.pkg, cls.name); err != nil {
			return nil, errors.Registration(cls.pkg+"."+cls.name, "", err)
		}
	}

	bound := &Bound{
		trampolines: make(map[string]*Trampoline),
		callers:     make(map[string]*Caller),
	}

	for _, cls := range r.classes {
		recvType, err := r.compiler.Compile(cls.goType)
		if err != nil {
			return nil, errors.Registration(cls.pkg+"."+cls.name, "", err)
		}

		for _, ex := range cls.exports {
			t, err := r.buildTrampoline(cls, recvType, ex)
			if err != nil {
				return nil, errors.Registration(cls.pkg+"."+cls.name, ex.name, err)
			}
			if _, dup := bound.trampolines[t.Symbol]; dup {
				return nil, errors.Duplicate(errors.PhaseCompile, "exported symbol", t.Symbol)
			}
			bound.trampolines[t.Symbol] = t
			bound.symbols = append(bound.symbols, t.Symbol)
			Logger().Debug("bound exported method",
				zap.String("symbol", t.Symbol),
				zap.String("signature", t.Signature),
				zap.String("discipline", t.discipline.String()))
		}

		for _, cb := range cls.callbacks {
			c, err := r.buildCaller(cls, recvType, cb)
			if err != nil {
				return nil, errors.Registration(cls.pkg+"."+cls.name, cb.name, err)
			}
			key := callerKey(cls.pkg, cls.name, cb.name)
			if _, dup := bound.callers[key]; dup {
				return nil, errors.Ambiguous(errors.PhaseCompile, cls.pkg+"."+cls.name, c.Name, c.Signature)
			}
			bound.callers[key] = c
			Logger().Debug("bound call-back",
				zap.String("class", c.Class),
				zap.String("name", c.Name),
				zap.String("signature", c.Signature))
		}
	}

	return bound, nil
}

var (
	envType   = reflect.TypeOf((*jvm.Env)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// methodShape is the reflected anatomy shared by exports and call-backs.
type methodShape struct {
	wantsEnv bool
	hasRecv  bool
	params   []*convert.CompiledType
	ret      *convert.CompiledType
	retErr   bool
}

func (r *Registry) reflectShape(cls *ClassDecl, fnType reflect.Type, static bool) (*methodShape, error) {
	if fnType == nil || fnType.Kind() != reflect.Func {
		return nil, errors.InvalidInput(errors.PhaseCompile, "declaration requires a func")
	}
	if fnType.IsVariadic() {
		return nil, errors.InvalidInput(errors.PhaseCompile, "variadic declarations are not supported")
	}

	shape := &methodShape{}
	in := 0
	if fnType.NumIn() > in && fnType.In(in) == envType {
		shape.wantsEnv = true
		in++
	}
	if !static {
		if fnType.NumIn() <= in || fnType.In(in) != cls.goType {
			return nil, errors.New(errors.PhaseCompile, errors.KindInvalidInput).
				GoType(fnType.String()).
				Detail("instance method requires a %s receiver parameter", cls.goType).
				Build()
		}
		shape.hasRecv = true
		in++
	}
	for ; in < fnType.NumIn(); in++ {
		ct, err := r.compiler.Compile(fnType.In(in))
		if err != nil {
			return nil, err
		}
		shape.params = append(shape.params, ct)
	}

	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) == errorType {
			shape.retErr = true
		} else {
			ct, err := r.compiler.Compile(fnType.Out(0))
			if err != nil {
				return nil, err
			}
			shape.ret = ct
		}
	case 2:
		if fnType.Out(1) != errorType {
			return nil, errors.InvalidInput(errors.PhaseCompile, "second result must be error")
		}
		ct, err := r.compiler.Compile(fnType.Out(0))
		if err != nil {
			return nil, err
		}
		shape.ret = ct
		shape.retErr = true
	default:
		return nil, errors.InvalidInput(errors.PhaseCompile, "declarations return at most a value and an error")
	}

	return shape, nil
}

func signatureOf(shape *methodShape, forced map[int]string) string {
	parts := make([]string, 0, len(shape.params))
	for i, p := range shape.params {
		if f, ok := forced[i]; ok {
			parts = append(parts, f)
			continue
		}
		parts = append(parts, p.Descriptor())
	}
	ret := "V"
	if shape.ret != nil {
		ret = shape.ret.Descriptor()
	}
	sig := "("
	for _, p := range parts {
		sig += p
	}
	return sig + ")" + ret
}

func (r *Registry) buildTrampoline(cls *ClassDecl, recvType *convert.CompiledType, ex exportDecl) (*Trampoline, error) {
	vmName := descriptor.LowerCamel(ex.name)
	if err := descriptor.ValidateMethodName(vmName); err != nil {
		return nil, err
	}

	shape, err := r.reflectShape(cls, reflect.TypeOf(ex.handler), ex.cfg.static)
	if err != nil {
		return nil, err
	}

	// Inputs are consumed from the VM; the gap in the from-VM matrix is
	// rejected here rather than at call time.
	for _, p := range shape.params {
		if err := p.ConsumeSupported(); err != nil {
			return nil, err
		}
	}

	throwClass := ex.cfg.throwClass
	if throwClass == "" {
		throwClass = DefaultThrowClass
	}

	return &Trampoline{
		Symbol:     descriptor.Symbol(cls.pkg, cls.name, vmName),
		Class:      recvType.Type.Class,
		Name:       vmName,
		Signature:  signatureOf(shape, ex.cfg.forced),
		discipline: ex.cfg.discipline,
		static:     ex.cfg.static,
		throwClass: throwClass,
		throwMsg:   ex.cfg.throwMsg,
		shape:      shape,
		recvType:   recvType,
		fn:         reflect.ValueOf(ex.handler),
		enc:        convert.NewEncoder(r.compiler),
		dec:        convert.NewDecoder(r.compiler),
	}, nil
}

func (r *Registry) buildCaller(cls *ClassDecl, recvType *convert.CompiledType, cb callbackDecl) (*Caller, error) {
	vmName := descriptor.LowerCamel(cb.name)
	if err := descriptor.ValidateMethodName(vmName); err != nil {
		return nil, err
	}

	shape, err := r.reflectShape(cls, reflect.TypeOf(cb.prototype), cb.cfg.static)
	if err != nil {
		return nil, err
	}
	if shape.retErr {
		return nil, errors.InvalidInput(errors.PhaseCompile, "call-back prototypes declare the VM result only; errors come from the call itself")
	}

	// The result is consumed from the VM.
	if shape.ret != nil {
		if err := shape.ret.ConsumeSupported(); err != nil {
			return nil, err
		}
	}

	return &Caller{
		Class:      recvType.Type.Class,
		Name:       vmName,
		Signature:  signatureOf(shape, cb.cfg.forced),
		discipline: cb.cfg.discipline,
		static:     cb.cfg.static,
		shape:      shape,
		enc:        convert.NewEncoder(r.compiler),
		dec:        convert.NewDecoder(r.compiler),
	}, nil
}
