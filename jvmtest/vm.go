package jvmtest

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/vmglue/javabind/jvm"
)

// MethodFunc is the Go body of a VM method. recv is the null reference
// for static methods and constructors receive the freshly allocated
// instance.
type MethodFunc func(env jvm.Env, recv jvm.Ref, args []jvm.Value) (jvm.Value, error)

type objectKind uint8

const (
	kindPlain objectKind = iota
	kindString
	kindArray
	kindList
)

type object struct {
	class  string
	kind   objectKind
	fields map[string]jvm.Value
	str    []uint16    // kindString, UTF-16 code units
	arr    []jvm.Value // kindArray
	elem   string      // kindArray element descriptor
	list   []jvm.Value // kindList
}

// Class is a VM class under construction. Methods and fields may be
// added until the first instantiation; the VM does not verify anything.
type Class struct {
	name       string
	super      string
	interfaces []string
	ctors      map[string]MethodFunc
	methods    map[string]MethodFunc
	statics    map[string]MethodFunc
	staticVars map[string]jvm.Value
}

func (c *Class) Constructor(signature string, fn MethodFunc) *Class {
	c.ctors[signature] = fn
	return c
}

func (c *Class) Method(name, signature string, fn MethodFunc) *Class {
	c.methods[name+signature] = fn
	return c
}

func (c *Class) StaticMethod(name, signature string, fn MethodFunc) *Class {
	c.statics[name+signature] = fn
	return c
}

func (c *Class) StaticField(name string, v jvm.Value) *Class {
	c.staticVars[name] = v
	return c
}

// ClassOption configures a class at definition time.
type ClassOption func(*Class)

func Extends(super string) ClassOption {
	return func(c *Class) { c.super = super }
}

func Implements(interfaces ...string) ClassOption {
	return func(c *Class) { c.interfaces = append(c.interfaces, interfaces...) }
}

// VM is a self-contained in-memory stand-in for a real virtual machine.
// It implements jvm.Env directly, keeps objects in a Go heap keyed by
// reference, stores strings as UTF-16 code units, and models the pending
// exception state the dispatch layer relies on. It exists so conversion
// and dispatch can be exercised hermetically.
type VM struct {
	mu      sync.Mutex
	classes map[string]*Class
	heap    map[jvm.Ref]*object
	nextRef jvm.Ref

	pendingClass string
	pendingMsg   string
	hasPending   bool
}

func NewVM() *VM {
	vm := &VM{
		classes: make(map[string]*Class),
		heap:    make(map[jvm.Ref]*object),
		nextRef: 1,
	}
	vm.defineBuiltins()
	return vm
}

// Env returns the VM's environment handle. A real runtime hands out a
// call-scoped handle; the test VM is its own.
func (vm *VM) Env() jvm.Env { return vm }

// DefineClass registers a class under its slash-separated path. Classes
// extend java/lang/Object unless configured otherwise.
func (vm *VM) DefineClass(path string, opts ...ClassOption) *Class {
	c := &Class{
		name:       path,
		super:      "java/lang/Object",
		ctors:      make(map[string]MethodFunc),
		methods:    make(map[string]MethodFunc),
		statics:    make(map[string]MethodFunc),
		staticVars: make(map[string]jvm.Value),
	}
	if path == "java/lang/Object" {
		c.super = ""
	}
	for _, opt := range opts {
		opt(c)
	}
	vm.mu.Lock()
	vm.classes[path] = c
	vm.mu.Unlock()
	return c
}

// Pending reports the recorded exception, if any.
func (vm *VM) Pending() (class, msg string, ok bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.pendingClass, vm.pendingMsg, vm.hasPending
}

// ClearPending discards the recorded exception.
func (vm *VM) ClearPending() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.hasPending = false
	vm.pendingClass = ""
	vm.pendingMsg = ""
}

// SetPending records an exception as if VM code had thrown it.
func (vm *VM) SetPending(class, msg string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.hasPending = true
	vm.pendingClass = class
	vm.pendingMsg = msg
}

func (vm *VM) alloc(o *object) jvm.Ref {
	r := vm.nextRef
	vm.nextRef++
	vm.heap[r] = o
	return r
}

func (vm *VM) get(r jvm.Ref) (*object, error) {
	o, ok := vm.heap[r]
	if !ok {
		return nil, fmt.Errorf("jvmtest: dangling or null reference %d", r)
	}
	return o, nil
}

// isAssignable walks the super chain and interface lists.
func (vm *VM) isAssignable(concrete, target string) bool {
	for name := concrete; name != ""; {
		if name == target {
			return true
		}
		c, ok := vm.classes[name]
		if !ok {
			return false
		}
		for _, it := range c.interfaces {
			if it == target || vm.isAssignable(it, target) {
				return true
			}
		}
		name = c.super
	}
	return false
}

func (vm *VM) resolveMethod(concrete, name, signature string) (MethodFunc, error) {
	for cls := concrete; cls != ""; {
		c, ok := vm.classes[cls]
		if !ok {
			break
		}
		if fn, ok := c.methods[name+signature]; ok {
			return fn, nil
		}
		cls = c.super
	}
	return nil, fmt.Errorf("jvmtest: no method %s%s on %s", name, signature, concrete)
}

// --- jvm.Env ---

func (vm *VM) NewString(s string) (jvm.Ref, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o := &object{class: "java/lang/String", kind: kindString, str: utf16.Encode([]rune(s))}
	return vm.alloc(o), nil
}

func (vm *VM) GetString(r jvm.Ref) (string, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.get(r)
	if err != nil {
		return "", err
	}
	if o.kind != kindString {
		return "", fmt.Errorf("jvmtest: reference %d is a %s, not a string", r, o.class)
	}
	return string(utf16.Decode(o.str)), nil
}

func (vm *VM) NewArray(elemDescriptor string, n int) (jvm.Ref, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if n < 0 {
		return 0, fmt.Errorf("jvmtest: negative array length %d", n)
	}
	slots := make([]jvm.Value, n)
	if !isPrimitiveDescriptor(elemDescriptor) {
		for i := range slots {
			slots[i] = jvm.Null()
		}
	}
	o := &object{class: "[" + elemDescriptor, kind: kindArray, elem: elemDescriptor, arr: slots}
	return vm.alloc(o), nil
}

func (vm *VM) ArrayLen(r jvm.Ref) (int, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.arrayAt(r)
	if err != nil {
		return 0, err
	}
	return len(o.arr), nil
}

func (vm *VM) ArrayGet(r jvm.Ref, i int) (jvm.Value, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.arrayAt(r)
	if err != nil {
		return jvm.Value{}, err
	}
	if i < 0 || i >= len(o.arr) {
		return jvm.Value{}, fmt.Errorf("jvmtest: array index %d out of range [0,%d)", i, len(o.arr))
	}
	return o.arr[i], nil
}

func (vm *VM) ArraySet(r jvm.Ref, i int, v jvm.Value) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.arrayAt(r)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(o.arr) {
		return fmt.Errorf("jvmtest: array index %d out of range [0,%d)", i, len(o.arr))
	}
	o.arr[i] = v
	return nil
}

func (vm *VM) arrayAt(r jvm.Ref) (*object, error) {
	o, err := vm.get(r)
	if err != nil {
		return nil, err
	}
	if o.kind != kindArray {
		return nil, fmt.Errorf("jvmtest: reference %d is a %s, not an array", r, o.class)
	}
	return o, nil
}

func (vm *VM) NewObject(class, ctorSignature string, args ...jvm.Value) (jvm.Ref, error) {
	vm.mu.Lock()
	c, ok := vm.classes[class]
	if !ok {
		vm.mu.Unlock()
		return 0, fmt.Errorf("jvmtest: unknown class %s", class)
	}
	ctor, ok := c.ctors[ctorSignature]
	if !ok {
		vm.mu.Unlock()
		return 0, fmt.Errorf("jvmtest: no constructor %s on %s", ctorSignature, class)
	}
	kind := kindPlain
	if class == "java/util/ArrayList" {
		kind = kindList
	}
	recv := vm.alloc(&object{class: class, kind: kind, fields: make(map[string]jvm.Value)})
	vm.mu.Unlock()

	if _, err := ctor(vm, recv, args); err != nil {
		return 0, err
	}
	return recv, nil
}

func (vm *VM) CallMethod(recv jvm.Ref, class, name, signature string, args ...jvm.Value) (jvm.Value, error) {
	vm.mu.Lock()
	o, err := vm.get(recv)
	if err != nil {
		vm.mu.Unlock()
		return jvm.Value{}, err
	}
	if !vm.isAssignable(o.class, class) {
		vm.mu.Unlock()
		return jvm.Value{}, fmt.Errorf("jvmtest: %s is not a %s", o.class, class)
	}
	fn, err := vm.resolveMethod(o.class, name, signature)
	vm.mu.Unlock()
	if err != nil {
		return jvm.Value{}, err
	}
	return fn(vm, recv, args)
}

func (vm *VM) CallStaticMethod(class, name, signature string, args ...jvm.Value) (jvm.Value, error) {
	vm.mu.Lock()
	c, ok := vm.classes[class]
	if !ok {
		vm.mu.Unlock()
		return jvm.Value{}, fmt.Errorf("jvmtest: unknown class %s", class)
	}
	fn, ok := c.statics[name+signature]
	vm.mu.Unlock()
	if !ok {
		return jvm.Value{}, fmt.Errorf("jvmtest: no static method %s%s on %s", name, signature, class)
	}
	return fn(vm, 0, args)
}

func (vm *VM) GetField(recv jvm.Ref, class, name, descriptor string) (jvm.Value, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.get(recv)
	if err != nil {
		return jvm.Value{}, err
	}
	if !vm.isAssignable(o.class, class) {
		return jvm.Value{}, fmt.Errorf("jvmtest: %s is not a %s", o.class, class)
	}
	v, ok := o.fields[name]
	if !ok {
		if isPrimitiveDescriptor(descriptor) {
			return jvm.Value{}, nil
		}
		return jvm.Null(), nil
	}
	return v, nil
}

func (vm *VM) SetField(recv jvm.Ref, class, name, descriptor string, v jvm.Value) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, err := vm.get(recv)
	if err != nil {
		return err
	}
	if !vm.isAssignable(o.class, class) {
		return fmt.Errorf("jvmtest: %s is not a %s", o.class, class)
	}
	o.fields[name] = v
	return nil
}

func (vm *VM) GetStaticField(class, name, descriptor string) (jvm.Value, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	c, ok := vm.classes[class]
	if !ok {
		return jvm.Value{}, fmt.Errorf("jvmtest: unknown class %s", class)
	}
	v, ok := c.staticVars[name]
	if !ok {
		return jvm.Value{}, fmt.Errorf("jvmtest: no static field %s on %s", name, class)
	}
	return v, nil
}

func (vm *VM) Throw(class, msg string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.hasPending = true
	vm.pendingClass = class
	vm.pendingMsg = msg
	return nil
}

func (vm *VM) ExceptionPending() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.hasPending
}

func (vm *VM) IsInstanceOf(r jvm.Ref, class string) (bool, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if r.IsNil() {
		return false, nil
	}
	o, err := vm.get(r)
	if err != nil {
		return false, err
	}
	return vm.isAssignable(o.class, class), nil
}

func isPrimitiveDescriptor(d string) bool {
	return len(d) == 1 && strings.ContainsAny(d, "ZBCSIJFD")
}
