package convert

import (
	"reflect"
	"sync"

	"github.com/vmglue/javabind/descriptor"
	"github.com/vmglue/javabind/errors"
)

// CompiledType pairs a Go type with its JVM wire shape. Compiled once at
// registration time and shared; never mutated afterwards.
type CompiledType struct {
	GoType reflect.Type
	Type   descriptor.Type
	Elem   *CompiledType // List, Array and Option element
}

// Descriptor returns the wire descriptor of the compiled type.
func (ct *CompiledType) Descriptor() string {
	return ct.Type.Descriptor()
}

// ConsumeSupported reports whether the from-VM direction is implemented
// for this shape. A collection of optional arrays is supported to-VM
// only; the gap is rejected here, at build time, rather than failing at
// call time.
func (ct *CompiledType) ConsumeSupported() error {
	switch ct.Type.Kind {
	case descriptor.KindList:
		if ct.Elem.Type.Kind == descriptor.KindOption && ct.Elem.Elem.Type.Kind == descriptor.KindArray {
			return errors.New(errors.PhaseCompile, errors.KindUnsupported).
				GoType(ct.GoType.String()).
				JavaType(ct.Descriptor()).
				Detail("consuming a collection of optional arrays is not supported; only the to-VM direction is implemented").
				Build()
		}
		return ct.Elem.ConsumeSupported()
	case descriptor.KindArray, descriptor.KindOption:
		return ct.Elem.ConsumeSupported()
	default:
		return nil
	}
}

// Compiler maps Go types to compiled JVM type shapes. Class mappings and
// named array types are registered explicitly; everything else is derived
// structurally from the Go type.
type Compiler struct {
	cache      sync.Map // reflect.Type -> *CompiledType
	mu         sync.RWMutex
	classes    map[reflect.Type]descriptor.Type
	arrayTypes map[reflect.Type]bool
}

func NewCompiler() *Compiler {
	c := &Compiler{
		classes:    make(map[reflect.Type]descriptor.Type),
		arrayTypes: make(map[reflect.Type]bool),
	}
	// []string defaults to an erased collection; StringArray opts into
	// the dedicated object-array representation.
	c.arrayTypes[reflect.TypeOf(StringArray(nil))] = true
	return c
}

// RegisterClass declares that goType (a struct embedding Object) maps to
// the VM class pkg.name. Conversion holds or dereferences the VM handle;
// copying such a value aliases the same VM instance.
func (c *Compiler) RegisterClass(goType reflect.Type, pkg, name string) error {
	if goType == nil || goType.Kind() != reflect.Struct {
		return errors.InvalidInput(errors.PhaseCompile, "class mapping requires a struct type")
	}
	if !hasEmbeddedObject(goType) {
		return errors.New(errors.PhaseCompile, errors.KindInvalidInput).
			GoType(goType.String()).
			Detail("class mapping must embed convert.Object").
			Build()
	}

	cls := descriptor.Class(pkg, name)
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.classes[goType]; ok {
		// Re-registering the same mapping is a no-op so a registry can
		// be built more than once; a conflicting mapping is an error.
		if existing.Class == cls.Class {
			return nil
		}
		return errors.Duplicate(errors.PhaseCompile, "class mapping", goType.String())
	}
	c.classes[goType] = cls
	return nil
}

// RegisterArrayType declares that a named slice type converts as a VM
// array instead of an erased collection.
func (c *Compiler) RegisterArrayType(goType reflect.Type) error {
	if goType == nil || goType.Kind() != reflect.Slice {
		return errors.InvalidInput(errors.PhaseCompile, "array mapping requires a slice type")
	}
	if goType.Name() == "" {
		return errors.New(errors.PhaseCompile, errors.KindInvalidInput).
			GoType(goType.String()).
			Detail("array mapping requires a named slice type; unnamed slices convert as collections").
			Build()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.arrayTypes[goType] = true
	return nil
}

func hasEmbeddedObject(goType reflect.Type) bool {
	objType := reflect.TypeOf(Object{})
	for i := 0; i < goType.NumField(); i++ {
		f := goType.Field(i)
		if f.Anonymous && f.Type == objType {
			return true
		}
	}
	return false
}

// Compile computes the JVM shape of goType. Results are cached; identical
// Go types always yield identical descriptors.
func (c *Compiler) Compile(goType reflect.Type) (*CompiledType, error) {
	if goType == nil {
		return nil, errors.InvalidInput(errors.PhaseCompile, "Go type cannot be nil")
	}

	if cached, ok := c.cache.Load(goType); ok {
		return cached.(*CompiledType), nil
	}

	ct, err := c.compile(goType, nil)
	if err != nil {
		return nil, err
	}

	c.cache.Store(goType, ct)
	return ct, nil
}

func (c *Compiler) compile(goType reflect.Type, path []string) (*CompiledType, error) {
	switch goType.Kind() {
	case reflect.Bool:
		return &CompiledType{GoType: goType, Type: descriptor.Bool}, nil
	case reflect.Int8:
		return &CompiledType{GoType: goType, Type: descriptor.Byte}, nil
	case reflect.Uint16:
		return &CompiledType{GoType: goType, Type: descriptor.Char}, nil
	case reflect.Int16:
		return &CompiledType{GoType: goType, Type: descriptor.Short}, nil
	case reflect.Int32:
		return &CompiledType{GoType: goType, Type: descriptor.Int}, nil
	case reflect.Int64:
		return &CompiledType{GoType: goType, Type: descriptor.Long}, nil
	case reflect.Float32:
		return &CompiledType{GoType: goType, Type: descriptor.Float}, nil
	case reflect.Float64:
		return &CompiledType{GoType: goType, Type: descriptor.Double}, nil
	case reflect.String:
		return &CompiledType{GoType: goType, Type: descriptor.String}, nil
	case reflect.Slice:
		return c.compileSlice(goType, path)
	case reflect.Ptr:
		return c.compileOption(goType, path)
	case reflect.Struct:
		return c.compileClass(goType, path)
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
			Path(path...).
			GoType(goType.String()).
			Detail("platform-width integers have no fixed VM width; use int32 or int64").
			Build()
	case reflect.Uint8, reflect.Uint32, reflect.Uint64:
		return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
			Path(path...).
			GoType(goType.String()).
			Detail("the VM has no unsigned primitives; use the signed type of the same width").
			Build()
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(goType.String()).
			Detail("unsupported Go kind %s", goType.Kind()).
			Build()
	}
}

func (c *Compiler) compileSlice(goType reflect.Type, path []string) (*CompiledType, error) {
	// []byte and []bool convert as dedicated primitive arrays.
	if goType.Elem().Kind() == reflect.Uint8 {
		elem := &CompiledType{GoType: reflect.TypeOf(int8(0)), Type: descriptor.Byte}
		return &CompiledType{GoType: goType, Type: descriptor.ArrayOf(descriptor.Byte), Elem: elem}, nil
	}
	if goType.Elem().Kind() == reflect.Bool {
		elem := &CompiledType{GoType: goType.Elem(), Type: descriptor.Bool}
		return &CompiledType{GoType: goType, Type: descriptor.ArrayOf(descriptor.Bool), Elem: elem}, nil
	}

	c.mu.RLock()
	isArray := c.arrayTypes[goType]
	c.mu.RUnlock()

	elemPath := append(append([]string{}, path...), "[elem]")
	elem, err := c.compile(goType.Elem(), elemPath)
	if err != nil {
		return nil, err
	}

	if isArray {
		if elem.Type.Unerased().Kind == descriptor.KindList {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(path...).
				GoType(goType.String()).
				Detail("array of erased collections is not representable").
				Build()
		}
		return &CompiledType{GoType: goType, Type: descriptor.ArrayOf(elem.Type), Elem: elem}, nil
	}

	return &CompiledType{GoType: goType, Type: descriptor.ListOf(elem.Type), Elem: elem}, nil
}

func (c *Compiler) compileOption(goType reflect.Type, path []string) (*CompiledType, error) {
	elemPath := append(append([]string{}, path...), "[some]")
	elem, err := c.compile(goType.Elem(), elemPath)
	if err != nil {
		return nil, err
	}

	opt, err := descriptor.OptionOf(elem.Type)
	if err != nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(goType.String()).
			Cause(err).
			Detail("optional payload must occupy a nullable VM slot").
			Build()
	}

	return &CompiledType{GoType: goType, Type: opt, Elem: elem}, nil
}

func (c *Compiler) compileClass(goType reflect.Type, path []string) (*CompiledType, error) {
	c.mu.RLock()
	cls, ok := c.classes[goType]
	c.mu.RUnlock()

	if !ok {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(goType.String()).
			Detail("struct has no class mapping; call RegisterClass first").
			Build()
	}

	return &CompiledType{GoType: goType, Type: cls}, nil
}
