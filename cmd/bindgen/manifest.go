package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/vmglue/javabind/descriptor"
)

// Manifest is the JSON declaration table bindgen consumes: the same
// classes and methods a program would declare through bridge.Registry,
// spelled as data so stubs can be generated without compiling Go.
type Manifest struct {
	Classes []ManifestClass `json:"classes"`
}

type ManifestClass struct {
	Package string           `json:"package"`
	Name    string           `json:"name"`
	Methods []ManifestMethod `json:"methods"`
}

type ManifestMethod struct {
	Name       string   `json:"name"`
	Params     []string `json:"params"`
	Return     string   `json:"return,omitempty"`
	Static     bool     `json:"static,omitempty"`
	CallBack   bool     `json:"callback,omitempty"`
	Discipline string   `json:"discipline,omitempty"`
}

// method is a manifest method with its types resolved.
type method struct {
	decl      ManifestMethod
	vmName    string
	params    []descriptor.Type
	ret       *descriptor.Type
	signature string
	symbol    string
}

type class struct {
	decl    ManifestClass
	methods []method
}

func loadManifest(path string) ([]class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return resolveManifest(&m)
}

func resolveManifest(m *Manifest) ([]class, error) {
	out := make([]class, 0, len(m.Classes))
	for _, mc := range m.Classes {
		c := class{decl: mc}
		for _, mm := range mc.Methods {
			r, err := resolveMethod(mc, mm)
			if err != nil {
				return nil, err
			}
			c.methods = append(c.methods, r)
		}
		out = append(out, c)
	}
	return out, nil
}

func resolveMethod(mc ManifestClass, mm ManifestMethod) (method, error) {
	vmName := descriptor.LowerCamel(mm.Name)
	if err := descriptor.ValidateMethodName(vmName); err != nil {
		return method{}, fmt.Errorf("%s.%s: %w", mc.Name, mm.Name, err)
	}

	r := method{decl: mm, vmName: vmName}
	for _, p := range mm.Params {
		t, err := parseType(p)
		if err != nil {
			return method{}, fmt.Errorf("%s.%s: %w", mc.Name, mm.Name, err)
		}
		r.params = append(r.params, t)
	}
	if mm.Return != "" && mm.Return != "void" {
		t, err := parseType(mm.Return)
		if err != nil {
			return method{}, fmt.Errorf("%s.%s: %w", mc.Name, mm.Name, err)
		}
		r.ret = &t
	}

	r.signature = descriptor.MethodSignature(r.params, r.ret)
	if !mm.CallBack {
		r.symbol = descriptor.Symbol(mc.Package, mc.Name, vmName)
	}
	return r, nil
}

// parseType reads the manifest's type vocabulary, mirroring the Go side:
// primitive names, "[]T" for an erased collection, "[T]" for a VM array,
// "*T" for an optional, and a dotted class path for class mappings.
func parseType(s string) (descriptor.Type, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return descriptor.Type{}, fmt.Errorf("empty type")
	case strings.HasPrefix(s, "[]"):
		elem, err := parseType(s[2:])
		if err != nil {
			return descriptor.Type{}, err
		}
		return descriptor.ListOf(elem), nil
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		elem, err := parseType(s[1 : len(s)-1])
		if err != nil {
			return descriptor.Type{}, err
		}
		if elem.Kind == descriptor.KindList {
			return descriptor.Type{}, fmt.Errorf("array of erased collections is not representable")
		}
		return descriptor.ArrayOf(elem), nil
	case strings.HasPrefix(s, "*"):
		elem, err := parseType(s[1:])
		if err != nil {
			return descriptor.Type{}, err
		}
		return descriptor.OptionOf(elem)
	}

	switch s {
	case "bool":
		return descriptor.Bool, nil
	case "int8", "byte":
		return descriptor.Byte, nil
	case "uint16", "char":
		return descriptor.Char, nil
	case "int16":
		return descriptor.Short, nil
	case "int32":
		return descriptor.Int, nil
	case "int64":
		return descriptor.Long, nil
	case "float32":
		return descriptor.Float, nil
	case "float64":
		return descriptor.Double, nil
	case "string":
		return descriptor.String, nil
	}

	if i := strings.LastIndex(s, "."); i > 0 && i < len(s)-1 {
		return descriptor.Class(s[:i], s[i+1:]), nil
	}
	return descriptor.Type{}, fmt.Errorf("unknown type %q", s)
}
