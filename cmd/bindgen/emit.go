package main

import (
	"fmt"
	"strings"

	"github.com/vmglue/javabind/descriptor"
)

// symbolTable renders one line per exported symbol with its signature.
func symbolTable(classes []class) string {
	var b strings.Builder
	for _, c := range classes {
		for _, m := range c.methods {
			if m.symbol == "" {
				continue
			}
			fmt.Fprintf(&b, "%s %s\n", m.symbol, m.signature)
		}
	}
	return b.String()
}

// javaStub renders the Java class declaration matching the manifest:
// native declarations for exported methods and plain declarations for
// the call-back targets the native side expects to find.
func javaStub(c class) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s;\n\n", c.decl.Package)
	fmt.Fprintf(&b, "public class %s {\n", c.decl.Name)

	for _, m := range c.methods {
		mods := "public"
		if m.decl.Static {
			mods += " static"
		}
		if !m.decl.CallBack {
			mods += " native"
		}

		params := make([]string, len(m.params))
		for i, p := range m.params {
			params[i] = fmt.Sprintf("%s p%d", javaTypeName(p), i)
		}
		ret := "void"
		if m.ret != nil {
			ret = javaTypeName(*m.ret)
		}

		if m.decl.CallBack {
			fmt.Fprintf(&b, "    %s %s %s(%s) {\n        throw new UnsupportedOperationException(\"stub\");\n    }\n\n",
				mods, ret, m.vmName, strings.Join(params, ", "))
		} else {
			fmt.Fprintf(&b, "    %s %s %s(%s);\n\n", mods, ret, m.vmName, strings.Join(params, ", "))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// javaTypeName renders a descriptor shape as Java source. Optionals
// render as their payload; nullability has no spelling in a Java
// signature.
func javaTypeName(t descriptor.Type) string {
	switch t.Kind {
	case descriptor.KindBool:
		return "boolean"
	case descriptor.KindByte:
		return "byte"
	case descriptor.KindChar:
		return "char"
	case descriptor.KindShort:
		return "short"
	case descriptor.KindInt:
		return "int"
	case descriptor.KindLong:
		return "long"
	case descriptor.KindFloat:
		return "float"
	case descriptor.KindDouble:
		return "double"
	case descriptor.KindString:
		return "String"
	case descriptor.KindList:
		if t.Elem != nil {
			return "java.util.List<" + boxedJavaName(*t.Elem) + ">"
		}
		return "java.util.List"
	case descriptor.KindArray:
		return javaTypeName(*t.Elem) + "[]"
	case descriptor.KindOption:
		return javaTypeName(*t.Elem)
	case descriptor.KindObject:
		return strings.ReplaceAll(t.Class, "/", ".")
	default:
		return "void"
	}
}

// boxedJavaName is javaTypeName with primitives lifted to their
// wrappers, as required inside generic parameters.
func boxedJavaName(t descriptor.Type) string {
	switch t.Kind {
	case descriptor.KindBool:
		return "Boolean"
	case descriptor.KindByte:
		return "Byte"
	case descriptor.KindChar:
		return "Character"
	case descriptor.KindShort:
		return "Short"
	case descriptor.KindInt:
		return "Integer"
	case descriptor.KindLong:
		return "Long"
	case descriptor.KindFloat:
		return "Float"
	case descriptor.KindDouble:
		return "Double"
	default:
		return javaTypeName(t)
	}
}
