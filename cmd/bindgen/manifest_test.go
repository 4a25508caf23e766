package main

import (
	"strings"
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bool", "Z"},
		{"byte", "B"},
		{"char", "C"},
		{"int16", "S"},
		{"int32", "I"},
		{"int64", "J"},
		{"float32", "F"},
		{"float64", "D"},
		{"string", "Ljava/lang/String;"},
		{"[]string", "Ljava/util/List;"},
		{"[byte]", "[B"},
		{"[string]", "[Ljava/lang/String;"},
		{"*string", "Ljava/lang/String;"},
		{"[[byte]]", "[[B"},
		{"com.example.User", "Lcom/example/User;"},
	}
	for _, tt := range tests {
		got, err := parseType(tt.in)
		if err != nil {
			t.Fatalf("parseType(%q): %v", tt.in, err)
		}
		if d := got.Descriptor(); d != tt.want {
			t.Errorf("parseType(%q) = %q, want %q", tt.in, d, tt.want)
		}
	}
}

func TestParseTypeRejects(t *testing.T) {
	for _, in := range []string{"", "int", "uint32", "*int32", "[[]string]", "mystery"} {
		if _, err := parseType(in); err == nil {
			t.Errorf("parseType(%q) should fail", in)
		}
	}
}

func TestResolveAndEmit(t *testing.T) {
	m := &Manifest{Classes: []ManifestClass{{
		Package: "com.example.user",
		Name:    "User",
		Methods: []ManifestMethod{
			{Name: "HashedPassword", Params: []string{"int32"}, Return: "string"},
			{Name: "UserCountStatus", Return: "string", Static: true},
			{Name: "GetTotalUsersCount", Return: "int32", Static: true, CallBack: true},
			{Name: "RenderNames", Params: []string{"[]string"}, Return: "string", Static: true},
		},
	}}}

	classes, err := resolveManifest(m)
	if err != nil {
		t.Fatalf("resolveManifest: %v", err)
	}

	table := symbolTable(classes)
	for _, want := range []string{
		"Java_com_example_user_User_hashedPassword (I)Ljava/lang/String;",
		"Java_com_example_user_User_userCountStatus ()Ljava/lang/String;",
		"Java_com_example_user_User_renderNames (Ljava/util/List;)Ljava/lang/String;",
	} {
		if !strings.Contains(table, want) {
			t.Errorf("symbol table missing %q:\n%s", want, table)
		}
	}
	if strings.Contains(table, "getTotalUsersCount") {
		t.Error("call-backs must not appear in the symbol table")
	}

	stub := javaStub(classes[0])
	for _, want := range []string{
		"package com.example.user;",
		"public class User {",
		"public native String hashedPassword(int p0);",
		"public static native String userCountStatus();",
		"public static native String renderNames(java.util.List<String> p0);",
		"public static int getTotalUsersCount()",
	} {
		if !strings.Contains(stub, want) {
			t.Errorf("stub missing %q:\n%s", want, stub)
		}
	}
}

func TestMethodNameValidation(t *testing.T) {
	m := &Manifest{Classes: []ManifestClass{{
		Package: "com.example",
		Name:    "Bad",
		Methods: []ManifestMethod{{Name: "render_list"}},
	}}}
	if _, err := resolveManifest(m); err == nil {
		t.Error("underscored method names should fail resolution")
	}
}
