package sch

import "strings"

// Sep separates the subject qualifier from the short name of an owned object.
const Sep = "::"

// Short returns the last segment of a qualified name.
func Short(name string) string {
	if i := strings.LastIndex(name, Sep); i >= 0 {
		return name[i+len(Sep):]
	}
	return name
}

// Qual returns the qualifier of name or an empty string for unqualified names.
func Qual(name string) string {
	if i := strings.LastIndex(name, Sep); i >= 0 {
		return name[:i]
	}
	return ""
}

// ChildName returns the derived qualified name for a child of subject with the given short name.
func ChildName(subject, short string) string {
	return subject + Sep + short
}
