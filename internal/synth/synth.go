// Package synth turns a configuration snapshot into illustrative source text.
//
// Output is a pure function of the snapshot, the environment, and the fixed
// template: the same inputs always yield byte-identical text, and record
// keys follow registry declaration order regardless of edit history.
// Nothing is cached; callers re-synthesize on every read.
package synth

import (
	"strings"

	"github.com/dshills/toasty/internal/option"
)

// Language is the grammar name of the generated code.
const Language = "tsx"

// Environment carries settings that belong to the ambient provider scope
// rather than to a single toast.
type Environment struct {
	// Placement is the provider position (e.g., "bottom right").
	// Empty means the environment does not support positioning and no
	// provider snippet is rendered.
	Placement string
}

// Template is the fixed boilerplate around the generated call.
type Template struct {
	// Package is the import path of the toast library.
	Package string

	// Hook is the hook that returns the action.
	Hook string

	// Action is the function the snippet calls.
	Action string

	// Provider is the component that establishes the ambient scope.
	Provider string

	// MessageField is passed positionally instead of inside the record.
	MessageField string

	// Indent is the record indentation.
	Indent string
}

// DefaultTemplate returns the react-floatify template.
func DefaultTemplate() Template {
	return Template{
		Package:      "react-floatify",
		Hook:         "useToast",
		Action:       "addToast",
		Provider:     "ToastProvider",
		MessageField: option.FieldMessage,
		Indent:       "  ",
	}
}

// Synthesize renders the usage snippet for s with the default template,
// followed by the provider snippet when env declares a placement.
func Synthesize(s option.Snapshot, env Environment) string {
	return DefaultTemplate().Document(s, env)
}

// Usage renders the import, hook, and call for s.
func (t Template) Usage(s option.Snapshot) string {
	var b strings.Builder
	b.WriteString("import { " + t.Hook + " } from " + Quote(t.Package) + ";\n\n")
	b.WriteString("const { " + t.Action + " } = " + t.Hook + "();\n\n")
	b.WriteString(t.Call(s))
	return b.String()
}

// Call renders only the call expression, terminated by ";\n".
func (t Template) Call(s option.Snapshot) string {
	var b strings.Builder
	b.WriteString(t.Action + "(")
	b.WriteString(Literal(s.MustGet(t.MessageField)))
	b.WriteString(", {\n")
	for _, e := range s.Entries() {
		if e.Name == t.MessageField {
			continue
		}
		b.WriteString(t.Indent + Key(e.Name) + ": " + Literal(e.Value) + ",\n")
	}
	b.WriteString("});\n")
	return b.String()
}

// ProviderSnippet renders the provider declaration for env.
// It returns "" when env has no placement.
func (t Template) ProviderSnippet(env Environment) string {
	if env.Placement == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("import { " + t.Provider + " } from " + Quote(t.Package) + ";\n\n")
	b.WriteString("<" + t.Provider + " position=" + jsxAttr(env.Placement) + ">\n")
	b.WriteString(t.Indent + "<App />\n")
	b.WriteString("</" + t.Provider + ">\n")
	return b.String()
}

// Document joins the usage and provider snippets with a blank line.
func (t Template) Document(s option.Snapshot, env Environment) string {
	usage := t.Usage(s)
	provider := t.ProviderSnippet(env)
	if provider == "" {
		return usage
	}
	return usage + "\n" + provider
}

// ProviderSnippet renders the provider declaration with the default template.
func ProviderSnippet(env Environment) string {
	return DefaultTemplate().ProviderSnippet(env)
}

// jsxAttr renders an attribute value. JSX string attributes have no escape
// syntax, so values that need escaping use an expression container.
func jsxAttr(v string) string {
	if strings.ContainsAny(v, "\"&<>{}\\\n\r") {
		return "{" + Quote(v) + "}"
	}
	return `"` + v + `"`
}
