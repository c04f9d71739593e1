package manifest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FileName is the manifest location relative to a template root.
const FileName = "template.json"

// Question types understood by the answer collector. Other values are
// accepted and treated as free text.
const (
	TypeString = "String"
	TypeNumber = "Number"
	TypeBool   = "Bool"
)

// Descriptor is a parsed template manifest.
type Descriptor struct {
	Schema      string     `json:"$schema,omitempty"`
	Name        string     `json:"name,omitempty"`
	Version     string     `json:"version,omitempty"`
	Description string     `json:"description,omitempty"`
	Requires    string     `json:"requires,omitempty"` // semver constraint on the kff version
	Questions   []Question `json:"questions"`
	Files       []FileSpec `json:"files"`
}

// Question is one value requested from the operator. Name is the answer key.
type Question struct {
	Name    string `json:"name"`
	Prompt  string `json:"prompt"`
	Type    string `json:"type"`
	Default any    `json:"default"` // string, json.Number or bool
}

// FileSpec lists the placeholders to rewrite inside one template file.
type FileSpec struct {
	File         string        `json:"file"`
	Placeholders []Placeholder `json:"placeholders"`
}

// Placeholder maps a literal token to the question whose answer replaces it.
type Placeholder struct {
	Token       string `json:"placeholder"`
	Binding     string `json:"replacement"` // "{question_name}"
	Description string `json:"description,omitempty"`
}

// DefaultString renders the default value the way it is offered and stored.
func (q Question) DefaultString() string {
	switch v := q.Default.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Key returns the question name a placeholder is bound to: the binding with
// exactly one leading '{' and one trailing '}' removed.
func (p Placeholder) Key() string {
	key := strings.TrimPrefix(p.Binding, "{")
	return strings.TrimSuffix(key, "}")
}

// Question returns the question with the given name.
func (d *Descriptor) Question(name string) (Question, bool) {
	for _, q := range d.Questions {
		if q.Name == name {
			return q, true
		}
	}
	return Question{}, false
}
