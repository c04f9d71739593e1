package prompt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/progzone122/kff/internal/manifest"
)

const (
	invalidNumber = "Invalid number, try again"
	invalidBool   = "Invalid boolean, enter yes or no"
)

// Answers maps question names to their final string values, remembering the
// order in which questions were asked.
type Answers struct {
	names  []string
	values map[string]string
}

// NewAnswers returns an empty answer set.
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]string)}
}

// Set records value for name. Setting an existing name keeps its position.
func (a *Answers) Set(name, value string) {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Get returns the answer for name.
func (a *Answers) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Names returns question names in the order they were answered.
func (a *Answers) Names() []string {
	return append([]string(nil), a.names...)
}

// Len returns the number of answers.
func (a *Answers) Len() int { return len(a.names) }

// Map returns a copy of the answers.
func (a *Answers) Map() map[string]string {
	m := make(map[string]string, len(a.values))
	for k, v := range a.values {
		m[k] = v
	}
	return m
}

// Label formats the text shown for a question.
func Label(q manifest.Question) string {
	return fmt.Sprintf("%s [%s]: ", q.Prompt, q.DefaultString())
}

// Collect asks every question in order and returns the answers. Invalid
// Number and Bool input is reported on warn and the same question is asked
// again. An asker error stops collection.
func Collect(questions []manifest.Question, asker Asker, warn io.Writer) (*Answers, error) {
	answers := NewAnswers()
	for _, q := range questions {
		value, err := ask(q, asker, warn)
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", q.Name, err)
		}
		answers.Set(q.Name, value)
	}
	return answers, nil
}

func ask(q manifest.Question, asker Asker, warn io.Writer) (string, error) {
	label := Label(q)
	for {
		input, err := asker.Ask(label)
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return q.DefaultString(), nil
		}

		switch q.Type {
		case manifest.TypeString:
			return input, nil
		case manifest.TypeNumber:
			if _, err := strconv.ParseInt(input, 10, 64); err == nil {
				return input, nil
			}
			fmt.Fprintln(warn, invalidNumber)
		case manifest.TypeBool:
			if v, ok := parseBool(input); ok {
				return v, nil
			}
			fmt.Fprintln(warn, invalidBool)
		default:
			fmt.Fprintf(warn, "warning: unknown question type %q, treating as string\n", q.Type)
			return input, nil
		}
	}
}

// parseBool accepts the usual yes/no spellings and returns "true" or "false".
func parseBool(s string) (string, bool) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y":
		return "true", true
	case "false", "0", "no", "n":
		return "false", true
	}
	return "", false
}
