package prompt

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/progzone122/kff/internal/manifest"
)

// scriptedAsker replays fixed lines and records the labels it was shown.
type scriptedAsker struct {
	lines  []string
	labels []string
}

func (s *scriptedAsker) Ask(label string) (string, error) {
	s.labels = append(s.labels, label)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

var testQuestions = []manifest.Question{
	{Name: "app_name", Prompt: "Application name", Type: manifest.TypeString, Default: "myapp"},
	{Name: "port", Prompt: "Debug port", Type: manifest.TypeNumber, Default: json.Number("8080")},
	{Name: "fullscreen", Prompt: "Start fullscreen?", Type: manifest.TypeBool, Default: true},
}

func TestCollect_EmptyInputUsesDefaults(t *testing.T) {
	asker := &scriptedAsker{lines: []string{"", "  ", ""}}
	var warn bytes.Buffer

	answers, err := Collect(testQuestions, asker, &warn)
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}

	want := map[string]string{"app_name": "myapp", "port": "8080", "fullscreen": "true"}
	if diff := cmp.Diff(want, answers.Map()); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
	if warn.Len() != 0 {
		t.Errorf("unexpected warnings: %q", warn.String())
	}
}

func TestCollect_Labels(t *testing.T) {
	asker := &scriptedAsker{lines: []string{"", "", ""}}
	if _, err := Collect(testQuestions, asker, io.Discard); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"Application name [myapp]: ",
		"Debug port [8080]: ",
		"Start fullscreen? [true]: ",
	}
	if diff := cmp.Diff(want, asker.labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_InvalidNumberReasks(t *testing.T) {
	q := []manifest.Question{testQuestions[1]}
	asker := &scriptedAsker{lines: []string{"abc", "42"}}
	var warn bytes.Buffer

	answers, err := Collect(q, asker, &warn)
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if got, _ := answers.Get("port"); got != "42" {
		t.Errorf("port = %q, want 42", got)
	}
	if len(asker.labels) != 2 {
		t.Errorf("asked %d times, want 2", len(asker.labels))
	}
	if !strings.Contains(warn.String(), "Invalid number, try again") {
		t.Errorf("warning missing, got %q", warn.String())
	}
}

func TestCollect_NumberForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
		asks  int
	}{
		{"-7", "-7", 1},
		{"9223372036854775807", "9223372036854775807", 1},
		{"1.5", "3", 2},
		{"9223372036854775808", "3", 2},
		{"0x10", "3", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			asker := &scriptedAsker{lines: []string{tt.input, "3"}}
			answers, err := Collect([]manifest.Question{testQuestions[1]}, asker, io.Discard)
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := answers.Get("port"); got != tt.want {
				t.Errorf("port = %q, want %q", got, tt.want)
			}
			if len(asker.labels) != tt.asks {
				t.Errorf("asked %d times, want %d", len(asker.labels), tt.asks)
			}
		})
	}
}

func TestCollect_BoolCanonicalForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"yes", "true"},
		{"Y", "true"},
		{"TRUE", "true"},
		{"1", "true"},
		{"no", "false"},
		{"N", "false"},
		{"False", "false"},
		{"0", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			asker := &scriptedAsker{lines: []string{tt.input}}
			answers, err := Collect([]manifest.Question{testQuestions[2]}, asker, io.Discard)
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := answers.Get("fullscreen"); got != tt.want {
				t.Errorf("fullscreen = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollect_InvalidBoolReasks(t *testing.T) {
	asker := &scriptedAsker{lines: []string{"maybe", "n"}}
	var warn bytes.Buffer

	answers, err := Collect([]manifest.Question{testQuestions[2]}, asker, &warn)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := answers.Get("fullscreen"); got != "false" {
		t.Errorf("fullscreen = %q, want false", got)
	}
	if !strings.Contains(warn.String(), "Invalid boolean, enter yes or no") {
		t.Errorf("warning missing, got %q", warn.String())
	}
}

func TestCollect_UnknownTypeTreatedAsString(t *testing.T) {
	q := []manifest.Question{{Name: "author", Prompt: "Author", Type: "Text", Default: "anonymous"}}
	asker := &scriptedAsker{lines: []string{"  Jane Doe  "}}
	var warn bytes.Buffer

	answers, err := Collect(q, asker, &warn)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := answers.Get("author"); got != "Jane Doe" {
		t.Errorf("author = %q", got)
	}
	if !strings.Contains(warn.String(), `unknown question type "Text", treating as string`) {
		t.Errorf("warning missing, got %q", warn.String())
	}
}

func TestCollect_AskerErrorAborts(t *testing.T) {
	asker := &scriptedAsker{lines: []string{"demo"}}
	_, err := Collect(testQuestions, asker, io.Discard)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestCollect_PreservesOrder(t *testing.T) {
	asker := &scriptedAsker{lines: []string{"demo", "1", "y"}}
	answers, err := Collect(testQuestions, asker, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"app_name", "port", "fullscreen"}
	if diff := cmp.Diff(want, answers.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if answers.Len() != 3 {
		t.Errorf("Len() = %d, want 3", answers.Len())
	}
}

func TestAnswers_SetKeepsPosition(t *testing.T) {
	a := NewAnswers()
	a.Set("b", "1")
	a.Set("a", "2")
	a.Set("b", "3")

	if diff := cmp.Diff([]string{"b", "a"}, a.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if v, _ := a.Get("b"); v != "3" {
		t.Errorf("b = %q, want 3", v)
	}

	m := a.Map()
	m["b"] = "changed"
	if v, _ := a.Get("b"); v != "3" {
		t.Error("Map() should return a copy")
	}
}
