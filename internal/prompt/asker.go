package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the operator interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Asker shows a label and blocks until one line of input is available.
type Asker interface {
	Ask(label string) (string, error)
}

// LineAsker reads answers line by line. It suits pipes and scripted input.
type LineAsker struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLineAsker returns a LineAsker reading from in and printing labels to out.
func NewLineAsker(in io.Reader, out io.Writer) *LineAsker {
	return &LineAsker{reader: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the next line without its terminator.
// A final line without a newline is still returned; io.EOF is returned
// only once the input is exhausted.
func (a *LineAsker) Ask(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// SurveyAsker prompts on an interactive terminal.
type SurveyAsker struct {
	opts []survey.AskOpt
}

// NewSurveyAsker returns an asker bound to the given terminal streams.
func NewSurveyAsker(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *SurveyAsker {
	return &SurveyAsker{opts: []survey.AskOpt{survey.WithStdio(in, out, errOut)}}
}

// Ask shows label as the prompt message. Defaults are part of the label so
// that an empty answer is passed through unchanged.
func (a *SurveyAsker) Ask(label string) (string, error) {
	var out string
	prompt := &survey.Input{
		Message: strings.TrimSuffix(strings.TrimSpace(label), ":"),
	}
	if err := survey.AskOne(prompt, &out, a.opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// NewAsker picks a SurveyAsker when in is a terminal and a LineAsker otherwise.
func NewAsker(in io.Reader, out io.Writer) Asker {
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)
	if inOK && outOK && IsTerminal(inFile) && IsTerminal(outFile) {
		return NewSurveyAsker(inFile, outFile, outFile)
	}
	return NewLineAsker(in, out)
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
