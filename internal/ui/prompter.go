package ui

import (
	"bufio"
	"io"
	"strings"
)

const (
	affirmativeShortAnswerConstant = "y"
	affirmativeLongAnswerConstant  = "yes"
	defaultYesPromptSuffixConstant = " [Y/n] "
	defaultNoPromptSuffixConstant  = " [y/N] "
)

// IOConfirmationPrompter reads confirmation responses from an io.Reader.
type IOConfirmationPrompter struct {
	reader        *bufio.Reader
	writer        io.Writer
	defaultAnswer bool
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer, defaultAnswer bool) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output, defaultAnswer: defaultAnswer}
}

// Confirm writes the prompt and interprets y/yes as agreement.
// An empty answer or end of input selects the default; anything else declines.
func (prompter *IOConfirmationPrompter) Confirm(prompt string) (bool, error) {
	if prompter.writer != nil {
		promptSuffix := defaultNoPromptSuffixConstant
		if prompter.defaultAnswer {
			promptSuffix = defaultYesPromptSuffixConstant
		}
		if _, writeError := io.WriteString(prompter.writer, prompt+promptSuffix); writeError != nil {
			return false, writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return false, readError
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case "":
		return prompter.defaultAnswer, nil
	case affirmativeShortAnswerConstant, affirmativeLongAnswerConstant:
		return true, nil
	default:
		return false, nil
	}
}

// StaticConfirmationPrompter answers every confirmation with a fixed value, used for --yes.
type StaticConfirmationPrompter struct {
	Answer bool
}

// Confirm returns the fixed answer.
func (prompter StaticConfirmationPrompter) Confirm(string) (bool, error) {
	return prompter.Answer, nil
}
