package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderTemplateConstant      = "`<%s>`"
	choiceSeparatorConstant                = "|"
	unsupportedChoiceErrorTemplateConstant = "unsupported value %q: expected one of %s"
	choiceListSeparatorConstant            = ", "
)

// ChoiceSet is the closed set of values accepted by an enumerated flag such as --log-format.
type ChoiceSet struct {
	Default string
	Choices []string
}

// NewChoiceSet trims the choices and drops case-insensitive duplicates, keeping the first spelling.
func NewChoiceSet(defaultChoice string, choices ...string) ChoiceSet {
	distinctChoices := make([]string, 0, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 || containsFold(distinctChoices, trimmedChoice) {
			continue
		}
		distinctChoices = append(distinctChoices, trimmedChoice)
	}
	return ChoiceSet{Default: strings.TrimSpace(defaultChoice), Choices: distinctChoices}
}

// Usage renders `<a|B|c>` with the default upper-cased, followed by description when present.
func (choiceSet ChoiceSet) Usage(description string) string {
	displayedChoices := make([]string, 0, len(choiceSet.Choices))
	for _, choice := range choiceSet.Choices {
		if strings.EqualFold(choice, choiceSet.Default) {
			choice = strings.ToUpper(choice)
		}
		displayedChoices = append(displayedChoices, choice)
	}

	placeholder := fmt.Sprintf(choicePlaceholderTemplateConstant, strings.Join(displayedChoices, choiceSeparatorConstant))
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return placeholder
	}
	return placeholder + " " + trimmedDescription
}

// Normalize matches value case-insensitively and returns the canonical spelling. An empty value selects the default.
func (choiceSet ChoiceSet) Normalize(value string) (string, error) {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 && len(choiceSet.Default) > 0 {
		return choiceSet.Default, nil
	}
	for _, choice := range choiceSet.Choices {
		if strings.EqualFold(choice, trimmedValue) {
			return choice, nil
		}
	}
	return "", fmt.Errorf(unsupportedChoiceErrorTemplateConstant, value, strings.Join(choiceSet.Choices, choiceListSeparatorConstant))
}

func containsFold(values []string, candidate string) bool {
	for _, value := range values {
		if strings.EqualFold(value, candidate) {
			return true
		}
	}
	return false
}
