package gitconfig

import (
	"strings"
	"unicode"
)

const (
	sectionHeaderPrefixConstant       = "["
	optionAssignmentSeparatorConstant = "="
	headerNameSeparatorsConstant      = " \t"
	sanitizedCharactersConstant       = "[]\""
	embeddedControlCharactersConstant = "\t\r\n"
	commentPrefixesConstant           = "#;"
)

// ParseConfiguration builds a ConfigStore from configuration text. Parsing never fails:
// option lines that cannot be read as key = value are skipped.
func ParseConfiguration(configPath string, content string) *ConfigStore {
	store := &ConfigStore{path: configPath}

	var currentSection *ConfigSection
	for line := range strings.Lines(content) {
		trimmedLine := strings.TrimSpace(line)
		if strings.HasPrefix(trimmedLine, sectionHeaderPrefixConstant) {
			name, description, hasDescription := parseSectionHeader(trimmedLine)
			currentSection = newConfigSection(name, description, hasDescription)
			store.sections = append(store.sections, currentSection)
			continue
		}
		if currentSection == nil {
			continue
		}
		key, value, parsed := parseOptionLine(trimmedLine)
		if !parsed {
			continue
		}
		currentSection.record(key, value)
	}

	return store
}

// parseSectionHeader splits `[name "description"]` on the first whitespace.
func parseSectionHeader(headerLine string) (string, string, bool) {
	separatorIndex := strings.IndexAny(headerLine, headerNameSeparatorsConstant)
	if separatorIndex < 0 {
		return sanitize(headerLine), "", false
	}
	name := sanitize(headerLine[:separatorIndex])
	description := sanitize(headerLine[separatorIndex+1:])
	if len(description) == 0 {
		return name, "", false
	}
	return name, description, true
}

// parseOptionLine reads `key = value`, splitting on the first '='.
func parseOptionLine(line string) (string, string, bool) {
	trimmedLine := strings.TrimSpace(line)
	if len(trimmedLine) == 0 || strings.ContainsRune(commentPrefixesConstant, rune(trimmedLine[0])) {
		return "", "", false
	}
	rawKey, rawValue, found := strings.Cut(trimmedLine, optionAssignmentSeparatorConstant)
	if !found {
		return "", "", false
	}
	key := strings.TrimSpace(rawKey)
	value := strings.TrimSpace(rawValue)
	if len(key) == 0 || len(value) == 0 {
		return "", "", false
	}
	return key, value, true
}

func sanitize(raw string) string {
	trimmed := strings.TrimFunc(raw, func(character rune) bool {
		return unicode.IsSpace(character) || strings.ContainsRune(sanitizedCharactersConstant, character)
	})
	return strings.Map(func(character rune) rune {
		if strings.ContainsRune(embeddedControlCharactersConstant, character) {
			return -1
		}
		return character
	}, trimmed)
}
