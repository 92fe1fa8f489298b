package configcmd

import (
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitutils/internal/gitconfig"
)

// OutputFormat enumerates supported renderings of the parsed sections.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"
)

type sectionDocument struct {
	Name        string           `yaml:"name"`
	Description *string          `yaml:"description,omitempty"`
	Options     []optionDocument `yaml:"options,omitempty"`
}

type optionDocument struct {
	Key    string   `yaml:"key"`
	Value  string   `yaml:"value,omitempty"`
	Values []string `yaml:"values,omitempty,flow"`
}

// RenderSections renders every parsed section in file order using format.
func RenderSections(configStore *gitconfig.ConfigStore, format OutputFormat) (string, error) {
	if format != OutputFormatYAML {
		return configStore.Serialize(), nil
	}

	documents := make([]sectionDocument, 0, len(configStore.Sections()))
	for _, section := range configStore.Sections() {
		document := sectionDocument{Name: section.Name}
		if section.HasDescription {
			description := section.Description
			document.Description = &description
		}
		for _, key := range section.Keys() {
			value, _ := section.Query(key)
			option := optionDocument{Key: key}
			if single, isSingle := value.Single(); isSingle {
				option.Value = single
			} else {
				option.Values = value.Values()
			}
			document.Options = append(document.Options, option)
		}
		documents = append(documents, document)
	}

	content, marshalError := yaml.Marshal(documents)
	if marshalError != nil {
		return "", marshalError
	}
	return string(content), nil
}
