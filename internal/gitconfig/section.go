package gitconfig

// ConfigSection is one bracketed block of the configuration file.
// Sections sharing a name are kept as separate instances in file order.
type ConfigSection struct {
	Name           string
	Description    string
	HasDescription bool
	options        map[string]ConfigValue
	keyOrder       []string
}

func newConfigSection(name string, description string, hasDescription bool) *ConfigSection {
	return &ConfigSection{
		Name:           name,
		Description:    description,
		HasDescription: hasDescription,
		options:        map[string]ConfigValue{},
	}
}

// Query returns the value recorded for key within this section.
func (section *ConfigSection) Query(key string) (ConfigValue, bool) {
	value, exists := section.options[key]
	return value, exists
}

// Keys lists option keys in the order they first appeared.
func (section *ConfigSection) Keys() []string {
	return append([]string{}, section.keyOrder...)
}

func (section *ConfigSection) record(key string, value string) {
	existingValue, exists := section.options[key]
	if !exists {
		section.options[key] = NewSingleValue(value)
		section.keyOrder = append(section.keyOrder, key)
		return
	}
	section.options[key] = existingValue.withAppended(value)
}
