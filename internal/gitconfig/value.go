package gitconfig

// ConfigValueKind distinguishes options seen once from options repeated within a section.
type ConfigValueKind int

// Supported value kinds.
const (
	ConfigValueSingle ConfigValueKind = iota
	ConfigValueMultiple
)

// ConfigValue holds the value or values recorded for a single option key.
type ConfigValue struct {
	kind   ConfigValueKind
	values []string
}

// NewSingleValue constructs a value for a key that appeared once.
func NewSingleValue(value string) ConfigValue {
	return ConfigValue{kind: ConfigValueSingle, values: []string{value}}
}

// NewMultipleValue constructs a value for a key that appeared several times, in file order.
func NewMultipleValue(values ...string) ConfigValue {
	return ConfigValue{kind: ConfigValueMultiple, values: append([]string{}, values...)}
}

// Kind reports whether the value is single or multiple.
func (value ConfigValue) Kind() ConfigValueKind {
	return value.kind
}

// Single returns the value when the key appeared exactly once.
func (value ConfigValue) Single() (string, bool) {
	if value.kind != ConfigValueSingle || len(value.values) == 0 {
		return "", false
	}
	return value.values[0], true
}

// Values returns every recorded value in file order.
func (value ConfigValue) Values() []string {
	return append([]string{}, value.values...)
}

// Last returns the final recorded value, which is the one git itself honours.
func (value ConfigValue) Last() string {
	if len(value.values) == 0 {
		return ""
	}
	return value.values[len(value.values)-1]
}

func (value ConfigValue) withAppended(additional string) ConfigValue {
	combined := make([]string, 0, len(value.values)+1)
	combined = append(combined, value.values...)
	combined = append(combined, additional)
	return ConfigValue{kind: ConfigValueMultiple, values: combined}
}
