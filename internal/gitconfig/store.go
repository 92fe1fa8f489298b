package gitconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	remoteSectionNameConstant                    = "remote"
	remoteURLKeyConstant                         = "url"
	dottedKeySeparatorConstant                   = "."
	configPathTooShortMessageConstant            = "configuration path has fewer than two components"
	keyNotFoundMessageConstant                   = "configuration key not found"
	configReadErrorTemplateConstant              = "unable to read %s: %v"
	invalidDottedKeyErrorTemplateConstant        = "invalid configuration key %q: expected section.key or section.description.key"
	sectionHeaderTemplateConstant                = "[%s]\n"
	sectionHeaderWithDescriptionTemplateConstant = "[%s \"%s\"]\n"
	optionLineTemplateConstant                   = "\t%s = %s\n"
)

// ErrConfigPathTooShort indicates the configuration path cannot yield a repository root.
var ErrConfigPathTooShort = errors.New(configPathTooShortMessageConstant)

// ErrKeyNotFound indicates no section carries the requested key.
var ErrKeyNotFound = errors.New(keyNotFoundMessageConstant)

// ConfigReadError reports an I/O failure while reading a repository file.
type ConfigReadError struct {
	Path  string
	Cause error
}

// Error describes the failed read.
func (readError ConfigReadError) Error() string {
	return fmt.Sprintf(configReadErrorTemplateConstant, readError.Path, readError.Cause)
}

// Unwrap exposes the underlying I/O error.
func (readError ConfigReadError) Unwrap() error {
	return readError.Cause
}

// InvalidKeyError reports a dotted key that does not name a section option.
type InvalidKeyError struct {
	Key string
}

// Error describes the invalid key.
func (keyError InvalidKeyError) Error() string {
	return fmt.Sprintf(invalidDottedKeyErrorTemplateConstant, keyError.Key)
}

// Remote pairs a remote's name with its fetch URL.
type Remote struct {
	Name string
	URL  string
}

// ConfigStore is the parsed, read-only view of a repository configuration file.
type ConfigStore struct {
	path     string
	sections []*ConfigSection
}

// LoadConfiguration reads and parses the configuration file at configPath.
func LoadConfiguration(configPath string) (*ConfigStore, error) {
	contentBytes, readError := os.ReadFile(configPath)
	if readError != nil {
		return nil, ConfigReadError{Path: configPath, Cause: readError}
	}
	return ParseConfiguration(configPath, string(contentBytes)), nil
}

// Path returns the configuration file location.
func (store *ConfigStore) Path() string {
	return store.path
}

// Sections returns every section in file order.
func (store *ConfigStore) Sections() []*ConfigSection {
	return append([]*ConfigSection{}, store.sections...)
}

// QueryByName returns all sections with the given name in file order.
func (store *ConfigStore) QueryByName(name string) []*ConfigSection {
	matchingSections := []*ConfigSection{}
	for _, section := range store.sections {
		if section.Name == name {
			matchingSections = append(matchingSections, section)
		}
	}
	return matchingSections
}

// Remotes lists remotes that carry both a name and a single url.
func (store *ConfigStore) Remotes() []Remote {
	remotes := []Remote{}
	for _, section := range store.QueryByName(remoteSectionNameConstant) {
		if !section.HasDescription {
			continue
		}
		url, hasURL := singleOption(section, remoteURLKeyConstant)
		if !hasURL {
			continue
		}
		remotes = append(remotes, Remote{Name: section.Description, URL: url})
	}
	return remotes
}

// RemoteURLByFilter returns the first remote url containing substring.
func (store *ConfigStore) RemoteURLByFilter(substring string) (string, bool) {
	for _, section := range store.QueryByName(remoteSectionNameConstant) {
		url, hasURL := singleOption(section, remoteURLKeyConstant)
		if hasURL && strings.Contains(url, substring) {
			return url, true
		}
	}
	return "", false
}

// RepositoryRoot returns the directory two levels above the configuration file.
func (store *ConfigStore) RepositoryRoot() (string, error) {
	cleanedPath := filepath.Clean(store.path)
	gitDirectory := filepath.Dir(cleanedPath)
	if gitDirectory == cleanedPath || gitDirectory == "." {
		return "", ErrConfigPathTooShort
	}
	rootDirectory := filepath.Dir(gitDirectory)
	if rootDirectory == gitDirectory {
		return "", ErrConfigPathTooShort
	}
	return rootDirectory, nil
}

// Get resolves `section.key` or `section.description.key`. When several sections match,
// the last one containing the key wins.
func (store *ConfigStore) Get(dottedKey string) (ConfigValue, error) {
	sectionName, description, hasDescription, key, valid := splitDottedKey(dottedKey)
	if !valid {
		return ConfigValue{}, InvalidKeyError{Key: dottedKey}
	}

	var resolvedValue ConfigValue
	found := false
	for _, section := range store.QueryByName(sectionName) {
		if section.HasDescription != hasDescription || section.Description != description {
			continue
		}
		if value, exists := section.Query(key); exists {
			resolvedValue = value
			found = true
		}
	}
	if !found {
		return ConfigValue{}, ErrKeyNotFound
	}
	return resolvedValue, nil
}

// Serialize renders the store in canonical configuration syntax.
func (store *ConfigStore) Serialize() string {
	var builder strings.Builder
	for _, section := range store.sections {
		if section.HasDescription {
			builder.WriteString(fmt.Sprintf(sectionHeaderWithDescriptionTemplateConstant, section.Name, section.Description))
		} else {
			builder.WriteString(fmt.Sprintf(sectionHeaderTemplateConstant, section.Name))
		}
		for _, key := range section.keyOrder {
			for _, value := range section.options[key].values {
				builder.WriteString(fmt.Sprintf(optionLineTemplateConstant, key, value))
			}
		}
	}
	return builder.String()
}

func singleOption(section *ConfigSection, key string) (string, bool) {
	value, exists := section.Query(key)
	if !exists {
		return "", false
	}
	return value.Single()
}

func splitDottedKey(dottedKey string) (string, string, bool, string, bool) {
	firstSeparator := strings.Index(dottedKey, dottedKeySeparatorConstant)
	lastSeparator := strings.LastIndex(dottedKey, dottedKeySeparatorConstant)
	if firstSeparator <= 0 || lastSeparator == len(dottedKey)-1 {
		return "", "", false, "", false
	}
	sectionName := dottedKey[:firstSeparator]
	key := dottedKey[lastSeparator+1:]
	if firstSeparator == lastSeparator {
		return sectionName, "", false, key, true
	}
	description := dottedKey[firstSeparator+1 : lastSeparator]
	if len(description) == 0 {
		return "", "", false, "", false
	}
	return sectionName, description, true, key, true
}
