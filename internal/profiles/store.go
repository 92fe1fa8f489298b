package profiles

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/temirov/gitutils/internal/dependencies"
	"github.com/temirov/gitutils/internal/shared"
)

const (
	profilesFilePermissionsConstant      = 0o644
	profilesDirectoryPermissionsConstant = 0o755
	readProfilesErrorTemplateConstant    = "could not read the profiles file %s: %w"
	parseProfilesErrorTemplateConstant   = "could not parse the profiles file %s: %w"
	encodeProfilesErrorTemplateConstant  = "could not serialize the profiles: %w"
	writeProfilesErrorTemplateConstant   = "could not write the profiles file %s: %w"
)

// Profile is one git identity.
type Profile struct {
	ID         string `toml:"id"`
	Name       string `toml:"name"`
	Email      string `toml:"email"`
	SigningKey string `toml:"signingkey,omitempty"`
}

// Document is the persisted profiles file.
type Document struct {
	Profiles []Profile `toml:"profile"`
}

// Find returns the profile with identifier.
func (document Document) Find(identifier string) (Profile, bool) {
	for _, profile := range document.Profiles {
		if profile.ID == identifier {
			return profile, true
		}
	}
	return Profile{}, false
}

// Store reads and writes the profiles document at a fixed path.
type Store struct {
	path       string
	fileSystem shared.FileSystem
}

// NewStore constructs a Store for path using fileSystem, defaulting to the operating system.
func NewStore(path string, fileSystem shared.FileSystem) *Store {
	return &Store{path: path, fileSystem: dependencies.ResolveFileSystem(fileSystem)}
}

// Path returns the profiles file location.
func (store *Store) Path() string {
	return store.path
}

// Load reads the document, creating an empty one when the file does not exist yet.
func (store *Store) Load() (Document, error) {
	content, readError := store.fileSystem.ReadFile(store.path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			emptyDocument := Document{Profiles: []Profile{}}
			if saveError := store.Save(emptyDocument); saveError != nil {
				return Document{}, saveError
			}
			return emptyDocument, nil
		}
		return Document{}, fmt.Errorf(readProfilesErrorTemplateConstant, store.path, readError)
	}

	document := Document{}
	if decodeError := toml.Unmarshal(content, &document); decodeError != nil {
		return Document{}, fmt.Errorf(parseProfilesErrorTemplateConstant, store.path, decodeError)
	}
	if document.Profiles == nil {
		document.Profiles = []Profile{}
	}
	return document, nil
}

// Save writes document to the profiles file.
func (store *Store) Save(document Document) error {
	content, encodeError := Encode(document)
	if encodeError != nil {
		return encodeError
	}
	if mkdirError := store.fileSystem.MkdirAll(filepath.Dir(store.path), profilesDirectoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(writeProfilesErrorTemplateConstant, store.path, mkdirError)
	}
	if writeError := store.fileSystem.WriteFile(store.path, content, profilesFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeProfilesErrorTemplateConstant, store.path, writeError)
	}
	return nil
}

// Encode renders document as TOML with one [[profile]] table per profile.
func Encode(document Document) ([]byte, error) {
	if document.Profiles == nil {
		document.Profiles = []Profile{}
	}
	content, encodeError := toml.Marshal(document)
	if encodeError != nil {
		return nil, fmt.Errorf(encodeProfilesErrorTemplateConstant, encodeError)
	}
	return content, nil
}
