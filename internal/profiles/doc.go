// Package profiles manages git user profiles for gitutils.
//
// Profiles (name, email, optional signing key) live in a TOML document. Store
// loads and saves that document, Service adds, removes, and activates profiles,
// where activation rewrites the global git user settings and records the active
// profile id under gusr.active. CommandBuilder exposes the usr Cobra command.
package profiles
