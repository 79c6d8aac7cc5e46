// Package config loads the loom project configuration.
//
// Projects configure loom with a loom.json at the project root; a
// loom.yaml with the same shape is accepted as an alternative for
// projects that keep their tooling config in YAML. Both files are
// optional: every field has a default.
package config
