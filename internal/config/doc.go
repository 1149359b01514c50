// Package config defines the pvestack configuration model, its YAML loader
// with defaulting and validation, environment-driven timeout settings, and
// the interactive sizing wizard.
package config
