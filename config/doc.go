// Package config loads extraction settings from defaults, environment
// variables, and an optional config file, and persists marker layouts
// to disk so a marking session can resume later.
package config
