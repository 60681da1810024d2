// Package config manages user-level settings stored at ~/.arkmod/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default manifest location, the anchor matching mode, and backup and
// receipt retention behavior.
package config
