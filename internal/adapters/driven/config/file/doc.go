// Package file provides file-based configuration for kbchat.
//
// Adapters:
//   - ConfigStore: flattened key/value view of a TOML or YAML config file
//   - Loader: resolves domain.Settings from defaults, the config file,
//     a .env file and the process environment
package file
