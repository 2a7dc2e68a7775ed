// Package assets embeds starter files shipped with the binary: the example
// configuration installed by `grumpi-miner init`.
package assets

import "embed"

// Examples holds the embedded example configuration files.
//
//go:embed examples
var Examples embed.FS
