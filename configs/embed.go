package configs

import (
	"embed"
)

// FS provides the embedded default game config for external usage.
//
//go:embed *.yaml
var FS embed.FS
