// Package embedded provides embedded static assets for the application.
package embedded

import (
	"embed"
)

// Files contains the dashboard (frontend/dist), served directly via HTTP:
//   - index.html - single page dashboard
//   - assets/ - scripts and styles referenced by index.html
//
//go:embed frontend/dist
var Files embed.FS
