// Package sqliteexternal registers the CGO SQLite driver
// (github.com/mattn/go-sqlite3) for builds tagged cgo_sqlite.
//
// core/sqlite imports it automatically under that tag; import it directly
// only when opening databases through database/sql yourself:
//
//	import _ "github.com/FocuswithJustin/passage/contrib/sqlite-external"
//
// Build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite
//
// Without the tag, the catalog store uses the pure Go modernc.org/sqlite
// driver and this package is empty.
package sqliteexternal
