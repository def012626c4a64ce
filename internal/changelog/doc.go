// Package changelog loads versioned changelog data and renders it as HTML.
//
// This package implements:
//   - Manifest (versions-index.json) loading
//   - Concurrent fetching of the per-version JSON files listed in the manifest
//   - Rendering of version blocks into a container element of a host page
//   - Terminal formatting of loaded records for the CLI
//
// Every fetch has a strict form returning a *FetchError and a lenient form
// that logs the failure and yields an empty result. The page pipeline uses
// the lenient forms, so a broken manifest renders as an empty changelog and a
// broken version file is simply left out.
package changelog
