// Package manifest assembles flatpak application manifests.
//
// A manifest is built from a static template (see Variants) and a list of
// dependency sources produced by flatpak-cargo-generator. Merging is a pure
// append onto the first module's sources:
//
//	tmpl.Modules[0].Sources ++ cargo-sources.json
//
// No deduplication, validation or reordering happens during a merge. The
// static template entries always come first, followed by every generated
// source in file order.
//
// # Sources
//
// Generated sources are kept as raw JSON so their shape and key order survive
// the round trip untouched:
//
//	[
//	    {"type": "archive", "url": "https://static.crates.io/...", "sha256": "..."},
//	    {"type": "inline", "contents": "...", "dest": "cargo/vendor/..."}
//	]
//
// # Output
//
// Encode produces 4-space indented JSON with a trailing newline. The same
// template and sources always encode to the same bytes.
package manifest
