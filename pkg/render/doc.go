// Package render provides the markup renderer registry for the Inkwell
// storage system. A registry maps markup-type names to renderer functions
// that convert raw text to HTML. The registry is populated once during
// application configuration and is read-only afterwards; rendering happens
// synchronously on the save path of the SQLite backend.
package render
