// Package types defines the Store and Collection interfaces, the Markup
// composite value, table and markup-field declarations, and the standard
// error types for the Inkwell storage system.
package types
