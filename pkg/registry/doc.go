// Package registry keeps named components, such as the report parsers,
// that the engine looks up by module name. Registries are filled at
// startup, frozen, then only read.
package registry
