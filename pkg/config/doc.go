// Package config loads the rolevend service configuration from an optional
// YAML file with ROLEVEND_* environment variable overrides.
//
// The result is a plain immutable value handed to components at
// construction. There is deliberately no global accessor: any piece of code
// that needs configuration says so in its constructor signature.
package config
