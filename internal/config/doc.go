// Package config provides configuration loading, merging, and validation
// for the crm-auth binaries.
//
// Configuration is assembled from several sources. For every field the
// first source that sets a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// Boolean switches can therefore only be turned on by a source, never off.
// The main entry points are [GetStructuredConfig] for the server and [Load]
// for binaries that need the positional arguments left after flags.
package config
