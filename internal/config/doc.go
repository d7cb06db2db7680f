// Package config loads and merges chronicle configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (CHRONICLE_BRANCH, CHRONICLE_FORMAT, GITHUB_TOKEN, etc.)
//  3. Config file ($XDG_CONFIG_HOME/chronicle/config.json)
//  4. Built-in defaults
//
// The GitHub token is only ever taken from the environment and is never
// written to the config file.
package config
