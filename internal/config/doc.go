// Package config loads watcher settings from the environment, with
// optional .env file support for local development.
package config
