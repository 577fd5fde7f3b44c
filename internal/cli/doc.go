// Package cli parses circuitgo's command-line arguments into an app.Config.
package cli
