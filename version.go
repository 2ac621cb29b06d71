// Package kindling holds suite-wide metadata shared by the CLI commands.
package kindling

// Version is the current Kindling release.
var Version = "0.1.0"
