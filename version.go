package ioracle

// Version is the release of the installation core.
var Version = "0.3.0"
