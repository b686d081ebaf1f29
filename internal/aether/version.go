package aether

// Version of the Aether language tooling.
const Version = "0.1.0"
