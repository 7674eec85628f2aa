package libemit

// Version of the library, for diagnostics only.
const Version = "1.0.0"
