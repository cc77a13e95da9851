package version

// Version is reported by the api server.
const Version = "0.1.0"
