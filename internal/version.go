package internal

// SDKVersion is the current version string of the SDK. This is updated by our release scripts.
const SDKVersion = "1.0.0"
