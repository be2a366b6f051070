package common

// UnknownStr is the String() value of an out-of-range enum.
const UnknownStr = "unknown"
