package domain

// KeyPrefix namespaces every storage key written by this service.
// Overridable from configuration before any repository is constructed.
var KeyPrefix = "catalogd:"
