package tensor

// Version information for the tensor module.
const (
	// Version is the current version of the tensor module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
