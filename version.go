package imgship

import (
	"github.com/imgship/imgship/pkg/encode"
	"github.com/imgship/imgship/pkg/node"
	"github.com/imgship/imgship/pkg/tensor"
	"github.com/imgship/imgship/pkg/testcard"
	"github.com/imgship/imgship/pkg/webhook"
)

// Version information for the imgship module.
const (
	// Version is the current version of the imgship module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)

// ModuleVersions returns the current version of every sub-module.
func ModuleVersions() map[string]string {
	return map[string]string{
		"imgship":  Version,
		"tensor":   tensor.Version,
		"testcard": testcard.Version,
		"encode":   encode.Version,
		"webhook":  webhook.Version,
		"node":     node.Version,
	}
}

// CompatibilityMatrix returns the minimum compatible version of every
// sub-module.
func CompatibilityMatrix() map[string]string {
	return map[string]string{
		"imgship":  MinCompatibleVersion,
		"tensor":   tensor.MinCompatibleVersion,
		"testcard": testcard.MinCompatibleVersion,
		"encode":   encode.MinCompatibleVersion,
		"webhook":  webhook.MinCompatibleVersion,
		"node":     node.MinCompatibleVersion,
	}
}
