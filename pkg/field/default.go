package field

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed registry.yaml
var defaultRegistryYAML []byte

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the built-in share-sale term sheet registry. The
// embedded document is parsed once; the registry is immutable after
// that.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := LoadYAML(bytes.NewReader(defaultRegistryYAML))
		if err != nil {
			panic("field: embedded registry is invalid: " + err.Error())
		}
		defaultReg = reg
	})
	return defaultReg
}
