package ephemeris

import (
	"fmt"
	"strings"
)

// Provider kinds accepted by New.
const (
	KindMeeus  = "meeus"
	KindVSOP87 = "vsop87"
)

// New builds the provider named by kind. dataDir is only read for KindVSOP87.
func New(kind, dataDir string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindMeeus:
		return NewMeeus(), nil
	case KindVSOP87:
		if dataDir == "" {
			return nil, fmt.Errorf("vsop87 provider requires a data directory")
		}
		return NewVSOP87(dataDir)
	default:
		return nil, fmt.Errorf("unknown ephemeris provider %q", kind)
	}
}
