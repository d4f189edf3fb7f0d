package stats

import (
	"fmt"
	"io"
)

const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open picks a store by backend name. The returned closer must be called
// once the store is no longer needed.
func Open(backend, path string) (Store, io.Closer, error) {
	switch backend {
	case BackendText, "":
		return NewTextStore(path), nopCloser{}, nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown stats backend %q", backend)
	}
}
