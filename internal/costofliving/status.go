package costofliving

import "fmt"

// LoadState is the lifecycle of the dataset behind a Resolver.
type LoadState int

const (
	// StateLoading means no load attempt has completed yet.
	StateLoading LoadState = iota
	// StateReady means the latest load attempt succeeded.
	StateReady
	// StateError means the latest load attempt failed.
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON and YAML output.
func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status is a snapshot of the dataset load.
type Status struct {
	State   LoadState `json:"state"`
	Message string    `json:"message,omitempty"`
	Records int       `json:"records"`
}

// Ready reports whether the latest load succeeded.
func (s Status) Ready() bool {
	return s.State == StateReady
}
