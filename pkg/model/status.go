package model

//go:generate go run github.com/dmarkham/enumer -type SessionStatus -trimprefix Status -transform upper -json -sql -text -output status.gen.go
type SessionStatus int

const (
	StatusPending SessionStatus = iota
	StatusActive
	StatusExpired
	StatusRevoked
	StatusFailed
)

// Terminal reports whether the status permits no further transitions.
// EXPIRED, REVOKED and FAILED sessions stay that way forever; physical
// deletion is a separate administrative action.
func (s SessionStatus) Terminal() bool {
	switch s {
	case StatusExpired, StatusRevoked, StatusFailed:
		return true
	}
	return false
}
