// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound maps to a 404 while ErrStoreUnavailable tells
// the reaction layer to switch to the degraded file store.
package repository

import (
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested row does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrStoreUnavailable is returned when the primary database cannot be
// reached at all, as opposed to rejecting a particular statement. The
// failover reaction store treats only this class of error as a reason
// to activate the file fallback.
var ErrStoreUnavailable = errors.New("store unavailable")

// IsUnavailable reports whether err indicates a connectivity failure
// rather than a statement-level error. Driver bad-connection sentinels
// and network errors qualify; constraint violations and SQL errors do
// not.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
