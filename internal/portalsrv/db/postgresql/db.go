// Package postgresql implements the portal db manager interfaces with
// hand-written SQL over a scoped connection.
package postgresql

import (
	"database/sql"

	"github.com/casahub/casahub-internal/internal/portalsrv/db/dbmanager"
)

type metadataManager struct {
	c dbmanager.ScopedConn
}

type billingManager struct {
	c dbmanager.ScopedConn
}

type portalManager struct {
	c dbmanager.ScopedConn
}

func (mm *metadataManager) conn() *sql.Conn {
	return mm.c.Conn()
}

func (bm *billingManager) conn() *sql.Conn {
	return bm.c.Conn()
}

func (pm *portalManager) conn() *sql.Conn {
	return pm.c.Conn()
}

// NewPortalDb returns the manager implementations sharing a single scoped
// connection.
func NewPortalDb(c dbmanager.ScopedConn) (*metadataManager, *billingManager, *portalManager, dbmanager.ScopedConn) {
	return &metadataManager{c: c}, &billingManager{c: c}, &portalManager{c: c}, c
}
