package dbmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	retry "github.com/avast/retry-go/v4"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/portalsrv/db/config"
)

// postgresConn represents a checked-out connection to the PostgreSQL database.
type postgresConn struct {
	conn             *sql.Conn
	cancel           context.CancelFunc
	scopes           map[string]string
	configuredScopes []string
	pool             *postgresPool
}

// postgresPool represents a pool of PostgreSQL database connections.
type postgresPool struct {
	configuredScopes []string
	connRequests     uint64
	connReturns      uint64
	db               *sql.DB
}

// NewPostgresqlDb creates a new PostgreSQL database connection pool with the
// given configured scopes. The initial ping is retried with backoff so the
// server survives a database that is still starting up.
func NewPostgresqlDb(configuredScopes []string) (ScopedDb, error) {
	dsn := config.PortalDsn()

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Error().Err(err).Msg("failed to open db")
		return nil, err
	}

	err = retry.Do(
		func() error { return sqlDB.Ping() },
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to ping db")
		return nil, err
	}

	return &postgresPool{
		configuredScopes: configuredScopes,
		db:               sqlDB,
	}, nil
}

// Conn returns a new connection to the PostgreSQL database from the connection pool.
func (p *postgresPool) Conn(ctx context.Context) (ScopedConn, error) {
	ctx, cancel := context.WithCancel(ctx)

	conn, err := p.db.Conn(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to obtain connection")
		cancel()
		return nil, err
	}

	// guard against statements holding locks forever
	_, err = conn.ExecContext(ctx, "SET lock_timeout = '5s'")
	if err != nil {
		log.Error().Err(err).Msg("failed to set lock timeout")
		cancel()
		conn.Close()
		return nil, err
	}
	_, err = conn.ExecContext(ctx, "SET statement_timeout = '5s'")
	if err != nil {
		log.Error().Err(err).Msg("failed to set statement timeout")
		cancel()
		conn.Close()
		return nil, err
	}

	h := &postgresConn{
		configuredScopes: p.configuredScopes,
		scopes:           make(map[string]string),
		cancel:           cancel,
		pool:             p,
		conn:             conn,
	}

	// Clean up the scopes, just in case.
	err = h.DropScopes(ctx, p.configuredScopes)
	if err != nil {
		cancel()
		conn.Close()
		return nil, err
	}

	p.connRequests++
	return h, nil
}

// Stats returns the number of connection requests and returns made to the PostgreSQL database.
func (p *postgresPool) Stats() (requests, returns uint64) {
	return p.connRequests, p.connReturns
}

// Close cleans up the scopes and returns the connection back to the pool.
func (h *postgresConn) Close(ctx context.Context) {
	h.DropAllScopes(ctx)
	if h.cancel != nil {
		h.cancel()
	}
	if h.conn != nil {
		h.conn.Close()
	}
	h.pool.connReturns++
}

// IsConfiguredScope checks if the given scope is configured for this connection.
func (h *postgresConn) IsConfiguredScope(scope string) bool {
	for _, s := range h.configuredScopes {
		if s == scope {
			return true
		}
	}
	return false
}

// AddScopes adds the given scopes to the connection.
func (h *postgresConn) AddScopes(ctx context.Context, scopes map[string]string) {
	if h.conn == nil {
		return
	}
	for scope, value := range scopes {
		if h.IsConfiguredScope(scope) {
			sqlCmd := fmt.Sprintf("SET %s TO $1", scope)
			_, err := h.conn.ExecContext(ctx, sqlCmd, value)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).Msg("failed to set scope")
				panic(err)
			}
			h.scopes[scope] = value
		}
	}
}

// AddScope adds a single scope to the connection.
func (h *postgresConn) AddScope(ctx context.Context, scope, value string) {
	if h.conn == nil {
		return
	}
	if h.IsConfiguredScope(scope) {
		sqlCmd := fmt.Sprintf("SET %s TO $1", scope)
		_, err := h.conn.ExecContext(ctx, sqlCmd, value)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to set scope")
			panic(err)
		}
		h.scopes[scope] = value
	}
}

// AuthorizedScopes returns the currently authorized scopes on the connection.
func (h *postgresConn) AuthorizedScopes() map[string]string {
	return h.scopes
}

// DropScopes drops the given scopes from the connection.
func (h *postgresConn) DropScopes(ctx context.Context, scopes []string) error {
	if h.conn == nil {
		log.Ctx(ctx).Error().Msg("no connection")
		return nil // don't return error and panic
	}
	for _, scope := range scopes {
		sqlCmd := fmt.Sprintf("RESET %s", scope)
		_, err := h.conn.ExecContext(ctx, sqlCmd)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to reset scope")
			return err
		}
		delete(h.scopes, scope)
	}
	return nil
}

// DropScope drops a single scope from the connection.
func (h *postgresConn) DropScope(ctx context.Context, scope string) error {
	if h.conn == nil {
		return nil // don't return error and panic
	}
	sqlCmd := fmt.Sprintf("RESET %s", scope)
	_, err := h.conn.ExecContext(ctx, sqlCmd)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to reset scope")
		return err
	}
	delete(h.scopes, scope)
	return nil
}

// DropAllScopes drops all the configured scopes from the connection.
func (h *postgresConn) DropAllScopes(ctx context.Context) error {
	return h.DropScopes(ctx, h.configuredScopes)
}

// Conn returns the underlying connection of the postgresConn.
func (h *postgresConn) Conn() *sql.Conn {
	return h.conn
}
