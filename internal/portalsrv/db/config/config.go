package config

import (
	"fmt"
	"os"
	"strconv"
)

type dbconncfg struct {
	host     string
	port     int
	dbname   string
	user     string
	password string
	sslmode  string
}

var portalDbConn *dbconncfg

func init() {
	portalDbConn = &dbconncfg{
		host:     envOr("CASAHUB_DB_HOST", "localhost"),
		port:     envIntOr("CASAHUB_DB_PORT", 5432),
		user:     envOr("CASAHUB_DB_USER", "portal_api"),
		password: envOr("CASAHUB_DB_PASSWORD", "abc@123"),
		dbname:   envOr("CASAHUB_DB_NAME", "casahubportal"),
		sslmode:  envOr("CASAHUB_DB_SSLMODE", "disable"),
	}
}

func PortalDsn() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		portalDbConn.host, portalDbConn.port, portalDbConn.user, portalDbConn.password, portalDbConn.dbname, portalDbConn.sslmode)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
