package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/logtrace"
	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
	"github.com/casahub/casahub-internal/internal/portalsrv/server"
)

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile *string
}

func main() {

	slog := log.With().Str("state", "init").Logger()
	// Parse command line flags
	opt := parseFlags()

	slog.Info().Str("config_file", *opt.configFile).Msg("loading config file")
	if err := config.LoadConfig(*opt.configFile); err != nil {
		slog.Error().Str("config_file", *opt.configFile).Err(err).Msg("unable to load config file")
		os.Exit(1)
	}
	if config.Config().ServerPort == "" {
		slog.Error().Msg("server port not defined")
		os.Exit(1)
	}
	if config.Config().SingleOrgMode {
		slog.Info().Msg("single org mode enabled")
		if err := createDefaultOrg(); err != nil {
			slog.Error().Err(err).Msg("unable to create default org")
			os.Exit(1)
		}
	}

	s, err := server.CreateNewServer()
	if err != nil {
		slog.Error().Err(err).Msg("Unable to create server")
		os.Exit(1)
	}
	s.MountHandlers()

	sched, err := server.StartScheduler(context.Background())
	if err != nil {
		slog.Error().Err(err).Msg("unable to start invoice scheduler")
		os.Exit(1)
	}
	if sched != nil {
		defer sched.Stop()
	}

	slog.Info().Str("port", config.Config().ServerPort).Msg("starting portal server")
	if err := http.ListenAndServe(":"+config.Config().ServerPort, s.Router); err != nil {
		slog.Error().Err(err).Msg("server terminated")
		os.Exit(1)
	}
}

// createDefaultOrg seeds the configured default org and, when the bootstrap
// env vars are set, a first admin account to log in with.
func createDefaultOrg() error {
	ctx := db.ConnCtx(context.Background())
	conn := db.DB(ctx)
	if conn == nil {
		return errors.New("unable to get db connection")
	}
	defer conn.Close(ctx)

	orgID := pmcommon.OrgId(config.Config().DefaultOrgID)
	if err := conn.CreateOrg(ctx, &models.Org{OrgID: orgID, Name: "Default Organisation"}); err != nil {
		if !errors.Is(err, dberror.ErrAlreadyExists) {
			return err
		}
	}

	email := os.Getenv("CASAHUB_ADMIN_EMAIL")
	password := os.Getenv("CASAHUB_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}
	hash, herr := pmcommon.HashPassword(password)
	if herr != nil {
		return herr
	}
	ctx = pmcommon.SetOrgIdInContext(ctx, orgID)
	err := conn.CreateUser(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         pmcommon.RoleAdmin,
	})
	if err != nil && !errors.Is(err, dberror.ErrAlreadyExists) {
		return err
	}
	return nil
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", "", "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
