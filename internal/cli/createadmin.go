package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
	adminOrg      string
)

// createAdminCmd bootstraps the first admin account. It talks to the
// database directly (connection from the CASAHUB_DB_* env vars), so it must
// run on a host with database access rather than through the API.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin user directly in the database",
	Long: `Create an admin user directly in the database. Use this to bootstrap the
first admin account; further users can be created through the portal API.

The database connection is taken from the CASAHUB_DB_* environment variables.
The password is read from --password or, preferably, the
CASAHUB_ADMIN_PASSWORD environment variable.

Examples:
  CASAHUB_ADMIN_PASSWORD=secret casahub create-admin --email admin@example.com --name "Site Admin"`,
	RunE: createAdmin,
}

func createAdmin(cmd *cobra.Command, args []string) error {
	if adminEmail == "" {
		return fmt.Errorf("--email is required")
	}
	if adminName == "" {
		return fmt.Errorf("--name is required")
	}
	password := adminPassword
	if password == "" {
		password = os.Getenv("CASAHUB_ADMIN_PASSWORD")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters; set --password or CASAHUB_ADMIN_PASSWORD")
	}

	hash, err := pmcommon.HashPassword(password)
	if err != nil {
		return fmt.Errorf("unable to hash password: %w", err)
	}

	ctx := pmcommon.SetOrgIdInContext(context.Background(), pmcommon.OrgId(adminOrg))
	ctx = db.ConnCtx(ctx)
	conn := db.DB(ctx)
	if conn == nil {
		return fmt.Errorf("unable to connect to the database; check CASAHUB_DB_* settings")
	}
	defer conn.Close(ctx)

	user := &models.User{
		Email:        adminEmail,
		PasswordHash: hash,
		FullName:     adminName,
		Role:         pmcommon.RoleAdmin,
	}
	if cerr := conn.CreateUser(ctx, user); cerr != nil {
		if errors.Is(cerr, dberror.ErrAlreadyExists) {
			return fmt.Errorf("a user with email %s already exists", adminEmail)
		}
		return cerr
	}

	if jsonOutput {
		printJSON(map[string]string{
			"user_id": user.UserID.String(),
			"email":   user.Email,
			"role":    string(user.Role),
		})
	} else {
		fmt.Printf("Admin user created: %s (%s)\n", user.Email, user.UserID)
	}
	return nil
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Email address of the admin user")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Full name of the admin user")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password (prefer CASAHUB_ADMIN_PASSWORD)")
	createAdminCmd.Flags().StringVar(&adminOrg, "org", "ORGDEFLT", "Organisation ID")
	rootCmd.AddCommand(createAdminCmd)
}
