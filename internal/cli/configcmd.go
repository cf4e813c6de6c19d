package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgServer string
	cfgJobKey string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
}

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the CLI configuration file",
	Long: `Create the CLI configuration file pointing at a portal server.

Examples:
  casahub config create --server http://localhost:8210 --job-key my-job-key`,
	RunE: createConfig,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the current CLI configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadConfig(configFile); err != nil {
			return err
		}
		c := GetConfig()
		if jsonOutput {
			printJSON(c)
			return nil
		}
		fmt.Printf("Server: %s\n", c.Server)
		if c.JobKey != "" {
			fmt.Println("Job Key: (set)")
		} else {
			fmt.Println("Job Key: (not set)")
		}
		return nil
	},
}

func createConfig(cmd *cobra.Command, args []string) error {
	if cfgServer == "" {
		return fmt.Errorf("--server is required")
	}
	c := &Config{
		Version: "v1",
		Server:  cfgServer,
		JobKey:  cfgJobKey,
	}
	if err := SaveConfig(c, configFile); err != nil {
		return err
	}
	path := configFile
	if path == "" {
		path, _ = GetDefaultConfigPath()
	}
	fmt.Printf("Config written to %s\n", path)
	return nil
}

func init() {
	configCreateCmd.Flags().StringVar(&cfgServer, "server", "", "Base URL of the portal server")
	configCreateCmd.Flags().StringVar(&cfgJobKey, "job-key", "", "Shared job key for webhook and cron endpoints")
	configCmd.AddCommand(configCreateCmd)
	configCmd.AddCommand(configViewCmd)
	rootCmd.AddCommand(configCmd)
}
