package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// StatusResponse represents the response from the /version endpoint
type StatusResponse struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get server status",
	Long: `Get server status. This command returns the server and API versions of the
configured portal server.

Examples:
  # Get server status
  casahub status

  # Get server status in JSON format
  casahub status -j`,
	RunE: getStatus,
}

func getStatus(cmd *cobra.Command, args []string) error {
	response, err := doRequest("GET", "/version", nil, false)
	if err != nil {
		return err
	}

	var statusRsp StatusResponse
	if err := json.Unmarshal(response, &statusRsp); err != nil {
		return fmt.Errorf("failed to parse response: %v", err)
	}

	if jsonOutput {
		printJSON(map[string]any{
			"result": 1,
			"value":  statusRsp,
		})
	} else {
		fmt.Printf("Server Version: %s\n", statusRsp.ServerVersion)
		fmt.Printf("API Version: %s\n", statusRsp.ApiVersion)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
