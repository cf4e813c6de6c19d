package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// SweepResponse represents the response from the /jobs/invoice-run endpoint
type SweepResponse struct {
	Scanned int `json:"scanned"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

var runInvoicesCmd = &cobra.Command{
	Use:   "run-invoices",
	Short: "Trigger the rent invoice run on the server",
	Long: `Trigger the rent invoice run on the server. The server scans active tenancies
and creates any rent invoices that are due within the configured lead window.
Requires job_key to be set in the CLI config.

Examples:
  # Run the invoice sweep
  casahub run-invoices`,
	RunE: runInvoices,
}

func runInvoices(cmd *cobra.Command, args []string) error {
	response, err := doRequest("POST", "/jobs/invoice-run", nil, true)
	if err != nil {
		return err
	}

	var sweep SweepResponse
	if err := json.Unmarshal(response, &sweep); err != nil {
		return fmt.Errorf("failed to parse response: %v", err)
	}

	if jsonOutput {
		printJSON(map[string]any{
			"result": 1,
			"value":  sweep,
		})
	} else {
		fmt.Printf("Tenancies scanned: %d\n", sweep.Scanned)
		fmt.Printf("Invoices created: %d\n", sweep.Created)
		fmt.Printf("Skipped: %d\n", sweep.Skipped)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runInvoicesCmd)
}
