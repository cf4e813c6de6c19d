package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const jobKeyHeader = "X-CasaHub-Job-Key"

// doRequest performs a request against the configured server and returns the
// response body. Non-2xx responses are turned into errors carrying the
// server's error description when one is present.
func doRequest(method, path string, body any, withJobKey bool) ([]byte, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("CLI is not configured")
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("unable to serialize request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, cfg.Server+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withJobKey {
		if cfg.JobKey == "" {
			return nil, fmt.Errorf("job_key is not set in the CLI config")
		}
		req.Header.Set(jobKeyHeader, cfg.JobKey)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	rsp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to reach server: %w", err)
	}
	defer rsp.Body.Close()

	rspBody, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response: %w", err)
	}

	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		if desc := gjson.GetBytes(rspBody, "error").String(); desc != "" {
			return nil, fmt.Errorf("server returned %s: %s", rsp.Status, desc)
		}
		return nil, fmt.Errorf("server returned %s", rsp.Status)
	}
	return rspBody, nil
}
