// Package plugin implements the host-plugin invocation contract: one JSON
// document on standard input, one on standard output.
package plugin

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mediacat/bulk-scraper/client"
)

// Args carries the task arguments from the plugin host.
type Args struct {
	Mode string `json:"mode"`
}

// Envelope is the single JSON document the plugin host writes on stdin.
type Envelope struct {
	Args             Args              `json:"args"`
	ServerConnection client.Connection `json:"server_connection"`
}

// ReadEnvelope decodes the invocation envelope from r.
func ReadEnvelope(r io.Reader) (Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Envelope{}, fmt.Errorf("failed to decode plugin input: %w", err)
	}
	if env.Args.Mode == "" {
		return Envelope{}, fmt.Errorf("plugin input is missing args.mode")
	}
	return env, nil
}

// WriteOK writes the success document the plugin host expects.
func WriteOK(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(map[string]string{"output": "ok"}); err != nil {
		return fmt.Errorf("failed to write plugin output: %w", err)
	}
	return nil
}
