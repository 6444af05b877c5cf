// Command schema writes the JSON schema of newsdesk config, used by pkg/config to verify loaded files.
// The output goes to schema.json in the current directory or to the path given as the first argument.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/umputun/newsdesk/pkg/config"
)

const defaultOutput = "schema.json"

func main() {
	out := defaultOutput
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	if err := writeSchema(out); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	fmt.Printf("config schema written to %s\n", out)
}

func writeSchema(path string) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate config schema: %w", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:gosec // schema is not sensitive
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
