// Package query loads the per-dataset query spec: the JSON body forwarded to
// the API plus the table identifier spliced into the endpoint URL.
package query

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ConfigError reports a missing or malformed query spec file. It always fires
// before any network activity.
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("query spec %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("query spec %s: %s", e.Path, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Spec is one loaded query spec. Payload is forwarded verbatim as the POST
// body; the pipeline never inspects it beyond the response format.
type Spec struct {
	Payload json.RawMessage
	TableID string
}

type specFile struct {
	QueryObj        json.RawMessage `json:"queryObj"`
	TableIDForQuery string          `json:"tableIdForQuery"`
}

// Load reads and validates the query spec at path.
func Load(path string) (Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, &ConfigError{Path: path, Reason: "read", Err: err}
	}

	var file specFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Spec{}, &ConfigError{Path: path, Reason: "parse", Err: err}
	}
	if len(file.QueryObj) == 0 || string(file.QueryObj) == "null" {
		return Spec{}, &ConfigError{Path: path, Reason: `missing required field "queryObj"`}
	}
	if strings.TrimSpace(file.TableIDForQuery) == "" {
		return Spec{}, &ConfigError{Path: path, Reason: `missing required field "tableIdForQuery"`}
	}

	return Spec{Payload: file.QueryObj, TableID: file.TableIDForQuery}, nil
}

// ResponseFormat extracts the declared response format from the payload,
// lower-cased. An absent or unreadable declaration yields the empty string;
// the dispatcher treats that as unknown.
func (s Spec) ResponseFormat() string {
	var envelope struct {
		Response struct {
			Format string `json:"format"`
		} `json:"response"`
	}
	if err := json.Unmarshal(s.Payload, &envelope); err != nil {
		return ""
	}
	return strings.ToLower(envelope.Response.Format)
}
