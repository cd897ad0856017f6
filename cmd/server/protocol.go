// Package main provides a TCP SQL server for MiniSQL.
package main

import (
	"encoding/json"
)

// Response represents the server's response to one line of input.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Type    string          `json:"type,omitempty"` // "query", "commit" or "auth"
	Result  json.RawMessage `json:"result,omitempty"`
}

// QueryResponse contains tabular query results.
type QueryResponse struct {
	Columns     []string   `json:"columns"`
	Data        [][]string `json:"data"`
	RecordsRead int        `json:"records_read"`
	TimeMs      float64    `json:"time_ms"`
}

// CommitResponse contains mutation results.
type CommitResponse struct {
	Commit         string  `json:"commit,omitempty"`
	TablesCreated  int     `json:"tables_created,omitempty"`
	RecordsWritten int     `json:"records_written,omitempty"`
	TimeMs         float64 `json:"time_ms"`
}

// AuthResponse reports the outcome of an AUTH command.
type AuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Identity      string `json:"identity,omitempty"`
	ExpiresIn     int    `json:"expires_in,omitempty"`
}

// EncodeResponse serializes a Response to JSON with a newline.
func EncodeResponse(resp Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
