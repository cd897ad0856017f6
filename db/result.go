package db

import (
	"fmt"
	"os"
	"strings"

	"minisql/core"
	"minisql/storage"
)

type ResultType int

const (
	QueryResultType ResultType = iota
	CommitResultType
)

type Result interface {
	Type() ResultType
	Display()
}

// QueryResult is the outcome of a SELECT: projected value vectors in
// storage order.
type QueryResult struct {
	Columns          []string
	Rows             [][]core.Value
	RecordsRead      int
	ExecutionTimeSec float64
}

// CommitResult is the outcome of a mutation, carrying the commit that
// recorded it.
type CommitResult struct {
	Commit           storage.Commit
	TablesCreated    int
	RecordsWritten   int
	ExecutionTimeSec float64
}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result CommitResult) Type() ResultType {
	return CommitResultType
}

// formatDuration formats a duration in human-readable form
func formatDuration(secs float64) string {
	if secs < 0.001 {
		return "<1ms"
	} else if secs < 1 {
		ms := secs * 1000
		if ms < 10 {
			return fmt.Sprintf("%.1fms", ms)
		}
		return fmt.Sprintf("%dms", int(ms))
	} else if secs < 60 {
		if secs < 10 {
			return fmt.Sprintf("%.1fs", secs)
		}
		return fmt.Sprintf("%ds", int(secs))
	} else {
		mins := int(secs / 60)
		remainSecs := int(secs) % 60
		if remainSecs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm%ds", mins, remainSecs)
	}
}

func (result QueryResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result CommitResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result QueryResult) Display() {
	if len(result.Rows) > 0 {
		cells := make([][]string, len(result.Rows))
		for i, row := range result.Rows {
			cells[i] = make([]string, len(row))
			for j, value := range row {
				cells[i][j] = value.String()
			}
		}
		renderTable(os.Stdout, result.Columns, cells)
	}

	fmt.Printf("%d row(s) (%s)\n", len(result.Rows), result.ExecutionTime())
}

func (result CommitResult) Display() {
	var parts []string

	if result.TablesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) created", result.TablesCreated))
	}
	if result.RecordsWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) written", result.RecordsWritten))
	}

	if len(parts) == 0 {
		fmt.Printf("OK (%s)\n", result.ExecutionTime())
	} else {
		fmt.Printf("%s (%s)\n", strings.Join(parts, ", "), result.ExecutionTime())
	}
}
