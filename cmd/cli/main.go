package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"minisql"
	"minisql/core"
	"minisql/db"
	"minisql/storage"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

// CLI holds the interactive session state
type CLI struct {
	instance    *minisql.Instance
	engine      *db.Engine
	identity    storage.Identity
	history     []string
	historyFile string
}

func main() {
	baseDir := flag.String("baseDir", "", "Base directory for the database")
	sqlFile := flag.String("sqlFile", "", "SQL file to execute (non-interactive)")
	userName := flag.String("name", "MiniSQL", "User name for commits")
	userEmail := flag.String("email", "cli@minisql.local", "User email for commits")
	flag.Parse()

	printBanner()

	var store *storage.Store
	var err error

	if *baseDir == "" {
		fmt.Printf("%sUsing memory store%s\n", SuccessColor, ResetColor)
		store, err = storage.NewMemoryStore()
	} else {
		fmt.Printf("%sUsing file store: %s%s\n", SuccessColor, *baseDir, ResetColor)
		store, err = storage.NewFileStore(*baseDir)
	}
	if err != nil {
		fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
		return
	}

	instance, err := minisql.Open(store)
	if err != nil {
		fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
		return
	}

	identity := storage.Identity{
		Name:  *userName,
		Email: *userEmail,
	}

	cli := &CLI{
		instance:    instance,
		engine:      instance.Engine(identity),
		identity:    identity,
		history:     make([]string, 0),
		historyFile: getHistoryPath(),
	}

	cli.loadHistory()

	if *sqlFile != "" {
		if err := cli.runFile(*sqlFile); err != nil {
			fmt.Printf("%sError executing file: %v%s\n", ErrorColor, err, ResetColor)
			os.Exit(1)
		}
		return
	}

	cli.run()
}

func printBanner() {
	fmt.Println()
	bannerWidth := 39 // inner width of the banner box
	versionLine := fmt.Sprintf("MiniSQL v%s", Version)
	padding := bannerWidth - len(versionLine) - 2 // -2 for "  " margins
	if padding < 0 {
		padding = 0
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	fmt.Printf("%s%s╔═══════════════════════════════════════╗%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s║ %*s%s%*s ║%s\n", BoldColor, PromptColor, leftPad, "", versionLine, rightPad, "", ResetColor)
	fmt.Printf("%s%s║   Git-backed Relational Data Engine   ║%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s╚═══════════════════════════════════════╝%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println()
	fmt.Println("Type .help for commands, .quit to exit")
	fmt.Println()
}

func (cli *CLI) run() {
	reader := bufio.NewReader(os.Stdin)
	var multiLineBuffer strings.Builder

	for {
		fmt.Print(cli.getPrompt(multiLineBuffer.Len() > 0))

		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("\n%sGoodbye!%s\n", SuccessColor, ResetColor)
			return
		}

		input = strings.TrimSuffix(input, "\n")
		input = strings.TrimSuffix(input, "\r")

		if strings.TrimSpace(input) == "" {
			continue
		}

		// Dot commands only apply outside a multi-line statement
		if multiLineBuffer.Len() == 0 && strings.HasPrefix(input, ".") {
			if cli.handleCommand(input) {
				continue
			}
		}

		// Accumulate until the statement ends with a semicolon
		multiLineBuffer.WriteString(input)

		trimmed := strings.TrimSpace(multiLineBuffer.String())
		if !strings.HasSuffix(trimmed, ";") {
			multiLineBuffer.WriteString(" ")
			continue
		}

		multiLineBuffer.Reset()

		if strings.TrimSpace(strings.TrimSuffix(trimmed, ";")) == "" {
			continue
		}

		cli.addToHistory(trimmed)

		result, err := cli.engine.Execute(trimmed)
		if err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		} else {
			result.Display()
		}
	}
}

func (cli *CLI) getPrompt(multiLine bool) string {
	if multiLine {
		return fmt.Sprintf("%s   ...>%s ", PromptColor, ResetColor)
	}
	return fmt.Sprintf("%sminisql>%s ", PromptColor, ResetColor)
}

func (cli *CLI) handleCommand(input string) bool {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return true
	}

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit", ".q":
		fmt.Printf("%sGoodbye!%s\n", SuccessColor, ResetColor)
		cli.saveHistory()
		os.Exit(0)

	case ".help", ".h", ".?":
		cli.printHelp()

	case ".tables":
		cli.showTables()

	case ".schema":
		if len(parts) > 1 {
			cli.showSchema(parts[1])
		} else {
			fmt.Printf("%s✗ Usage: .schema <table>%s\n", ErrorColor, ResetColor)
		}

	case ".import":
		if len(parts) > 1 {
			cli.importTable(parts[1])
		} else {
			fmt.Printf("%s✗ Usage: .import <path-or-url>%s\n", ErrorColor, ResetColor)
		}

	case ".export":
		if len(parts) > 2 {
			cli.exportTable(parts[1], parts[2])
		} else {
			fmt.Printf("%s✗ Usage: .export <table> <path-or-url>%s\n", ErrorColor, ResetColor)
		}

	case ".log":
		cli.showLog()

	case ".clear", ".cls":
		fmt.Print("\033[H\033[2J")

	case ".history":
		cli.printHistory()

	case ".version":
		fmt.Printf("MiniSQL version %s\n", Version)

	default:
		fmt.Printf("%s✗ Unknown command: %s (type .help for commands)%s\n", ErrorColor, parts[0], ResetColor)
	}

	return true
}

func (cli *CLI) printHelp() {
	fmt.Println()
	fmt.Printf("%s%sSpecial Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println("  .help, .h             Show this help message")
	fmt.Println("  .quit, .exit          Exit the CLI")
	fmt.Println("  .tables               List all tables")
	fmt.Println("  .schema <table>       Show a table's columns")
	fmt.Println("  .import <src>         Import a table from a path, http(s) or s3 URL")
	fmt.Println("  .export <table> <dst> Export a table to a path or s3 URL")
	fmt.Println("  .log                  Show recent commits")
	fmt.Println("  .history              Show command history")
	fmt.Println("  .clear                Clear the screen")
	fmt.Println("  .version              Show version info")
	fmt.Println()
	fmt.Printf("%s%sSQL Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println("  CREATE TABLE <table> (<column> Int|Text, ...);")
	fmt.Println("  INSERT INTO <table> VALUES (<value>, ...);")
	fmt.Println("  SELECT * FROM <table>;")
	fmt.Println("  SELECT <col>, ... FROM <table>;")
	fmt.Println()
}

func (cli *CLI) showTables() {
	names := cli.instance.Database.TableNames()
	if len(names) == 0 {
		fmt.Println("No tables")
		return
	}
	for _, name := range names {
		fmt.Println("  " + name)
	}
}

func (cli *CLI) showSchema(name string) {
	tableName, err := core.NewTableName(name)
	if err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	table, ok := cli.instance.Database.Table(tableName)
	if !ok {
		fmt.Printf("%s✗ Error: unknown table: %s%s\n", ErrorColor, name, ResetColor)
		return
	}
	for _, column := range table.Schema().Columns() {
		fmt.Printf("  %s %s\n", column.Name, column.Type)
	}
}

func (cli *CLI) importTable(src string) {
	table, err := cli.instance.ImportTable(src, nil, cli.identity)
	if err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	fmt.Printf("%s✓ Imported table %s (%d rows)%s\n",
		SuccessColor, table.Name(), len(table.Rows()), ResetColor)
}

func (cli *CLI) exportTable(name, dst string) {
	tableName, err := core.NewTableName(name)
	if err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	if err := cli.instance.ExportTable(tableName, dst, nil); err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	fmt.Printf("%s✓ Exported table %s to %s%s\n", SuccessColor, name, dst, ResetColor)
}

func (cli *CLI) showLog() {
	history := cli.instance.Store.History()
	if len(history) == 0 {
		fmt.Println("No commits")
		return
	}
	limit := 20
	if len(history) < limit {
		limit = len(history)
	}
	for _, commit := range history[:limit] {
		fmt.Printf("  %.8s  %s  %s\n", commit.Hash, commit.When.Format("2006-01-02 15:04:05"), commit.Author)
	}
}

func (cli *CLI) addToHistory(cmd string) {
	// Don't add duplicates of the last command
	if len(cli.history) > 0 && cli.history[len(cli.history)-1] == cmd {
		return
	}
	cli.history = append(cli.history, cmd)

	if len(cli.history) > 1000 {
		cli.history = cli.history[len(cli.history)-1000:]
	}
}

func (cli *CLI) printHistory() {
	if len(cli.history) == 0 {
		fmt.Println("No command history")
		return
	}

	start := 0
	if len(cli.history) > 20 {
		start = len(cli.history) - 20
	}

	for i := start; i < len(cli.history); i++ {
		fmt.Printf("  %3d  %s\n", i+1, cli.history[i])
	}
}

func getHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minisql_history")
}

func (cli *CLI) loadHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Open(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		cli.history = append(cli.history, scanner.Text())
	}
}

func (cli *CLI) saveHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Create(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	start := 0
	if len(cli.history) > 1000 {
		start = len(cli.history) - 1000
	}

	for i := start; i < len(cli.history); i++ {
		_, _ = file.WriteString(cli.history[i] + "\n")
	}
}

// runFile reads and executes SQL statements from a file
func (cli *CLI) runFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	statements := splitStatements(string(data))

	successCount := 0
	errorCount := 0

	for i, stmt := range statements {
		result, err := cli.engine.Execute(stmt)
		if err != nil {
			fmt.Printf("%s[%d] ✗ %s%s\n", ErrorColor, i+1, truncate(stmt, 50), ResetColor)
			fmt.Printf("      Error: %v\n", err)
			errorCount++
			continue
		}

		successCount++
		switch r := result.(type) {
		case db.CommitResult:
			var details []string
			if r.TablesCreated > 0 {
				details = append(details, fmt.Sprintf("%d table created", r.TablesCreated))
			}
			if r.RecordsWritten > 0 {
				details = append(details, fmt.Sprintf("%d written", r.RecordsWritten))
			}
			detailStr := ""
			if len(details) > 0 {
				detailStr = " (" + strings.Join(details, ", ") + ")"
			}
			fmt.Printf("%s[%d] ✓ %s%s%s\n", SuccessColor, i+1, truncate(stmt, 50), detailStr, ResetColor)
		case db.QueryResult:
			fmt.Printf("%s[%d] ✓ %s (%d rows)%s\n", SuccessColor, i+1, truncate(stmt, 50), len(r.Rows), ResetColor)
		default:
			fmt.Printf("%s[%d] ✓ %s%s\n", SuccessColor, i+1, truncate(stmt, 50), ResetColor)
		}
	}

	fmt.Printf("\n%s✓ Run complete: %d succeeded, %d failed%s\n",
		SuccessColor, successCount, errorCount, ResetColor)

	return nil
}

// splitStatements splits SQL content into individual statements
func splitStatements(content string) []string {
	var statements []string
	var current strings.Builder
	inString := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if ch == '\'' {
			inString = !inString
		}

		// Line comments
		if !inString && ch == '-' && i+1 < len(content) && content[i+1] == '-' {
			for i < len(content) && content[i] != '\n' {
				i++
			}
			continue
		}

		if !inString && ch == ';' {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	stmt := strings.TrimSpace(current.String())
	if stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
