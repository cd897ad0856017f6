package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"minisql"
	"minisql/storage"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	port := flag.Int("port", 3306, "TCP port to listen on")
	baseDir := flag.String("baseDir", "", "Base directory for storage (memory if empty)")
	jwtSecret := flag.String("jwtSecret", "", "Shared secret for JWT auth (auth disabled if empty)")
	jwtIssuer := flag.String("jwtIssuer", "", "Expected JWT issuer claim")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("MiniSQL Server v%s\n", Version)
		return
	}

	var store *storage.Store
	var err error

	if *baseDir == "" {
		log.Println("Using memory store")
		store, err = storage.NewMemoryStore()
	} else {
		log.Printf("Using file store: %s", *baseDir)
		store, err = storage.NewFileStore(*baseDir)
	}
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	instance, err := minisql.Open(store)
	if err != nil {
		log.Fatalf("Failed to open instance: %v", err)
	}

	identity := storage.Identity{
		Name:  "MiniSQL Server",
		Email: "server@minisql.local",
	}

	var server *Server
	if *jwtSecret != "" {
		server = NewServerWithAuth(instance, identity, &AuthConfig{
			Enabled:   true,
			JWTSecret: *jwtSecret,
			Issuer:    *jwtIssuer,
		})
	} else {
		server = NewServer(instance, identity)
	}

	addr := fmt.Sprintf(":%d", *port)
	if err := server.Start(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Printf("║   MiniSQL Server v%-19s ║\n", Version)
	fmt.Println("║   Git-backed Relational Data Engine   ║")
	fmt.Println("╚═══════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Listening on port %d\n", *port)
	fmt.Println("Send SQL queries (one per line), 'quit' to disconnect")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	server.Stop()
	log.Println("Server stopped")
}
