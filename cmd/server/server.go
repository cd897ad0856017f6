package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"

	"minisql"
	"minisql/db"
	"minisql/storage"
)

// Server is a TCP server exposing the engine, one SQL statement per line.
// Statements run under the server mutex, so the single-writer contract of
// the database holds across connections.
type Server struct {
	listener   net.Listener
	instance   *minisql.Instance
	identity   storage.Identity
	authConfig *AuthConfig
	mu         sync.Mutex
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewServer creates a server without authentication; every connection
// commits under the default identity.
func NewServer(instance *minisql.Instance, identity storage.Identity) *Server {
	return &Server{
		instance: instance,
		identity: identity,
		done:     make(chan struct{}),
	}
}

// NewServerWithAuth creates a server requiring AUTH before any statement.
// Commits are attributed to the authenticated identity.
func NewServerWithAuth(instance *minisql.Instance, identity storage.Identity, authConfig *AuthConfig) *Server {
	server := NewServer(instance, identity)
	server.authConfig = authConfig
	return server
}

// Start begins listening for connections on the specified address.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener

	log.Printf("Server listening on %s", addr)

	go s.acceptLoop()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				log.Printf("Accept error: %v", err)
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	log.Printf("Client connected: %s", conn.RemoteAddr())

	state := &ConnectionState{}
	engine := s.instance.Engine(s.identity)
	reader := bufio.NewReader(conn)

	for {
		select {
		case <-s.done:
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("Read error from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}

		if lower := strings.ToLower(query); lower == "quit" || lower == "exit" {
			log.Printf("Client disconnected: %s", conn.RemoteAddr())
			return
		}

		var response Response
		if strings.HasPrefix(strings.ToUpper(query), "AUTH ") {
			response = s.handleAuth(query, state)
			if state.IsAuthenticated() {
				// Subsequent commits carry the token identity.
				engine = s.instance.Engine(*state.Identity())
			}
		} else if s.authRequired() && !state.IsAuthenticated() {
			response = Response{
				Success: false,
				Error:   "authentication required",
			}
		} else {
			response = s.executeQuery(engine, query)
		}

		data, err := EncodeResponse(response)
		if err != nil {
			log.Printf("Failed to encode response: %v", err)
			continue
		}

		if _, err := conn.Write(data); err != nil {
			log.Printf("Write error to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

func (s *Server) authRequired() bool {
	return s.authConfig != nil && s.authConfig.Enabled
}

func (s *Server) executeQuery(engine *db.Engine, query string) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := engine.Execute(query)
	if err != nil {
		return Response{
			Success: false,
			Error:   err.Error(),
		}
	}

	switch r := result.(type) {
	case db.QueryResult:
		data := make([][]string, len(r.Rows))
		for i, row := range r.Rows {
			data[i] = make([]string, len(row))
			for j, value := range row {
				data[i][j] = value.String()
			}
		}
		qr := QueryResponse{
			Columns:     r.Columns,
			Data:        data,
			RecordsRead: r.RecordsRead,
			TimeMs:      r.ExecutionTimeSec * 1000,
		}
		payload, _ := json.Marshal(qr)
		return Response{
			Success: true,
			Type:    "query",
			Result:  payload,
		}

	case db.CommitResult:
		cr := CommitResponse{
			Commit:         r.Commit.Hash,
			TablesCreated:  r.TablesCreated,
			RecordsWritten: r.RecordsWritten,
			TimeMs:         r.ExecutionTimeSec * 1000,
		}
		payload, _ := json.Marshal(cr)
		return Response{
			Success: true,
			Type:    "commit",
			Result:  payload,
		}

	default:
		return Response{
			Success: true,
			Type:    "unknown",
		}
	}
}
