package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-billy/v6/util"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/go-git/go-git/v6/storage/memory"

	"minisql/core"
)

const tableSuffix = ".table.json"

var ErrNotInitialized = errors.New("storage layer not initialized")

// Identity names the author recorded on every commit.
type Identity struct {
	Name  string
	Email string
}

// Commit describes one recorded mutation.
type Commit struct {
	Hash   string
	When   time.Time
	Author string // "Name <email>" format
}

func (commit Commit) String() string {
	return fmt.Sprintf("Commit{Hash: %s, When: %s, Author: %s}", commit.Hash, commit.When, commit.Author)
}

// Store is a git repository holding one JSON projection per table. All
// writes are serialized through an internal lock; reads may run
// concurrently.
type Store struct {
	repo *git.Repository
	mu   sync.RWMutex
}

// NewMemoryStore opens a store backed by an in-memory repository. State is
// lost at process exit.
func NewMemoryStore() (*Store, error) {
	wt := memfs.New()
	storer := memory.NewStorage()

	repo, err := git.Init(storer, git.WithWorkTree(wt))
	if err != nil {
		return nil, err
	}

	return &Store{repo: repo}, nil
}

// NewFileStore opens a store rooted at baseDir, initializing a fresh
// repository if none exists there yet.
func NewFileStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	wt := osfs.New(baseDir)
	fs, err := wt.Chroot(".git")
	if err != nil {
		return nil, err
	}

	storer := filesystem.NewStorageWithOptions(
		fs,
		cache.NewObjectLRUDefault(),
		filesystem.Options{ExclusiveAccess: true})

	var repo *git.Repository

	if _, statErr := os.Stat(fs.Root()); statErr != nil {
		repo, err = git.Init(storer, git.WithWorkTree(wt))
	} else {
		repo, err = git.Open(storer, wt)
	}
	if err != nil {
		return nil, err
	}

	return &Store{repo: repo}, nil
}

func (s *Store) ensureInitialized() error {
	if s == nil || s.repo == nil {
		return ErrNotInitialized
	}
	return nil
}

// SaveTable writes the table's projection to the worktree and commits it
// under the given identity and message.
func (s *Store) SaveTable(table *core.Table, identity Identity, message string) (Commit, error) {
	if err := s.ensureInitialized(); err != nil {
		return Commit{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := EncodeTable(table)
	if err != nil {
		return Commit{}, fmt.Errorf("failed to marshal table: %w", err)
	}

	wt, err := s.repo.Worktree()
	if err != nil {
		return Commit{}, err
	}

	path := table.Name().String() + tableSuffix
	if err := util.WriteFile(wt.Filesystem, path, data, 0644); err != nil {
		return Commit{}, fmt.Errorf("failed to write table file: %w", err)
	}
	if _, err := wt.Add(path); err != nil {
		return Commit{}, fmt.Errorf("failed to stage table file: %w", err)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  identity.Name,
			Email: identity.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return Commit{}, fmt.Errorf("failed to commit: %w", err)
	}

	commit, err := s.repo.CommitObject(hash)
	if err != nil {
		return Commit{}, err
	}

	return Commit{
		Hash:   hash.String(),
		When:   commit.Committer.When,
		Author: formatAuthor(commit.Author.Name, commit.Author.Email),
	}, nil
}

// LoadTable rebuilds one table from its committed projection.
func (s *Store) LoadTable(name core.TableName) (*core.Table, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.readTableFile(name.String() + tableSuffix)
	if err != nil {
		return nil, fmt.Errorf("table %s does not exist: %w", name, err)
	}

	return DecodeTable(data)
}

// ListTables returns the names of all persisted tables in lexical order.
func (s *Store) ListTables() ([]string, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listTables()
}

// LoadAll rebuilds a full database from every persisted table.
func (s *Store) LoadAll() (*core.Database, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.listTables()
	if err != nil {
		return nil, err
	}

	db := core.NewDatabase()
	for _, name := range names {
		data, err := s.readTableFile(name + tableSuffix)
		if err != nil {
			return nil, fmt.Errorf("failed to read table %s: %w", name, err)
		}
		if _, err := RestoreTable(db, data); err != nil {
			return nil, fmt.Errorf("failed to restore table %s: %w", name, err)
		}
	}
	return db, nil
}

// Head returns the latest commit, or a zero Commit when nothing has been
// committed yet.
func (s *Store) Head() Commit {
	if s.ensureInitialized() != nil {
		return Commit{}
	}

	headRef, err := s.repo.Head()
	if err != nil || headRef == nil {
		return Commit{}
	}

	commit, err := s.repo.CommitObject(headRef.Hash())
	if err != nil {
		return Commit{}
	}

	return Commit{
		Hash:   headRef.Hash().String(),
		When:   commit.Committer.When,
		Author: formatAuthor(commit.Author.Name, commit.Author.Email),
	}
}

// History returns all commits reachable from HEAD, newest first.
func (s *Store) History() []Commit {
	if s.ensureInitialized() != nil {
		return nil
	}

	cIter, err := s.repo.Log(&git.LogOptions{})
	if err != nil {
		return nil
	}

	var commits []Commit
	cIter.ForEach(func(c *object.Commit) error {
		commits = append(commits, Commit{
			Hash:   c.Hash.String(),
			When:   c.Committer.When,
			Author: formatAuthor(c.Author.Name, c.Author.Email),
		})
		return nil
	})
	return commits
}

func (s *Store) listTables() ([]string, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return nil, err
	}

	entries, err := wt.Filesystem.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), tableSuffix) {
			names = append(names, strings.TrimSuffix(entry.Name(), tableSuffix))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) readTableFile(path string) ([]byte, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return nil, err
	}

	f, err := wt.Filesystem.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func formatAuthor(name, email string) string {
	if name == "" && email == "" {
		return ""
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
