// Package seed loads an initial list of users from a YAML file and adds
// them to an empty directory at startup.
//
// The file format is:
//
//	users:
//	  - name: Alice
//	    email: alice@example.com
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/users-api/internal/domain"
	"gopkg.in/yaml.v3"
)

// Entry is one user in a seed file.
type Entry struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// File is the parsed content of a seed file.
type File struct {
	Users []Entry `yaml:"users"`
}

// Target is where seeded users go. service.UserService satisfies it, so
// seeded users produce the same user.created events as API calls.
type Target interface {
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse decodes a seed document. Unknown keys are rejected and an empty
// document yields an empty File.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &file, nil
}

// Apply adds the file's users in order. It does nothing when the target
// already holds users so a persistent store is not seeded twice. It returns
// the number of users added.
func Apply(ctx context.Context, target Target, file *File, logger *slog.Logger) (int, error) {
	if file == nil || len(file.Users) == 0 {
		return 0, nil
	}

	existing, err := target.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users before seeding: %w", err)
	}
	if existing > 0 {
		logger.Info("store already populated, skipping seed", "existing_users", existing)
		return 0, nil
	}

	for i, entry := range file.Users {
		if _, err := target.CreateUser(ctx, entry.Name, entry.Email); err != nil {
			return i, fmt.Errorf("failed to seed user %d: %w", i+1, err)
		}
	}

	logger.Info("seeded users", "count", len(file.Users))
	return len(file.Users), nil
}
