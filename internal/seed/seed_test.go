package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	users    []domain.User
	countErr error
	failAt   int
}

func (f *fakeTarget) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	if f.failAt > 0 && len(f.users)+1 == f.failAt {
		return nil, errors.New("store unavailable")
	}
	u := domain.NewUser(len(f.users)+1, name, email)
	f.users = append(f.users, *u)
	return u, nil
}

func (f *fakeTarget) CountUsers(ctx context.Context) (int, error) {
	return len(f.users), f.countErr
}

func TestParse(t *testing.T) {
	t.Run("users in order", func(t *testing.T) {
		file, err := Parse(strings.NewReader(`
users:
  - name: Alice
    email: a@x.com
  - name: ""
    email: ""
`))
		require.NoError(t, err)
		assert.Equal(t, []Entry{{Name: "Alice", Email: "a@x.com"}, {}}, file.Users)
	})

	t.Run("empty document", func(t *testing.T) {
		file, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, file.Users)
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		_, err := Parse(strings.NewReader("users:\n  - name: A\n    phone: 123\n"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse(strings.NewReader("users: [\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users:\n  - name: Bob\n    email: b@x.com\n"), 0o600))

	file, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "Bob", Email: "b@x.com"}}, file.Users)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	log, logBuf := logger.GetTestLogger(t)
	ctx := context.Background()
	file := &File{Users: []Entry{
		{Name: "Alice", Email: "a@x.com"},
		{Name: "Bob", Email: "b@x.com"},
	}}

	t.Run("adds users in order", func(t *testing.T) {
		target := &fakeTarget{}
		n, err := Apply(ctx, target, file, log)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []domain.User{
			{Identifier: 1, Name: "Alice", Email: "a@x.com"},
			{Identifier: 2, Name: "Bob", Email: "b@x.com"},
		}, target.users)
	})

	t.Run("skips populated store", func(t *testing.T) {
		target := &fakeTarget{users: []domain.User{{Identifier: 1, Name: "Existing"}}}
		n, err := Apply(ctx, target, file, log)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Len(t, target.users, 1)
		logger.AssertLogContains(t, logBuf, "skipping seed")
	})

	t.Run("nil file", func(t *testing.T) {
		n, err := Apply(ctx, &fakeTarget{}, nil, log)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("count failure", func(t *testing.T) {
		_, err := Apply(ctx, &fakeTarget{countErr: errors.New("db down")}, file, log)
		assert.Error(t, err)
	})

	t.Run("create failure reports progress", func(t *testing.T) {
		target := &fakeTarget{failAt: 2}
		n, err := Apply(ctx, target, file, log)
		require.Error(t, err)
		assert.Equal(t, 1, n)
		assert.Contains(t, err.Error(), "seed user 2")
	})
}
