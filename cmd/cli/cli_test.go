package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sajidddd11/telegramtodo/pkg/scope"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "", "token", "--user", "alice", "--secret", "s3cret", "--ttl", "1h")
	require.NoError(t, err)

	manager, err := scope.New("s3cret", time.Hour)
	require.NoError(t, err)
	user, err := manager.Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestTokenCommandNeedsSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AUTH_JWT_SECRET", "")
	_, err := execute(t, "", "token")
	assert.ErrorIs(t, err, scope.ErrSecretRequired)
}

func TestMigrateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.db")
	out, err := execute(t, "", "migrate", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "schema applied to "+path)

	_, err = execute(t, "", "migrate", "--db", path)
	assert.NoError(t, err, "migrate is idempotent")
}

func TestChatWithoutProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.db")

	out, err := execute(t, "/list\nhello\n/reset\nquit\n", "chat", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no LLM provider configured")
	assert.Contains(t, out, "You don't have any tasks yet")
	assert.Contains(t, out, "not available")
	assert.Contains(t, out, "Conversation cleared.")
}

func TestAskRequiresMessage(t *testing.T) {
	_, err := execute(t, "", "ask")
	assert.Error(t, err)
}
