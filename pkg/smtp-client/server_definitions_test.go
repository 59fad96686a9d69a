package smtp_client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFromFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), "servers.yaml")
		content := `servers:
  - host: smtp.example.com
    port: "587"
    connections: 2
    sendTimeout: 5
    auth:
      user: mailer
      password: secret
from: "PlayFlix <no-reply@example.com>"
sender: no-reply@example.com
replyTo:
  - support@example.com
`
		require.NoError(t, os.WriteFile(fname, []byte(content), 0o600))

		var sl SmtpServerList
		require.NoError(t, sl.ReadFromFile(fname))
		require.Len(t, sl.Servers, 1)
		assert.Equal(t, "smtp.example.com:587", sl.Servers[0].Address())
		assert.Equal(t, "mailer", sl.Servers[0].AuthData.Username)
		assert.Equal(t, []string{"support@example.com"}, sl.ReplyTo)
	})

	t.Run("unknown field", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), "servers.yaml")
		require.NoError(t, os.WriteFile(fname, []byte("unknown: true\n"), 0o600))

		var sl SmtpServerList
		assert.Error(t, sl.ReadFromFile(fname))
	})

	t.Run("missing file", func(t *testing.T) {
		var sl SmtpServerList
		assert.Error(t, sl.ReadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))
	})
}

func TestOverrideCredentials(t *testing.T) {
	sl := SmtpServerList{Servers: []SmtpServer{{Host: "a"}, {Host: "b"}}}
	sl.Servers[1].AuthData.Username = "keep"

	sl.OverrideCredentials("", "pw")
	assert.Equal(t, "", sl.Servers[0].AuthData.Username)
	assert.Equal(t, "keep", sl.Servers[1].AuthData.Username)
	assert.Equal(t, "pw", sl.Servers[0].AuthData.Password)
	assert.Equal(t, "pw", sl.Servers[1].AuthData.Password)
}
