package cmd

import (
	"bytes"
	"strings"
	"testing"

	"room-booking-api/core/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_IssuesValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	userID := uuid.New()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--config", t.TempDir(), "--user", userID.String(), "--role", "admin"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())

	claims, err := utils.ValidateAndParseToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestToken_RejectsBadUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	rootCmd.SetArgs([]string{"token", "--config", t.TempDir(), "--user", "not-a-uuid"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, Execute())
}
