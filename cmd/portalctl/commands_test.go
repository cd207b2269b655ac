package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCmd(t *testing.T) {
	cmd := hashPasswordCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"s3cret"})

	require.NoError(t, cmd.Execute())

	hashed := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("s3cret")))
}

func TestHashPasswordCmd_RequiresArgument(t *testing.T) {
	cmd := hashPasswordCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}

func TestIssueTokenCmd_TokenVerifies(t *testing.T) {
	cmd := issueTokenCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--secret", "signing-key"})

	require.NoError(t, cmd.Execute())

	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)
	claims, err := auth.NewAuthenticator(hash, "signing-key", 0).Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestIssueTokenCmd_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cmd := issueTokenCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}
