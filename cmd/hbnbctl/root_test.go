package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joan938/holbertonschool-hbnb/entity"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateList(t *testing.T) {
	out, err := execute(t, "migrate", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "001_init.sql")
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	_, err := execute(t, "migrate")
	assert.Error(t, err)
}

func TestCreateAdminInMemory(t *testing.T) {
	out, err := execute(t, "create-admin", "--driver", "memory", "--bcrypt-cost", "4",
		"--email", "root@example.com", "--password", "password1")
	require.NoError(t, err)
	assert.Contains(t, out, "<root@example.com>")
}

func TestCreateAdminValidates(t *testing.T) {
	_, err := execute(t, "create-admin", "--driver", "memory", "--bcrypt-cost", "4",
		"--email", "root", "--password", "password1")
	ve, ok := entity.AsValidation(err)
	require.Truef(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "email", ve.Field)
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	_, err := execute(t, "create-admin", "--driver", "memory")
	assert.Error(t, err)
}

func TestUnknownDriver(t *testing.T) {
	_, err := execute(t, "create-admin", "--driver", "sqlite", "--email", "root@example.com", "--password", "password1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
