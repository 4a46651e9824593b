package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.MFARequired)
	assert.Equal(t, 3600, cfg.CredentialTTLCeiling)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	content := `
region: eu-central-1
account_id: "123456789012"
port: 9090
mfa_required: false
allowed_networks:
  - 10.0.0.0/8
credential_ttl_ceiling: 1800
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, "123456789012", cfg.AccountID)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.MFARequired)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.AllowedNetworks)
	assert.Equal(t, 1800, cfg.CredentialTTLCeiling)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"REGION", "ap-southeast-2")
	t.Setenv(EnvPrefix+"PORT", "7070")
	t.Setenv(EnvPrefix+"MFA_REQUIRED", "false")
	t.Setenv(EnvPrefix+"ALLOWED_NETWORKS", "10.0.0.0/8, 192.168.0.0/16")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.Region)
	assert.Equal(t, 7070, cfg.Port)
	assert.False(t, cfg.MFARequired)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.0.0/16"}, cfg.AllowedNetworks)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	bad := Default()
	bad.AllowedNetworks = []string{"not-a-cidr"}
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.CredentialTTLCeiling = 600
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.Port = 0
	assert.Error(t, bad.Validate())
}
