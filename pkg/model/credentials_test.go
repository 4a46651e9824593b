package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredentials() Credentials {
	return Credentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		SessionToken:    "token",
		Expiration:      time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestShellExports(t *testing.T) {
	out := testCredentials().ShellExports("us-east-1")
	assert.Contains(t, out, "export AWS_ACCESS_KEY_ID=AKIAEXAMPLE\n")
	assert.Contains(t, out, "export AWS_SECRET_ACCESS_KEY=secret\n")
	assert.Contains(t, out, "export AWS_SESSION_TOKEN=token\n")
	assert.Contains(t, out, "export AWS_DEFAULT_REGION=us-east-1\n")
}

func TestConfigBlock(t *testing.T) {
	out := testCredentials().ConfigBlock("temp-role", "eu-west-1")
	assert.True(t, strings.HasPrefix(out, "[temp-role]\n"))
	assert.Contains(t, out, "aws_session_token = token\n")
	assert.Contains(t, out, "region = eu-west-1\n")

	// Empty profile falls back to default.
	assert.True(t, strings.HasPrefix(testCredentials().ConfigBlock("", "eu-west-1"), "[default]\n"))
}

func TestCredentialsJSON(t *testing.T) {
	out, err := testCredentials().JSON("us-east-1")
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, "AKIAEXAMPLE", parsed["AccessKeyId"])
	assert.Equal(t, "2025-08-01T12:00:00Z", parsed["Expiration"])
	assert.Equal(t, "us-east-1", parsed["Region"])
}
