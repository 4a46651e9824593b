package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Credentials is the ephemeral value returned when an active session is
// exchanged for live secrets. Never persisted.
type Credentials struct {
	AccessKeyID     string    `json:"access_key_id"`
	SecretAccessKey string    `json:"secret_access_key"`
	SessionToken    string    `json:"session_token"`
	Expiration      time.Time `json:"expiration"`
	RoleRef         string    `json:"role_ref"`
	SessionName     string    `json:"session_name"`
}

// ShellExports renders the credentials as shell-exportable key/value pairs.
func (c Credentials) ShellExports(region string) string {
	return fmt.Sprintf(
		"export AWS_ACCESS_KEY_ID=%s\nexport AWS_SECRET_ACCESS_KEY=%s\nexport AWS_SESSION_TOKEN=%s\nexport AWS_DEFAULT_REGION=%s\n",
		c.AccessKeyID, c.SecretAccessKey, c.SessionToken, region,
	)
}

// ConfigBlock renders the credentials as a profile block for an AWS shared
// config file.
func (c Credentials) ConfigBlock(profile, region string) string {
	if profile == "" {
		profile = "default"
	}
	return fmt.Sprintf(
		"[%s]\naws_access_key_id = %s\naws_secret_access_key = %s\naws_session_token = %s\nregion = %s\n",
		profile, c.AccessKeyID, c.SecretAccessKey, c.SessionToken, region,
	)
}

// JSON renders the credentials as the structured JSON object understood by
// credential_process consumers.
func (c Credentials) JSON(region string) ([]byte, error) {
	return json.MarshalIndent(map[string]string{
		"AccessKeyId":     c.AccessKeyID,
		"SecretAccessKey": c.SecretAccessKey,
		"SessionToken":    c.SessionToken,
		"Region":          region,
		"Expiration":      c.Expiration.UTC().Format(time.RFC3339),
	}, "", "  ")
}
