// Package main implements rolevendctl, the CLI for the rolevend temporary
// cloud-role vending service.
//
// Rolevend grants short-lived AWS roles scoped by permission tier. A request
// is validated, a role with a tier boundary is provisioned, and credentials
// are exchanged against the session until it expires or is revoked. Every
// lifecycle transition is audit logged.
//
// # Architecture
//
// The service is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/vending: session lifecycle manager and request validation
//   - pkg/policy: policy template rendering, trust documents, tier boundaries
//   - pkg/authority: role provisioning and credential exchange (AWS IAM/STS)
//   - pkg/model: domain and database models
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	rolevendctl db migrate
//
//	# Start the API server
//	export ROLEVEND_TOKEN_KEY=<signing key>
//	rolevendctl server
//
//	# Request a developer role and export the credentials
//	eval "$(rolevendctl request data-pipeline --tier developer --duration 4 \
//	    -j 'debugging ingest failures')"
//
//	# Expire overdue sessions on a schedule
//	rolevendctl sweep --interval 5m
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - ROLEVEND_TOKEN_KEY: HMAC signing key for API bearer tokens
//   - ROLEVEND_LOG_LEVEL: set to debug for SQL statement logging
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY: authority credentials,
//     resolved through the default AWS credential chain
//   - ROLEVEND_REGION, ROLEVEND_ACCOUNT_ID, ROLEVEND_PORT, ...: overrides
//     for the corresponding rolevend.yml settings
package main
