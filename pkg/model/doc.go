// Package model defines the domain model for the role vending service:
// permission tiers, role requests, role sessions and their status state
// machine, temporary credentials, and policy templates.
//
// RoleSession and PolicyTemplate double as GORM models for the Postgres
// store. Credentials are never persisted; they exist only in the
// assume-role response path.
package model
