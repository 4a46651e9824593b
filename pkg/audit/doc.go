// Package audit records every session state-transition attempt, success or
// failure, as an RFC5424 syslog line with structured data, optionally
// persisted to an audit database.
//
// The sink is handed to the lifecycle manager at construction. Audit is
// best-effort secondary to the state transition it describes: a failed
// append is logged, never propagated.
package audit
