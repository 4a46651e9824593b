package audit

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// SDID constants for structured data IDs (RFC5424).
// The rolevend Private Enterprise Number is 58234.
const (
	RolevendPEN = 58234
	SDIDSubject = "subject@58234"
	SDIDAction  = "action@58234"
	SDIDClient  = "client@58234"
)

// Syslog facility constants
const (
	FacilityAuth     = 4  // LOG_AUTH - security/authorization messages
	FacilityAuthPriv = 10 // LOG_AUTHPRIV - security/authorization messages (private)
)

// Severity levels matching syslog (RFC5424)
type Severity int

const (
	SeverityEmergency Severity = iota // 0
	SeverityAlert                     // 1
	SeverityCritical                  // 2
	SeverityError                     // 3
	SeverityWarning                   // 4
	SeverityNotice                    // 5
	SeverityInfo                      // 6
	SeverityDebug                     // 7
)

// Event represents an audit event
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// Logger writes audit events in RFC5424 syslog format
type Logger struct {
	writer   io.Writer
	hostname string
	appName  string
	pid      int
}

// NewLogger creates a new audit logger writing to stdout
func NewLogger() *Logger {
	hostname, _ := os.Hostname()
	return &Logger{
		writer:   os.Stdout,
		hostname: hostname,
		appName:  "rolevend",
		pid:      os.Getpid(),
	}
}

// SetWriter sets the output writer for the logger
func (l *Logger) SetWriter(w io.Writer) {
	l.writer = w
}

// Log writes an audit event in RFC5424 syslog format
// Format: <PRI>VERSION TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG
func (l *Logger) Log(event Event) {
	pri := event.Facility()*8 + int(event.Severity())

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	sd := formatStructuredData(event.StructuredData())
	if sd == "" {
		sd = "-"
	}

	hostname := l.hostname
	if hostname == "" {
		hostname = "-"
	}

	logLine := fmt.Sprintf("<%d>1 %s %s %s %d %s %s %s\n",
		pri,
		timestamp,
		hostname,
		l.appName,
		l.pid,
		event.MessageID(),
		sd,
		event.Message(),
	)

	_, _ = l.writer.Write([]byte(logLine))
}

// formatStructuredData formats the structured data according to RFC5424
// Format: [sdid param1="value1" param2="value2"][sdid2 ...]
func formatStructuredData(sd map[string]map[string]string) string {
	if len(sd) == 0 {
		return ""
	}

	var parts []string
	for sdid, params := range sd {
		var paramParts []string
		paramParts = append(paramParts, sdid)
		for key, value := range params {
			paramParts = append(paramParts, fmt.Sprintf("%s=%s", key, escapeSDValue(value)))
		}
		parts = append(parts, "["+strings.Join(paramParts, " ")+"]")
	}
	return strings.Join(parts, "")
}

// escapeSDValue escapes special characters in structured data values per RFC5424
func escapeSDValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	value = strings.ReplaceAll(value, "]", "\\]")
	return "\"" + value + "\""
}

// Sink accepts audit events. Appending is fire-and-forget from the caller's
// perspective but implementations must not silently drop: a failed write is
// reported on the process log, never back to the caller.
type Sink interface {
	Submit(event Event)
}

// CompositeSink writes every event to the RFC5424 logger and, when a store
// is configured, persists it. A store failure does not roll back anything;
// the state transition is primary and audit persistence is best effort.
type CompositeSink struct {
	logger *Logger
	store  *Store
}

// Ensure CompositeSink implements Sink
var _ Sink = (*CompositeSink)(nil)

// NewSink creates a sink over a logger and an optional store.
func NewSink(logger *Logger, store *Store) *CompositeSink {
	return &CompositeSink{logger: logger, store: store}
}

// Submit records the event.
func (s *CompositeSink) Submit(event Event) {
	s.logger.Log(event)

	if s.store != nil {
		if err := s.store.Save(event); err != nil {
			log.Printf("audit: failed to save event %s: %v", event.MessageID(), err)
		}
	}
}
