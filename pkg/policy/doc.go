// Package policy renders access-policy and trust documents for temporary
// roles.
//
// A tier maps to a named template (database or blob backed, with a
// compiled-in default per tier); placeholders of the form ${name} are
// substituted from a caller-supplied variable bag and any leftover
// placeholder is a hard error. Every rendered document is structurally
// validated before it can reach the credential authority. The per-tier
// permission boundary is generated independently of the template system and
// is the actual security backstop.
package policy
