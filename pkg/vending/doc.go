/*
Package vending implements the role-session lifecycle: request admission,
role provisioning, credential issuance, revocation and the expiry sweep.

Sessions move through a fixed state machine. PENDING goes to ACTIVE when
provisioning succeeds or FAILED when it does not; ACTIVE goes to REVOKED on
operator action or EXPIRED when its window lapses. EXPIRED, REVOKED and
FAILED are terminal. Every transition is a conditional store update keyed on
the expected prior status, so concurrent operations on one session resolve
to a single winner, and every attempt is audited whether or not it wins.
*/
package vending
