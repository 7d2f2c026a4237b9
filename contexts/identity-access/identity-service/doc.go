// Package identityservice owns user accounts. Its validate endpoint is the
// one other services call before accepting an organizer action: it answers
// whether an account exists and is still active.
package identityservice
