// Package invitationservice manages event memberships: organizers invite
// users to an event, and invitees accept or decline exactly once. Accepted
// memberships are what grant voting rights in the poll lifecycle.
package invitationservice
