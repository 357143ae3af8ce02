// Package auth decides who may do what. Every check is a pure function of the acting
// account and, where relevant, the resource owner, so it can be evaluated anywhere
// without I/O. A nil account never passes.
package auth

import "github.com/pucknotes/server/internal/app/models"

// CanPost reports whether acct may create notes and comments. Guests and restricted
// accounts may read but not publish.
func CanPost(acct *models.Account) bool {
	if acct == nil {
		return false
	}
	return acct.Role != models.RoleGuest && acct.Role != models.RoleRestricted
}

// CanMutate reports whether acct may update or delete a resource owned by ownerID.
// Owners and moderators pass.
func CanMutate(acct *models.Account, ownerID int64) bool {
	if acct == nil {
		return false
	}
	return acct.ID == ownerID || acct.Role == models.RoleModerator
}

// CanEdit is the stricter owner-only check used for rewriting someone's words.
func CanEdit(acct *models.Account, ownerID int64) bool {
	return acct != nil && acct.ID == ownerID
}

// CanModerate reports whether acct holds the moderator tier
func CanModerate(acct *models.Account) bool {
	return acct != nil && acct.Role == models.RoleModerator
}

// CanViewAllReports is the same privileged check reused by the report endpoints
func CanViewAllReports(acct *models.Account) bool {
	return CanModerate(acct)
}

// CanMutateNote applies CanMutate to a note whose owner may be unknown
func CanMutateNote(acct *models.Account, note *models.Note) bool {
	if note == nil || acct == nil {
		return false
	}
	if note.OwnerID == nil {
		return acct.Role == models.RoleModerator
	}
	return CanMutate(acct, *note.OwnerID)
}
