// Package permission holds the pure authorization decisions. Every function
// takes the acting identity explicitly; a nil user means anonymous.
package permission

import (
	"titlerate/backend/internal/entity"

	"github.com/google/uuid"
)

func IsAuthenticated(actor *entity.User) bool {
	return actor != nil
}

func IsAdmin(actor *entity.User) bool {
	return actor != nil && actor.IsAdmin()
}

func IsModerator(actor *entity.User) bool {
	return actor != nil && actor.IsModerator()
}

// CanModify covers reviews and comments: the author may touch their own,
// moderators and admins may touch anyone's.
func CanModify(actor *entity.User, authorID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.ID == authorID || IsModerator(actor)
}

// CanSetRole guards the role field on profile updates: only an admin may
// change a role, including their own.
func CanSetRole(actor *entity.User) bool {
	return IsAdmin(actor)
}
