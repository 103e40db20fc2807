package permission

import (
	"testing"

	"titlerate/backend/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanModify(t *testing.T) {
	authorID := uuid.New()

	tests := []struct {
		name  string
		actor *entity.User
		want  bool
	}{
		{"anonymous", nil, false},
		{"author", &entity.User{ID: authorID, Role: entity.RoleUser}, true},
		{"stranger", &entity.User{ID: uuid.New(), Role: entity.RoleUser}, false},
		{"moderator", &entity.User{ID: uuid.New(), Role: entity.RoleModerator}, true},
		{"admin", &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}, true},
		{"superuser with user role", &entity.User{ID: uuid.New(), Role: entity.RoleUser, IsSuperuser: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModify(tt.actor, authorID))
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, IsAdmin(nil))
	assert.False(t, IsAdmin(&entity.User{Role: entity.RoleUser}))
	assert.False(t, IsAdmin(&entity.User{Role: entity.RoleModerator}))
	assert.True(t, IsAdmin(&entity.User{Role: entity.RoleAdmin}))
	assert.True(t, IsAdmin(&entity.User{Role: entity.RoleUser, IsSuperuser: true}))
}

func TestCanSetRole(t *testing.T) {
	assert.False(t, CanSetRole(nil))
	assert.False(t, CanSetRole(&entity.User{Role: entity.RoleModerator}))
	assert.True(t, CanSetRole(&entity.User{Role: entity.RoleAdmin}))
	assert.True(t, CanSetRole(&entity.User{Role: entity.RoleUser, IsSuperuser: true}))
}

func TestRoleOrdering(t *testing.T) {
	assert.True(t, entity.RoleAdmin.AtLeast(entity.RoleModerator))
	assert.True(t, entity.RoleModerator.AtLeast(entity.RoleUser))
	assert.False(t, entity.RoleUser.AtLeast(entity.RoleModerator))
	assert.False(t, entity.Role("owner").Valid())
}
