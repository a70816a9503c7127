package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member roles. Promotion is monotonic: member -> manager -> admin.
const (
	RoleMember  = "member"
	RoleManager = "manager"
	RoleAdmin   = "admin"

	// DefaultRole is what callers should assume for an unknown email.
	DefaultRole = RoleMember
)

// roleRank orders roles so promotions never lower a member.
var roleRank = map[string]int{
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// RoleAtLeast reports whether role is the same as or above min.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min] && roleRank[min] > 0
}

// RolesAtOrAbove lists the roles a promotion to target must leave alone.
// Anything else, including a missing or unknown role, may be replaced.
func RolesAtOrAbove(target string) []string {
	var out []string
	for r, rank := range roleRank {
		if rank >= roleRank[target] {
			out = append(out, r)
		}
	}
	return out
}

// Member is a registered user of the platform.
type Member struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL  string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
