package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const ADMIN_PROFILE_NAME = "administrador"

const (
	PROFILE_NAME_SCOPE_GLOBAL = "global"
	PROFILE_NAME_SCOPE_OWNER  = "owner"
)

// RestrictedProfile is a PIN-gated sub-identity under an Account.
type RestrictedProfile struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName string             `bson:"nombreCompleto" json:"nombreCompleto"`
	Pin      string             `bson:"pin" json:"pin"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Age      int                `bson:"edad" json:"edad"`
	OwnerID  string             `bson:"userId" json:"userId"`
}

func (p RestrictedProfile) IsAdmin() bool {
	return p.FullName == ADMIN_PROFILE_NAME
}
