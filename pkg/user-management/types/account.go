package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is the primary registered identity. The password hash and the one-time
// code never leave the service in JSON.
type Account struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"correoElectronico" json:"correoElectronico"`
	PasswordHash     string             `bson:"contraseña" json:"-"`
	Pin              int                `bson:"pin" json:"pin"`
	FirstName        string             `bson:"nombre" json:"nombre"`
	LastName         string             `bson:"apellido" json:"apellido"`
	Country          string             `bson:"pais,omitempty" json:"pais,omitempty"`
	BirthDate        time.Time          `bson:"fechaNacimiento" json:"fechaNacimiento"`
	Phone            string             `bson:"telefono" json:"telefono"`
	Verified         bool               `bson:"verificado" json:"verificado"`
	VerificationCode string             `bson:"codigoUnico" json:"-"`
	Timestamps       Timestamps         `bson:"timestamps" json:"timestamps"`
}

type Timestamps struct {
	CreatedAt    int64 `bson:"createdAt" json:"createdAt"`
	CodeIssuedAt int64 `bson:"codeIssuedAt" json:"codeIssuedAt"`
	VerifiedAt   int64 `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	LastLogin    int64 `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
}
