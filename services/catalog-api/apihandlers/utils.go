package apihandlers

import (
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	mw "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers/middlewares"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog"
	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// sessionAccountID returns the account id of the validated session token, if any.
func sessionAccountID(c *gin.Context) string {
	v, ok := c.Get(mw.CtxKeyValidatedToken)
	if !ok {
		return ""
	}
	claims, ok := v.(*jwthandling.SessionClaims)
	if !ok {
		return ""
	}
	return claims.AccountID
}

// sessionOwner returns the session account as the owner of the request. A requested owner
// that names a different account is rejected.
func sessionOwner(c *gin.Context, requested string) (string, error) {
	accountID := sessionAccountID(c)
	if accountID == "" {
		return "", jwthandling.ErrTokenInvalid
	}
	if requested != "" && requested != accountID {
		return "", apperrors.ErrForbidden
	}
	return accountID, nil
}

func parseObjectID(field string, value string) (primitive.ObjectID, error) {
	if value == "" {
		return primitive.NilObjectID, apperrors.NewValidationError(map[string]string{field: "cannot be blank"})
	}
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewValidationError(map[string]string{field: "must be a valid id"})
	}
	return id, nil
}

func parseObjectIDList(field string, values []string) ([]primitive.ObjectID, error) {
	ids, err := catalog.ParseObjectIDs(values)
	if err != nil {
		return nil, &apperrors.ValidationError{
			Fields: map[string]string{field: "must contain valid ids"},
			Cause:  err,
		}
	}
	return ids, nil
}
