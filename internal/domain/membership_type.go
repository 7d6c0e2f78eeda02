package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipType is a named category of membership (e.g. "Cardio").
// Names are unique: creating a duplicate resolves to the existing record.
type MembershipType struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// URL returns the path of this type's detail page.
func (t *MembershipType) URL() string {
	return "/catalog/type/" + t.ID.Hex()
}
