package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is a staff login account. Passwords are stored as bcrypt hashes only.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
}
