package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainer represents a gym trainer record.
type Trainer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	FamilyName  string             `bson:"family_name"`
	DateOfBirth *time.Time         `bson:"date_of_birth,omitempty"`
	Address     string             `bson:"m_address"`
	PhoneNumber string             `bson:"m_number"`
	DateOfReg   *time.Time         `bson:"date_of_reg,omitempty"`
	Salary      int                `bson:"salary"`
}

// Name returns the trainer's display name.
func (t *Trainer) Name() string {
	return t.FamilyName + " " + t.FirstName
}

// URL returns the path of this trainer's detail page.
func (t *Trainer) URL() string {
	return "/catalog/trainer/" + t.ID.Hex()
}

func (t *Trainer) DateOfBirthISO() string { return isoDate(t.DateOfBirth) }
func (t *Trainer) DateOfRegISO() string   { return isoDate(t.DateOfReg) }
