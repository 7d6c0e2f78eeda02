package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member represents a gym member record.
//
// Trainer is required; Plan and Type are optional references. The *Ref fields
// are never stored — they are filled in by the repository when the caller asks
// for a populated read.
type Member struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	FirstName   string              `bson:"first_name"`
	FamilyName  string              `bson:"family_name"`
	DateOfBirth *time.Time          `bson:"date_of_birth,omitempty"`
	Address     string              `bson:"m_address"`
	PhoneNumber string              `bson:"m_number"`
	DateOfReg   *time.Time          `bson:"date_of_reg,omitempty"`
	TrainerID   primitive.ObjectID  `bson:"trainer"`
	PlanID      *primitive.ObjectID `bson:"plan,omitempty"`
	PlanEndOn   *time.Time          `bson:"plan_end_on,omitempty"`
	TypeID      *primitive.ObjectID `bson:"type,omitempty"`
	PhotoKey    string              `bson:"photo_key,omitempty"`

	// Populated references (not persisted).
	TrainerRef *Trainer        `bson:"-"`
	PlanRef    *Plan           `bson:"-"`
	TypeRef    *MembershipType `bson:"-"`
}

// Name returns the member's display name.
func (m *Member) Name() string {
	return m.FamilyName + " " + m.FirstName
}

// URL returns the path of this member's detail page.
func (m *Member) URL() string {
	return "/catalog/member/" + m.ID.Hex()
}

func (m *Member) DateOfBirthISO() string { return isoDate(m.DateOfBirth) }
func (m *Member) DateOfRegISO() string   { return isoDate(m.DateOfReg) }
func (m *Member) PlanEndOnISO() string   { return isoDate(m.PlanEndOn) }

// isoDate formats an optional date as YYYY-MM-DD, empty when unset.
func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
