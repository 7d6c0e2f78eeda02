package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStatus is the lifecycle state of a membership plan.
type PlanStatus string

const (
	PlanActive   PlanStatus = "Active"
	PlanInactive PlanStatus = "Inactive"
)

// Plan represents a membership plan offered by the gym.
type Plan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PlanName    string             `bson:"planName"`
	Price       int                `bson:"price"`
	Description string             `bson:"discription"` // field name kept from the legacy schema

	Status PlanStatus `bson:"status"`

	// Members assigned to this plan. A member listed here blocks member
	// deletion until the assignment is removed.
	MemberIDs []primitive.ObjectID `bson:"member,omitempty"`
}

// URL returns the path of this plan's detail page.
func (p *Plan) URL() string {
	return "/catalog/plan/" + p.ID.Hex()
}
