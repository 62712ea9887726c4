package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Relationship is the next of kin's relation to the account holder.
type Relationship string

const (
	RelationshipParent  Relationship = "Parent"
	RelationshipSibling Relationship = "Sibling"
	RelationshipSpouse  Relationship = "Spouse"
	RelationshipChild   Relationship = "Child"
	RelationshipFriend  Relationship = "Friend"
	RelationshipOther   Relationship = "Other"
)

// Relationships lists the accepted relationship values in display order.
var Relationships = []Relationship{
	RelationshipParent,
	RelationshipSibling,
	RelationshipSpouse,
	RelationshipChild,
	RelationshipFriend,
	RelationshipOther,
}

// SavingsAccount is the optional secondary account. A user holds at most one and must already
// hold an M-Pesa account.
type SavingsAccount struct {
	ID                    string
	UserID                string
	Balance               decimal.Decimal
	NextOfKinName         string
	NextOfKinPhone        string
	NextOfKinRelationship Relationship
	CreatedAt             time.Time
}

// Validate validates the account for persistence.
func (a *SavingsAccount) Validate() error {
	if a.UserID == "" {
		return errors.New("user_id is required")
	}
	if a.NextOfKinName == "" || a.NextOfKinPhone == "" || a.NextOfKinRelationship == "" {
		return errors.New("next of kin details are required")
	}
	return nil
}
