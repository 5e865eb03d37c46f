package model

import "time"

// LinkRelationship is the closed set of directed relationships between artifacts
type LinkRelationship string

const (
	RelContains    LinkRelationship = "contains"
	RelAssesses    LinkRelationship = "assesses"
	RelDerivedFrom LinkRelationship = "derived_from"
)

// ValidRelationship reports whether r is one of the closed relationship set.
func ValidRelationship(r LinkRelationship) bool {
	switch r {
	case RelContains, RelAssesses, RelDerivedFrom:
		return true
	}
	return false
}

// Link is a directed relationship between two artifacts. Deleting an
// artifact does not cascade to links referencing it; sweeping dangling
// links is the deleting caller's responsibility.
type Link struct {
	ID           string           `json:"id" bson:"_id"`
	ProjectID    string           `json:"projectId" bson:"projectId"`
	SourceID     string           `json:"sourceId" bson:"sourceId"`
	TargetID     string           `json:"targetId" bson:"targetId"`
	Relationship LinkRelationship `json:"relationship" bson:"relationship"`
	CreatedBy    string           `json:"createdBy" bson:"createdBy"`
	CreatedAt    time.Time        `json:"createdAt" bson:"createdAt"`
}
