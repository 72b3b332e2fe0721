package graph

// =============================================================================
// Relationship - Edge Semantics
// =============================================================================

// Relationship describes the meaning of a directed edge, source to target.
//
// The set is closed: use the constants below. Values deserialized from
// outside sources should go through [ParseRelationship], which maps
// anything unrecognized to [RelationshipUnknown] instead of failing.
type Relationship string

// The recognized edge relationships.
const (
	RelationshipDepends    Relationship = "Depends"    // Source requires target
	RelationshipImplements Relationship = "Implements" // Adapter fulfils a port
	RelationshipTransforms Relationship = "Transforms" // Mapper converts between representations
	RelationshipAggregates Relationship = "Aggregates" // Aggregate owns an entity
	RelationshipInvokes    Relationship = "Invokes"    // Caller triggers a handler
	RelationshipProduces   Relationship = "Produces"   // Source emits an event
	RelationshipConsumes   Relationship = "Consumes"   // Source handles an event
	RelationshipValidates  Relationship = "Validates"  // Source checks target's rules
	RelationshipConfigures Relationship = "Configures" // Source parameterizes target
	RelationshipUnknown    Relationship = "Unknown"    // Unclassified
)

// ValidRelationships is the set of recognized relationship values.
var ValidRelationships = map[Relationship]bool{
	RelationshipDepends:    true,
	RelationshipImplements: true,
	RelationshipTransforms: true,
	RelationshipAggregates: true,
	RelationshipInvokes:    true,
	RelationshipProduces:   true,
	RelationshipConsumes:   true,
	RelationshipValidates:  true,
	RelationshipConfigures: true,
	RelationshipUnknown:    true,
}

// ParseRelationship maps a string onto a recognized Relationship.
// Unrecognized input yields RelationshipUnknown; parsing never fails.
func ParseRelationship(s string) Relationship {
	if r := Relationship(s); ValidRelationships[r] {
		return r
	}
	return RelationshipUnknown
}

// String returns the relationship's display name.
func (r Relationship) String() string { return string(r) }
