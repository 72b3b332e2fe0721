package graph

// =============================================================================
// Role - Component Classification Within a Layer
// =============================================================================

// Role describes what a component is within its layer.
//
// Unlike [Layer], the role set is open: the constants below are the
// recommended vocabulary, but any string is a valid Role. Roles are
// descriptive metadata and are never enforced against the layer they
// conventionally belong to.
type Role string

// Recommended roles, grouped by the layer they conventionally appear in.
const (
	// Domain layer
	RoleEntity        Role = "Entity"
	RoleValueObject   Role = "ValueObject"
	RoleAggregate     Role = "Aggregate"
	RoleDomainEvent   Role = "DomainEvent"
	RoleDomainService Role = "DomainService"

	// Port layer
	RoleInputPort  Role = "InputPort"
	RoleOutputPort Role = "OutputPort"
	RoleRepository Role = "Repository"

	// Adapter layer
	RoleAdapter Role = "Adapter"
	RoleMapper  Role = "Mapper"

	// Application layer
	RoleUseCase          Role = "UseCase"
	RoleQuery            Role = "Query"
	RoleDirective        Role = "Directive"
	RoleDirectiveHandler Role = "DirectiveHandler"
	RoleQueryHandler     Role = "QueryHandler"

	// Infrastructure layer
	RoleConfig Role = "Config"

	// Fallback
	RoleUnknown Role = "Unknown"
)

// String returns the role's display name.
func (r Role) String() string { return string(r) }
