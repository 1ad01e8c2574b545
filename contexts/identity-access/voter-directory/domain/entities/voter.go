package entities

// Voter is a credentialed citizen in the electoral padron. Cedula is the
// national identity number; Credential is the separate voting credential
// presented at login and vote time.
type Voter struct {
	Cedula     string
	Credential string
	FullName   string
	CircuitID  int64
}

// CircuitLocation describes where a circuit sits in the geographic catalog.
type CircuitLocation struct {
	CircuitID    int64
	Accessible   bool
	City         string
	Place        string
	Neighborhood string
	DepartmentID int64
	Department   string
}

type RoleKind string

const (
	RoleKindMesaOfficial RoleKind = "mesa_official"
	RoleKindVoter        RoleKind = "voter"
)

// Role is the tagged variant returned by role resolution: either a mesa
// official scoped to one circuit, or an ordinary voter.
type Role struct {
	Kind      RoleKind
	Role      string
	CircuitID int64
}

func OrdinaryVoterRole() Role {
	return Role{
		Kind: RoleKindVoter,
		Role: "Votante",
	}
}

func (r Role) IsMesaOfficial() bool {
	return r.Kind == RoleKindMesaOfficial
}
