package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Credential string `json:"credential"`
}

type CircuitLocation struct {
	CircuitID    int64  `json:"circuit_id"`
	Accessible   bool   `json:"accessible"`
	City         string `json:"city"`
	Place        string `json:"place,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	DepartmentID int64  `json:"department_id"`
	Department   string `json:"department"`
}

type RoleResponse struct {
	Kind      string `json:"kind"`
	Role      string `json:"role"`
	CircuitID int64  `json:"circuit_id,omitempty"`
}

type LoginResponse struct {
	Cedula       string          `json:"cedula"`
	FullName     string          `json:"full_name"`
	Circuit      CircuitLocation `json:"circuit"`
	Role         RoleResponse    `json:"role"`
	AlreadyVoted bool            `json:"already_voted"`
}
