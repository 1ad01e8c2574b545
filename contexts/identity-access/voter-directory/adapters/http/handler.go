package httpadapter

import (
	"context"
	"log/slog"

	"sufragio/contexts/identity-access/voter-directory/application/queries"
	httptransport "sufragio/contexts/identity-access/voter-directory/transport/http"
)

type Handler struct {
	Directory queries.LoginUseCase
	Logger    *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Directory.Login(ctx, req.Credential)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Cedula:   result.Voter.Cedula,
		FullName: result.Voter.FullName,
		Circuit: httptransport.CircuitLocation{
			CircuitID:    result.Location.CircuitID,
			Accessible:   result.Location.Accessible,
			City:         result.Location.City,
			Place:        result.Location.Place,
			Neighborhood: result.Location.Neighborhood,
			DepartmentID: result.Location.DepartmentID,
			Department:   result.Location.Department,
		},
		Role: httptransport.RoleResponse{
			Kind:      string(result.Role.Kind),
			Role:      result.Role.Role,
			CircuitID: result.Role.CircuitID,
		},
		AlreadyVoted: result.AlreadyVoted,
	}, nil
}
