package voterdirectory_test

import (
	"context"
	"errors"
	"testing"

	voterdirectory "sufragio/contexts/identity-access/voter-directory"
	"sufragio/contexts/identity-access/voter-directory/domain/entities"
	domainerrors "sufragio/contexts/identity-access/voter-directory/domain/errors"
	"sufragio/contexts/identity-access/voter-directory/ports"
	httptransport "sufragio/contexts/identity-access/voter-directory/transport/http"
)

func seedVoter(module voterdirectory.Module) {
	module.Store.SetVoter(
		entities.Voter{
			Cedula:     "41234567",
			Credential: "ABC12345",
			FullName:   "Elena Rodríguez",
			CircuitID:  7,
		},
		entities.CircuitLocation{
			CircuitID:    7,
			Accessible:   true,
			City:         "Montevideo",
			Neighborhood: "Cordón",
			DepartmentID: 1,
			Department:   "Montevideo",
		},
	)
	module.Store.SetActiveElection(ports.ElectionProjection{
		ElectionID: 1,
		Name:       "Elección Nacional 2024",
		Active:     true,
	})
}

func TestLoginReturnsVoterWithCircuit(t *testing.T) {
	module := voterdirectory.NewInMemoryModule(nil)
	seedVoter(module)
	ctx := context.Background()

	resp, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Credential: "ABC12345"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Cedula != "41234567" {
		t.Fatalf("expected cedula 41234567, got %q", resp.Cedula)
	}
	if resp.Circuit.CircuitID != 7 || resp.Circuit.City != "Montevideo" {
		t.Fatalf("unexpected circuit: %+v", resp.Circuit)
	}
	if resp.Role.Kind != "voter" || resp.Role.Role != "Votante" {
		t.Fatalf("expected ordinary voter role, got %+v", resp.Role)
	}
	if resp.AlreadyVoted {
		t.Fatalf("fresh voter should not be flagged as already voted")
	}
}

func TestLoginResolvesMesaOfficialRole(t *testing.T) {
	module := voterdirectory.NewInMemoryModule(nil)
	seedVoter(module)
	module.Store.SetOfficial("41234567", "Presidente", 7)
	ctx := context.Background()

	resp, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Credential: "ABC12345"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Role.Kind != "mesa_official" {
		t.Fatalf("expected mesa official role, got %+v", resp.Role)
	}
	if resp.Role.CircuitID != 7 || resp.Role.Role != "Presidente" {
		t.Fatalf("unexpected official role detail: %+v", resp.Role)
	}
}

func TestLoginFlagsAlreadyVoted(t *testing.T) {
	module := voterdirectory.NewInMemoryModule(nil)
	seedVoter(module)
	module.Store.MarkVoted("41234567", 1)
	ctx := context.Background()

	resp, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Credential: "ABC12345"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !resp.AlreadyVoted {
		t.Fatalf("expected already_voted to be true after marking the vote")
	}
}

func TestLoginRejectsEmptyCredential(t *testing.T) {
	module := voterdirectory.NewInMemoryModule(nil)
	seedVoter(module)

	_, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{Credential: "   "})
	if !errors.Is(err, domainerrors.ErrCredentialRequired) {
		t.Fatalf("expected credential required error, got %v", err)
	}
}

func TestLoginRejectsUnknownCredential(t *testing.T) {
	module := voterdirectory.NewInMemoryModule(nil)
	seedVoter(module)

	_, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{Credential: "ZZZ99999"})
	if !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected voter not found error, got %v", err)
	}
}
