package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mesaservice "sufragio/contexts/election-core/mesa-service"
	tallyservice "sufragio/contexts/election-core/tally-service"
	tallyports "sufragio/contexts/election-core/tally-service/ports"
	votingengine "sufragio/contexts/election-core/voting-engine"
	votingentities "sufragio/contexts/election-core/voting-engine/domain/entities"
	voterdirectory "sufragio/contexts/identity-access/voter-directory"
	directoryentities "sufragio/contexts/identity-access/voter-directory/domain/entities"
	directoryports "sufragio/contexts/identity-access/voter-directory/ports"
)

type testEnv struct {
	server    *Server
	directory voterdirectory.Module
	voting    votingengine.Module
	mesas     mesaservice.Module
	tallies   tallyservice.Module
}

func newTestServer() testEnv {
	directory := voterdirectory.NewInMemoryModule(nil)
	voting := votingengine.NewInMemoryModule(nil)
	mesas := mesaservice.NewInMemoryModule(nil)
	tallies := tallyservice.NewInMemoryModule(nil)

	directory.Store.SetVoter(
		directoryentities.Voter{
			Cedula:     "41234567",
			Credential: "ABC12345",
			FullName:   "Elena Rodríguez",
			CircuitID:  7,
		},
		directoryentities.CircuitLocation{
			CircuitID:    7,
			City:         "Montevideo",
			Neighborhood: "Cordón",
			DepartmentID: 1,
			Department:   "Montevideo",
		},
	)
	directory.Store.SetActiveElection(directoryports.ElectionProjection{
		ElectionID: 1,
		Name:       "Elección Nacional 2024",
		Active:     true,
	})

	voting.Store.SetActiveElection(votingentities.Election{
		ElectionID: 1,
		Name:       "Elección Nacional 2024",
		HeldOn:     time.Date(2024, 10, 27, 0, 0, 0, 0, time.UTC),
	})
	listNumber := 15
	voting.Store.SetOption(votingentities.BallotOption{OptionID: 11, ElectionID: 1, Color: "rojo", ListNumber: &listNumber})
	voting.Store.SetOption(votingentities.BallotOption{OptionID: 10, ElectionID: 1, Color: "blanco"})
	voting.Store.SetVoter("ABC12345", "41234567", 7)
	voting.Store.SetMesaOpen(7, true)

	tallies.Store.SetOption(11, "rojo", &listNumber)
	tallies.Store.SetOption(10, "blanco", nil)
	tallies.Store.SetCircuit(7, 1, "Montevideo", "Cordón")

	server := New(directory, voting, mesas, tallies, nil, ":0", Options{
		EnableSwaggerUI:         false,
		EnableParticipationView: true,
	})
	return testEnv{
		server:    server,
		directory: directory,
		voting:    voting,
		mesas:     mesas,
		tallies:   tallies,
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/voters/login", strings.NewReader(`{"credential":"ABC12345"}`))
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if body["cedula"] != "41234567" {
		t.Fatalf("unexpected login body: %s", rr.Body.String())
	}
}

func TestLoginUnknownCredentialIs404(t *testing.T) {
	env := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/voters/login", strings.NewReader(`{"credential":"ZZZ"}`))
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCastVoteEndpoint(t *testing.T) {
	env := newTestServer()
	payload := []byte(`{"credential":"ABC12345","ballot_option_id":11,"circuit_id":7}`)
	req := httptest.NewRequest(http.MethodPost, "/api/votes", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/votes", bytes.NewReader(payload))
	env.server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d: %s", rr.Code, rr.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error json: %v", err)
	}
	if body["code"] != "already_voted" {
		t.Fatalf("expected already_voted code, got %v", body["code"])
	}
}

func TestCastVoteClosedMesaIs409(t *testing.T) {
	env := newTestServer()
	env.voting.Store.SetMesaOpen(7, false)
	req := httptest.NewRequest(http.MethodPost, "/api/votes", strings.NewReader(`{"credential":"ABC12345","ballot_option_id":11,"circuit_id":7}`))
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCastVoteRejectsMalformedJSON(t *testing.T) {
	env := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/votes", strings.NewReader(`{broken`))
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestMesaPathIDMustBeNumeric(t *testing.T) {
	env := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/mesas/abc", nil)
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCircuitResultsForbiddenWhileMesaOpen(t *testing.T) {
	env := newTestServer()
	now := time.Now()
	env.tallies.Store.SetMesaState(tallyports.MesaStateProjection{CircuitID: 7, IsOpen: true, OpenedAt: &now})

	req := httptest.NewRequest(http.MethodGet, "/api/results/circuit/7?requester=99999999", nil)
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCircuitResultsPublicAfterClose(t *testing.T) {
	env := newTestServer()
	now := time.Now()
	env.tallies.Store.SetMesaState(tallyports.MesaStateProjection{CircuitID: 7, IsOpen: false, OpenedAt: &now, ClosedAt: &now})
	env.tallies.Store.AddBallot(11, 7)
	env.tallies.Store.AddBallot(11, 7)
	env.tallies.Store.AddBallot(10, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/results/circuit/7?requester=99999999", nil)
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Official bool `json:"official"`
		Items    []struct {
			OptionID   int64           `json:"option_id"`
			Count      int64           `json:"count"`
			Percentage json.RawMessage `json:"percentage"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if !body.Official {
		t.Fatalf("closed mesa results should be marked official")
	}
	if len(body.Items) != 2 {
		t.Fatalf("expected two rows, got %d", len(body.Items))
	}
	if body.Items[0].OptionID != 11 || string(body.Items[0].Percentage) != `"66.67"` {
		t.Fatalf("unexpected leading row: %+v", body.Items[0])
	}
	if string(body.Items[1].Percentage) != `"33.33"` {
		t.Fatalf("unexpected trailing percentage: %s", body.Items[1].Percentage)
	}
}

func TestNationalResultsZeroTotalPercentage(t *testing.T) {
	env := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/results/national", nil)
	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Total int64 `json:"total"`
		Items []struct {
			Percentage json.RawMessage `json:"percentage"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if body.Total != 0 {
		t.Fatalf("expected zero total, got %d", body.Total)
	}
	for _, item := range body.Items {
		if string(item.Percentage) != "0" {
			t.Fatalf("zero-total percentage must be the number 0, got %s", item.Percentage)
		}
	}
}

func TestMesaLifecycleOverHTTP(t *testing.T) {
	env := newTestServer()
	env.mesas.Store.SetOfficial("41234567", 7)

	rr := httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/mesas/7/open", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("open: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/mesas/7/close", strings.NewReader(`{"official_id":"99999999"}`)))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("close by stranger: expected 403, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/mesas/7/close", strings.NewReader(`{"official_id":"41234567"}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	env.server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/mesas/7/close", strings.NewReader(`{"official_id":"41234567"}`)))
	if rr.Code != http.StatusConflict {
		t.Fatalf("second close: expected 409, got %d", rr.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	env := newTestServer()
	handler := env.server.Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/results/national", nil))
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected a generated request id header")
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/results/national", nil)
	req.Header.Set("X-Request-Id", "req-keep-1")
	handler.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-Id"); got != "req-keep-1" {
		t.Fatalf("expected caller request id to be kept, got %q", got)
	}
}
