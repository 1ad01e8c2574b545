package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	mesaservice "sufragio/contexts/election-core/mesa-service"
	mesaerrors "sufragio/contexts/election-core/mesa-service/domain/errors"
	mesahttp "sufragio/contexts/election-core/mesa-service/transport/http"
	tallyservice "sufragio/contexts/election-core/tally-service"
	tallyerrors "sufragio/contexts/election-core/tally-service/domain/errors"
	votingengine "sufragio/contexts/election-core/voting-engine"
	votingerrors "sufragio/contexts/election-core/voting-engine/domain/errors"
	votinghttp "sufragio/contexts/election-core/voting-engine/transport/http"
	voterdirectory "sufragio/contexts/identity-access/voter-directory"
	directoryerrors "sufragio/contexts/identity-access/voter-directory/domain/errors"
	directoryhttp "sufragio/contexts/identity-access/voter-directory/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "sufragio/internal/platform/httpserver/docs"
)

type Options struct {
	EnableSwaggerUI         bool
	EnableParticipationView bool
}

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	directory voterdirectory.Module
	voting    votingengine.Module
	mesas     mesaservice.Module
	tallies   tallyservice.Module
	options   Options
}

func New(
	directory voterdirectory.Module,
	voting votingengine.Module,
	mesas mesaservice.Module,
	tallies tallyservice.Module,
	logger *slog.Logger,
	addr string,
	options Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		directory: directory,
		voting:    voting,
		mesas:     mesas,
		tallies:   tallies,
		options:   options,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler exposes the routed mux, wrapped with request identification, for
// Start and for in-process tests.
func (s *Server) Handler() http.Handler {
	return withRequestID(s.mux)
}

func (s *Server) registerRoutes() {
	if s.options.EnableSwaggerUI {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	s.mux.HandleFunc("POST /api/voters/login", s.handleLogin)

	s.mux.HandleFunc("GET /api/elections/active", s.handleActiveElection)
	s.mux.HandleFunc("GET /api/elections/{election_id}/ballot-options", s.handleBallotOptions)

	s.mux.HandleFunc("POST /api/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/votes/observed", s.handleObservedBallots)

	s.mux.HandleFunc("GET /api/mesas/open", s.handleOpenMesas)
	s.mux.HandleFunc("GET /api/mesas/{circuit_id}", s.handleMesaState)
	s.mux.HandleFunc("POST /api/mesas/{circuit_id}/open", s.handleOpenMesa)
	s.mux.HandleFunc("POST /api/mesas/{circuit_id}/close", s.handleCloseMesa)

	s.mux.HandleFunc("GET /api/results/circuit/{circuit_id}", s.handleCircuitResults)
	s.mux.HandleFunc("GET /api/results/department/{department_id}", s.handleDepartmentResults)
	s.mux.HandleFunc("GET /api/results/national", s.handleNationalResults)
	if s.options.EnableParticipationView {
		s.mux.HandleFunc("GET /api/results/participation", s.handleParticipation)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req directoryhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.directory.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActiveElection(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ActiveElectionHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBallotOptions(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(w, r, "election_id", "invalid_election_id")
	if !ok {
		return
	}
	resp, err := s.voting.Handler.BallotOptionsHandler(r.Context(), electionID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleObservedBallots(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ObservedBallotsHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMesaState(w http.ResponseWriter, r *http.Request) {
	circuitID, ok := pathID(w, r, "circuit_id", "invalid_circuit_id")
	if !ok {
		return
	}
	resp, err := s.mesas.Handler.GetStateHandler(r.Context(), circuitID)
	if err != nil {
		writeMesaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOpenMesa(w http.ResponseWriter, r *http.Request) {
	circuitID, ok := pathID(w, r, "circuit_id", "invalid_circuit_id")
	if !ok {
		return
	}
	resp, err := s.mesas.Handler.OpenMesaHandler(r.Context(), circuitID)
	if err != nil {
		writeMesaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseMesa(w http.ResponseWriter, r *http.Request) {
	circuitID, ok := pathID(w, r, "circuit_id", "invalid_circuit_id")
	if !ok {
		return
	}
	var req mesahttp.CloseMesaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMesaError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.mesas.Handler.CloseMesaHandler(r.Context(), circuitID, req)
	if err != nil {
		writeMesaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOpenMesas(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mesas.Handler.OpenMesasHandler(r.Context())
	if err != nil {
		writeMesaDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCircuitResults(w http.ResponseWriter, r *http.Request) {
	circuitID, ok := pathID(w, r, "circuit_id", "invalid_circuit_id")
	if !ok {
		return
	}
	requester := r.URL.Query().Get("requester")
	resp, err := s.tallies.Handler.CircuitResultsHandler(r.Context(), circuitID, requester)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDepartmentResults(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := pathID(w, r, "department_id", "invalid_department_id")
	if !ok {
		return
	}
	resp, err := s.tallies.Handler.DepartmentResultsHandler(r.Context(), departmentID)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNationalResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tallies.Handler.NationalResultsHandler(r.Context())
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleParticipation(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tallies.Handler.ParticipationHandler(r.Context())
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func pathID(w http.ResponseWriter, r *http.Request, name, code string) (int64, bool) {
	value, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || value <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Code:    code,
			Message: name + " must be a positive integer",
		})
		return 0, false
	}
	return value, true
}

func writeDirectoryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directoryerrors.ErrCredentialRequired):
		writeDirectoryError(w, http.StatusBadRequest, "credential_required", err.Error())
	case errors.Is(err, directoryerrors.ErrVoterNotFound):
		writeDirectoryError(w, http.StatusNotFound, "voter_not_found", err.Error())
	default:
		writeDirectoryError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidVoteInput):
		writeVotingError(w, http.StatusBadRequest, "invalid_vote_input", err.Error())
	case errors.Is(err, votingerrors.ErrNoActiveElection):
		writeVotingError(w, http.StatusNotFound, "no_active_election", err.Error())
	case errors.Is(err, votingerrors.ErrVoterNotFound):
		writeVotingError(w, http.StatusNotFound, "voter_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrBallotOptionNotFound):
		writeVotingError(w, http.StatusNotFound, "ballot_option_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		writeVotingError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, votingerrors.ErrMesaClosed):
		writeVotingError(w, http.StatusConflict, "mesa_closed", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

func writeMesaDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mesaerrors.ErrOfficialRequired):
		writeMesaError(w, http.StatusBadRequest, "official_required", err.Error())
	case errors.Is(err, mesaerrors.ErrCloseNotAuthorized):
		writeMesaError(w, http.StatusForbidden, "close_not_authorized", err.Error())
	case errors.Is(err, mesaerrors.ErrMesaNotFound):
		writeMesaError(w, http.StatusNotFound, "mesa_not_found", err.Error())
	case errors.Is(err, mesaerrors.ErrMesaAlreadyClosed):
		writeMesaError(w, http.StatusConflict, "mesa_already_closed", err.Error())
	default:
		writeMesaError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

func writeTallyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tallyerrors.ErrRequesterRequired):
		writeTallyError(w, http.StatusBadRequest, "requester_required", err.Error())
	case errors.Is(err, tallyerrors.ErrCircuitNotFound):
		writeTallyError(w, http.StatusNotFound, "circuit_not_found", err.Error())
	case errors.Is(err, tallyerrors.ErrResultsNotVisible):
		writeTallyError(w, http.StatusForbidden, "results_not_visible", err.Error())
	default:
		writeTallyError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeDirectoryError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, directoryhttp.ErrorResponse{Code: code, Message: message})
}

func writeVotingError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{Code: code, Message: message})
}

func writeMesaError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, mesahttp.ErrorResponse{Code: code, Message: message})
}

func writeTallyError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
