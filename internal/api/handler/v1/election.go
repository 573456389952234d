package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubhub/clubhub-api/internal/api/handler/v1/request"
	"github.com/clubhub/clubhub-api/internal/api/handler/v1/response"
	"github.com/clubhub/clubhub-api/internal/domain"
	"github.com/clubhub/clubhub-api/internal/service"
)

type ElectionService interface {
	CreateElection(ctx context.Context, election domain.Election, actor domain.User) (domain.Election, error)
	GetElection(ctx context.Context, id uint) (domain.Election, error)
	ListElections(ctx context.Context, clubID *uint, status domain.ElectionStatus) ([]domain.Election, error)
	DeleteElection(ctx context.Context, id uint, actor domain.User) error
	AddRole(ctx context.Context, role domain.Role, actor domain.User) (domain.Role, error)
	RemoveRole(ctx context.Context, electionID, roleID uint, actor domain.User) error
	ListRoles(ctx context.Context, electionID uint) ([]domain.Role, error)
	Apply(ctx context.Context, electionID, roleID, applicantID uint, statement string) (domain.CandidacyApplication, error)
	ReviewApplication(ctx context.Context, applicationID uint, approve bool, actor domain.User) (domain.Candidate, error)
	AddCandidateDirectly(ctx context.Context, electionID, userID uint, position, statement string, actor domain.User) (domain.Candidate, error)
	ListApplications(ctx context.Context, electionID uint, actor domain.User) ([]domain.CandidacyApplication, error)
	GetMyApplication(ctx context.Context, electionID, applicantID uint) (domain.CandidacyApplication, error)
	CastVote(ctx context.Context, electionID, voterID, candidateID uint) (domain.VoteReceipt, error)
	HasVoted(ctx context.Context, electionID, voterID uint) (bool, error)
	Results(ctx context.Context, electionID uint) (domain.ElectionResults, error)
}

type ElectionHandler struct {
	svc  ElectionService
	uSvc UserService
}

func NewElectionHandler(svc ElectionService, uSvc UserService) *ElectionHandler {
	return &ElectionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// electionErrStatus maps the election error catalog onto response
// constructors keyed by sentinel, so clients see the sentinel message and
// not the internal call chain.
var electionErrStatus = []struct {
	sentinel error
	render   func(error) *response.Err
}{
	{service.ErrNotClubPresident, response.ErrPermissionDenied},
	{service.ErrNotAdmin, response.ErrPermissionDenied},
	{service.ErrNotClubMember, response.ErrPermissionDenied},
	{service.ErrInvalidTimeRange, response.ErrBadRequest},
	{service.ErrElectionNotActive, response.ErrBadRequest},
	{service.ErrElectionCompleted, response.ErrBadRequest},
	{service.ErrNoRolesDefined, response.ErrBadRequest},
	{service.ErrRoleNotInElection, response.ErrBadRequest},
	{service.ErrStatementTooShort, response.ErrBadRequest},
	{service.ErrCandidateNotInElection, response.ErrBadRequest},
	{service.ErrResultsNotAvailable, response.ErrBadRequest},
	{service.ErrAlreadyVoted, response.ErrConflict},
	{service.ErrDuplicateApplication, response.ErrConflict},
	{service.ErrDuplicateCandidate, response.ErrConflict},
	{service.ErrDuplicateRole, response.ErrConflict},
	{service.ErrRoleInUse, response.ErrConflict},
	{service.ErrApplicationDecided, response.ErrConflict},
	{service.ErrStorageUnavailable, response.ErrServiceUnavailable},
}

// renderElectionErr renders err according to the catalog above. Unknown
// errors fall through to a logged 500.
func renderElectionErr(ctx *gin.Context, err error) {
	for _, entry := range electionErrStatus {
		if errors.Is(err, entry.sentinel) {
			response.RenderErr(ctx, entry.render(entry.sentinel))

			return
		}
	}

	switch {
	case errors.Is(err, service.ErrElectionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("election", "ID", ctx.Param("electionID")))
	case errors.Is(err, service.ErrRoleNotFound):
		response.RenderErr(ctx, response.ErrNotFound("role", "ID", ctx.Param("roleID")))
	case errors.Is(err, service.ErrApplicationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("application", "ID", ctx.Param("applicationID")))
	case errors.Is(err, service.ErrCandidateNotFound):
		response.RenderErr(ctx, response.ErrNotFound("candidate", "ID", ctx.Param("candidateID")))
	case errors.Is(err, service.ErrClubNotFound):
		response.RenderErr(ctx, response.ErrNotFound("club", "ID", ctx.Param("clubID")))
	case errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrNotFound("user", "ID", ctx.Param("userID")))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func electionIDParam(ctx *gin.Context) (uint, *response.Err) {
	electionID, err := strconv.ParseUint(ctx.Param("electionID"), 10, 32)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid election ID: %w", err))
	}

	return uint(electionID), nil
}

// HandleCreateElection godoc
// @Summary      Create an election for a club
// @Tags         elections
// @Produce      json
// @Param        request  body       request.CreateElectionRequest true "request body"
// @Success      201      {object}   domain.Election
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections [post]
// @Security     BearerAuth
func (h *ElectionHandler) HandleCreateElection(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateElectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	startsAt, endsAt, err := req.Window()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	election, err := h.svc.CreateElection(ctx.Request.Context(), domain.Election{
		Title:       req.Title,
		Description: req.Description,
		ClubID:      req.ClubID,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}, user)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleCreateElection -> h.svc.CreateElection -> %w", err))

		return
	}

	ctx.JSON(http.StatusCreated, election)
}

// HandleListElections godoc
// @Summary      List elections, filterable by club and current status
// @Tags         elections
// @Produce      json
// @Param        club_id  query      int     false "club ID"
// @Param        status   query      string  false "upcoming | active | completed"
// @Success      200      {array}    domain.Election
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections [get]
// @Security     BearerAuth
func (h *ElectionHandler) HandleListElections(ctx *gin.Context) {
	var clubID *uint
	if raw := ctx.Query("club_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid club ID: %w", err)))

			return
		}

		id := uint(parsed)
		clubID = &id
	}

	status := domain.ElectionStatus(ctx.Query("status"))
	switch status {
	case "", domain.StatusUpcoming, domain.StatusActive, domain.StatusCompleted:
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid status %q", status)))

		return
	}

	elections, err := h.svc.ListElections(ctx.Request.Context(), clubID, status)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleListElections -> h.svc.ListElections -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, elections)
}

// HandleGetElection godoc
// @Summary      Get an election with its roles and candidates
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Success      200      {object}   domain.Election
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID} [get]
// @Security     BearerAuth
func (h *ElectionHandler) HandleGetElection(ctx *gin.Context) {
	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	election, err := h.svc.GetElection(ctx.Request.Context(), electionID)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleGetElection -> h.svc.GetElection -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, election)
}

// HandleDeleteElection godoc
// @Summary      Delete an election and everything attached to it
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Success      204      {string}   string "No Content"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID} [delete]
// @Security     BearerAuth
func (h *ElectionHandler) HandleDeleteElection(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.DeleteElection(ctx.Request.Context(), electionID, user); err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleDeleteElection -> h.svc.DeleteElection -> %w", err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddRole godoc
// @Summary      Add a contested role to an election
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Param        request  body       request.AddRoleRequest true "request body"
// @Success      201      {object}   domain.Role
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/roles [post]
// @Security     BearerAuth
func (h *ElectionHandler) HandleAddRole(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.AddRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	role, err := h.svc.AddRole(ctx.Request.Context(), domain.Role{
		ElectionID:  electionID,
		Name:        req.Name,
		Description: req.Description,
	}, user)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleAddRole -> h.svc.AddRole -> %w", err))

		return
	}

	ctx.JSON(http.StatusCreated, role)
}

// HandleListRoles godoc
// @Summary      List the roles of an election
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Success      200      {array}    domain.Role
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/roles [get]
// @Security     BearerAuth
func (h *ElectionHandler) HandleListRoles(ctx *gin.Context) {
	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	roles, err := h.svc.ListRoles(ctx.Request.Context(), electionID)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleListRoles -> h.svc.ListRoles -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, roles)
}

// HandleRemoveRole godoc
// @Summary      Remove a role that has no candidates yet
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Param        roleID   path       int  true "role ID"
// @Success      204      {string}   string "No Content"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/roles/{roleID} [delete]
// @Security     BearerAuth
func (h *ElectionHandler) HandleRemoveRole(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	roleID, err := strconv.ParseUint(ctx.Param("roleID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid role ID: %w", err)))

		return
	}

	if err := h.svc.RemoveRole(ctx.Request.Context(), electionID, uint(roleID), user); err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleRemoveRole -> h.svc.RemoveRole -> %w", err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleApply godoc
// @Summary      Apply for a role in an election
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Param        request  body       request.ApplyRequest true "request body"
// @Success      201      {object}   domain.CandidacyApplication
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/applications [post]
// @Security     BearerAuth
func (h *ElectionHandler) HandleApply(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	application, err := h.svc.Apply(ctx.Request.Context(), electionID, req.RoleID, user.ID, req.Statement)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleApply -> h.svc.Apply -> %w", err))

		return
	}

	ctx.JSON(http.StatusCreated, application)
}

// HandleListApplications godoc
// @Summary      List the applications of an election
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Success      200      {array}    domain.CandidacyApplication
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/applications [get]
// @Security     BearerAuth
func (h *ElectionHandler) HandleListApplications(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	applications, err := h.svc.ListApplications(ctx.Request.Context(), electionID, user)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleListApplications -> h.svc.ListApplications -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, applications)
}

// HandleGetMyApplication godoc
// @Summary      Get the caller's open application for an election
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Success      200      {object}   domain.CandidacyApplication
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/applications/me [get]
// @Security     BearerAuth
func (h *ElectionHandler) HandleGetMyApplication(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	application, err := h.svc.GetMyApplication(ctx.Request.Context(), electionID, user.ID)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleGetMyApplication -> h.svc.GetMyApplication -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, application)
}

// HandleReviewApplication godoc
// @Summary      Approve or reject a pending application
// @Tags         elections
// @Produce      json
// @Param        electionID    path  int  true "election ID"
// @Param        applicationID path  int  true "application ID"
// @Param        request  body       request.ReviewApplicationRequest true "request body"
// @Success      200      {object}   domain.Candidate
// @Success      204      {string}   string "No Content"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/applications/{applicationID}/review [post]
// @Security     BearerAuth
func (h *ElectionHandler) HandleReviewApplication(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	applicationID, err := strconv.ParseUint(ctx.Param("applicationID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid application ID: %w", err)))

		return
	}

	var req request.ReviewApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	approve := req.Decision == "approve"

	candidate, err := h.svc.ReviewApplication(ctx.Request.Context(), uint(applicationID), approve, user)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleReviewApplication -> h.svc.ReviewApplication -> %w", err))

		return
	}

	if !approve {
		ctx.Status(http.StatusNoContent)

		return
	}

	ctx.JSON(http.StatusOK, candidate)
}

// HandleAddCandidate godoc
// @Summary      Add a candidate without an application
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Param        request  body       request.AddCandidateRequest true "request body"
// @Success      201      {object}   domain.Candidate
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/candidates [post]
// @Security     BearerAuth
func (h *ElectionHandler) HandleAddCandidate(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.AddCandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	candidate, err := h.svc.AddCandidateDirectly(ctx.Request.Context(), electionID, req.UserID, req.Position, req.Statement, user)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleAddCandidate -> h.svc.AddCandidateDirectly -> %w", err))

		return
	}

	ctx.JSON(http.StatusCreated, candidate)
}

// HandleCastVote godoc
// @Summary      Cast the caller's single vote in an election
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Param        request  body       request.CastVoteRequest true "request body"
// @Success      201      {object}   response.VoteReceiptResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /elections/{electionID}/votes [post]
// @Security     BearerAuth
func (h *ElectionHandler) HandleCastVote(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	receipt, err := h.svc.CastVote(ctx.Request.Context(), electionID, user.ID, req.CandidateID)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleCastVote -> h.svc.CastVote -> %w", err))

		return
	}

	ctx.JSON(http.StatusCreated, response.NewVoteReceiptResponse(receipt))
}

// HandleHasVoted godoc
// @Summary      Tell whether the caller has voted in an election
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Success      200      {object}   response.VoteStatusResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/voted [get]
// @Security     BearerAuth
func (h *ElectionHandler) HandleHasVoted(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	voted, err := h.svc.HasVoted(ctx.Request.Context(), electionID, user.ID)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleHasVoted -> h.svc.HasVoted -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, response.VoteStatusResponse{
		ElectionID: electionID,
		HasVoted:   voted,
	})
}

// HandleGetResults godoc
// @Summary      Get the results of a completed election
// @Tags         elections
// @Produce      json
// @Param        electionID path     int  true "election ID"
// @Success      200      {object}   domain.ElectionResults
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /elections/{electionID}/results [get]
// @Security     BearerAuth
func (h *ElectionHandler) HandleGetResults(ctx *gin.Context) {
	electionID, respErr := electionIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	results, err := h.svc.Results(ctx.Request.Context(), electionID)
	if err != nil {
		renderElectionErr(ctx, fmt.Errorf("v1.HandleGetResults -> h.svc.Results -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, results)
}
