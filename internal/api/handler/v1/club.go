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

type ClubService interface {
	CreateClub(ctx context.Context, club domain.Club, creator domain.User) (domain.Club, error)
	GetClub(ctx context.Context, id uint) (domain.Club, error)
	ListClubs(ctx context.Context) ([]domain.Club, error)
	JoinClub(ctx context.Context, clubID, userID uint) (domain.ClubMembership, error)
	ApproveMember(ctx context.Context, clubID, userID uint, actor domain.User) error
	ListMembers(ctx context.Context, clubID uint) ([]domain.ClubMembership, error)
}

type ClubHandler struct {
	svc  ClubService
	uSvc UserService
}

func NewClubHandler(svc ClubService, uSvc UserService) *ClubHandler {
	return &ClubHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateClub godoc
// @Summary      Create a club
// @Tags         clubs
// @Produce      json
// @Param        request  body       request.CreateClubRequest true "request body"
// @Success      201      {object}   domain.Club
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /clubs [post]
// @Security     BearerAuth
func (h *ClubHandler) HandleCreateClub(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	club, err := h.svc.CreateClub(ctx.Request.Context(), domain.Club{
		Name:        req.Name,
		Description: req.Description,
	}, user)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateClub -> h.svc.CreateClub -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, club)
}

// HandleListClubs godoc
// @Summary      List all clubs
// @Tags         clubs
// @Produce      json
// @Success      200      {array}    domain.Club
// @Failure      500      {object}   response.Err
// @Router       /clubs [get]
// @Security     BearerAuth
func (h *ClubHandler) HandleListClubs(ctx *gin.Context) {
	clubs, err := h.svc.ListClubs(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListClubs -> h.svc.ListClubs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, clubs)
}

// HandleGetClub godoc
// @Summary      Get a club by ID
// @Tags         clubs
// @Produce      json
// @Param        clubID   path       int  true "club ID"
// @Success      200      {object}   domain.Club
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /clubs/{clubID} [get]
// @Security     BearerAuth
func (h *ClubHandler) HandleGetClub(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid club ID: %w", err)))

		return
	}

	club, err := h.svc.GetClub(ctx.Request.Context(), uint(clubID))
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("club", "ID", clubID))

			return
		}

		err = fmt.Errorf("v1.HandleGetClub -> h.svc.GetClub -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, club)
}

// HandleJoinClub godoc
// @Summary      Request membership in a club
// @Tags         clubs
// @Produce      json
// @Param        clubID   path       int  true "club ID"
// @Success      201      {object}   domain.ClubMembership
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /clubs/{clubID}/join [post]
// @Security     BearerAuth
func (h *ClubHandler) HandleJoinClub(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid club ID: %w", err)))

		return
	}

	membership, err := h.svc.JoinClub(ctx.Request.Context(), uint(clubID), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClubNotFound):
			response.RenderErr(ctx, response.ErrNotFound("club", "ID", clubID))
		case errors.Is(err, service.ErrAlreadyMember):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyMember))
		default:
			err = fmt.Errorf("v1.HandleJoinClub -> h.svc.JoinClub -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, membership)
}

// HandleApproveMember godoc
// @Summary      Approve a pending club membership
// @Tags         clubs
// @Produce      json
// @Param        clubID   path       int  true "club ID"
// @Param        userID   path       int  true "user ID"
// @Success      204      {string}   string "No Content"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /clubs/{clubID}/members/{userID}/approve [post]
// @Security     BearerAuth
func (h *ClubHandler) HandleApproveMember(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid club ID: %w", err)))

		return
	}

	memberID, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID: %w", err)))

		return
	}

	err = h.svc.ApproveMember(ctx.Request.Context(), uint(clubID), uint(memberID), user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotClubPresident):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotClubPresident))
		case errors.Is(err, service.ErrClubNotFound):
			response.RenderErr(ctx, response.ErrNotFound("club", "ID", clubID))
		case errors.Is(err, service.ErrMembershipNotFound):
			response.RenderErr(ctx, response.ErrNotFound("membership", "userID", memberID))
		default:
			err = fmt.Errorf("v1.HandleApproveMember -> h.svc.ApproveMember -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListMembers godoc
// @Summary      List club memberships
// @Tags         clubs
// @Produce      json
// @Param        clubID   path       int  true "club ID"
// @Success      200      {array}    domain.ClubMembership
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /clubs/{clubID}/members [get]
// @Security     BearerAuth
func (h *ClubHandler) HandleListMembers(ctx *gin.Context) {
	clubID, err := strconv.ParseUint(ctx.Param("clubID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid club ID: %w", err)))

		return
	}

	memberships, err := h.svc.ListMembers(ctx.Request.Context(), uint(clubID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListMembers -> h.svc.ListMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, memberships)
}
