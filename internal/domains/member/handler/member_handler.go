package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/service"
	"library-backend/internal/shared/response"
)

type MemberHandler struct {
	service service.ServiceInterface
}

func NewMemberHandler(service service.ServiceInterface) *MemberHandler {
	return &MemberHandler{service: service}
}

// List handles GET /members with optional search, status, membership_type
// and sort parameters.
func (h *MemberHandler) List(c *gin.Context) {
	filter := &model.MemberFilter{
		Search:         c.Query("search"),
		Status:         c.Query("status"),
		MembershipType: c.Query("membership_type"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	}

	members, err := h.service.ListMembers(c.Request.Context(), filter)
	if model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, members)
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	member, err := h.service.GetMember(c.Request.Context(), id)
	if model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, member)
}

func (h *MemberHandler) Create(c *gin.Context) {
	var payload model.MemberPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.service.AddMember(c.Request.Context(), &payload)
	if model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, member)
}

func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload model.MemberPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.service.UpdateMember(c.Request.Context(), id, &payload)
	if model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, member)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMember(c.Request.Context(), id); model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Renew handles POST /members/:id/renew.
func (h *MemberHandler) Renew(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.service.RenewMembership(c.Request.Context(), id, &req)
	if model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, member)
}

func (h *MemberHandler) Loans(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	loans, err := h.service.GetMemberLoans(c.Request.Context(), id)
	if model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, loans)
}

func (h *MemberHandler) Fines(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fines, err := h.service.GetMemberFines(c.Request.Context(), id)
	if model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, fines)
}

// Eligibility handles GET /members/:id/eligibility. An unknown member still
// yields a 200 with an ineligible verdict.
func (h *MemberHandler) Eligibility(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	verdict, err := h.service.CheckEligibility(c.Request.Context(), id)
	if model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, verdict)
}

func (h *MemberHandler) Stats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if model.HandleMemberError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid id parameter")
		return 0, false
	}
	return id, true
}
