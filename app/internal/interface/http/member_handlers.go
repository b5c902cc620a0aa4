package http

import (
	"net/http"

	memberuc "example.com/ecomshop/app/internal/usecase/member"
)

func (a *API) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := a.memberSvc.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(members))
	for _, m := range members {
		resp = append(resp, mapMember(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	m, err := a.memberSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapMember(m))
}

type memberUpdateRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
}

func (a *API) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req memberUpdateRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	err := a.memberSvc.Update(r.Context(), user.UserID, memberuc.UpdateInput{
		DisplayName: req.DisplayName,
		Description: req.Description,
		City:        req.City,
		Country:     req.Country,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
