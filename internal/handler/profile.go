package handler

import (
	"net/http"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the 1:1 user profile.
type ProfileHandler struct {
	Profiles *store.ProfileStore
}

func NewProfileHandler(profiles *store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

type profileResp struct {
	LastName   string `json:"lastName,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	MiddleName string `json:"middleName,omitempty"`
	Age        int    `json:"age"`
	BirthDate  string `json:"birthDate,omitempty"`
}

func toProfileResp(p *models.Profile) profileResp {
	resp := profileResp{
		LastName:   p.LastName,
		FirstName:  p.FirstName,
		MiddleName: p.MiddleName,
		Age:        p.Age,
	}
	if p.BirthDate != nil {
		resp.BirthDate = util.FormatDate(*p.BirthDate)
	}
	return resp
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	p, err := h.Profiles.Get(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResp(p))
}

type updateProfileReq struct {
	LastName   *string `json:"lastName"`
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	Age        *int    `json:"age"`
	BirthDate  *string `json:"birthDate"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := store.ProfilePatch{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		Age:        req.Age,
	}
	if req.BirthDate != nil {
		var birth time.Time
		if *req.BirthDate != "" {
			var err error
			birth, err = util.ParseDate(*req.BirthDate)
			if err != nil {
				util.Error(c, http.StatusBadRequest, err.Error())
				return
			}
		}
		patch.BirthDate = &birth
	}

	p, err := h.Profiles.Update(user.ID, patch)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResp(p))
}
