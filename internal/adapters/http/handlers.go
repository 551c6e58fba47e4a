package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"

	"github.com/connectly/connectly/internal/config"
	"github.com/connectly/connectly/internal/core"
	"github.com/connectly/connectly/internal/domain"
	"github.com/connectly/connectly/internal/store"
)

// MeetingHandlers is the thin CRUD glue over the meeting store. Room
// access control lives here, before a client ever reaches the hub.
type MeetingHandlers struct {
	Store    *store.Store
	Registry *core.Registry
	Cfg      *config.Config
}

type CreateMeetingRequest struct {
	HostName        string `json:"host_name"`
	HostDesignation string `json:"host_designation"`
}

type CreateMeetingResponse struct {
	Success     bool               `json:"success"`
	MeetingCode domain.MeetingCode `json:"meeting_code"`
	MeetingPwd  string             `json:"meeting_pwd"`
}

func (h *MeetingHandlers) CreateMeeting(c *gin.Context) {
	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_json"})
		return
	}
	m, err := h.Store.CreateMeeting(req.HostName, req.HostDesignation)
	if err != nil {
		if errors.Is(err, domain.ErrHostNameEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "store_error"})
		return
	}
	c.JSON(http.StatusOK, CreateMeetingResponse{
		Success:     true,
		MeetingCode: m.MeetingCode,
		MeetingPwd:  m.MeetingPwd,
	})
}

type VerifyMeetingRequest struct {
	MeetingCode string `json:"meeting_code"`
	Password    string `json:"password"`
}

func (h *MeetingHandlers) VerifyMeeting(c *gin.Context) {
	var req VerifyMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_json"})
		return
	}
	_, err := h.Store.VerifyCredentials(domain.MeetingCode(req.MeetingCode), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) || errors.Is(err, store.ErrInvalidCredentials) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "store_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meeting_code": req.MeetingCode})
}

type JoinMeetingRequest struct {
	MeetingCode string `json:"meeting_code"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

func (h *MeetingHandlers) JoinMeeting(c *gin.Context) {
	var req JoinMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_json"})
		return
	}
	if req.Name == "" || req.Designation == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "invalid_data"})
		return
	}
	if err := h.Store.AddParticipant(domain.MeetingCode(req.MeetingCode), req.Name, req.Designation); err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "invalid_data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "store_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RTCConfig hands clients the ICE servers to build their
// RTCPeerConnection against. The hub itself never terminates media.
func (h *MeetingHandlers) RTCConfig(c *gin.Context) {
	servers := []webrtc.ICEServer{
		{URLs: h.Cfg.StunURLs},
	}
	c.JSON(http.StatusOK, gin.H{"iceServers": servers})
}

// Rooms is a diagnostics view of live room membership.
func (h *MeetingHandlers) Rooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.Registry.List()})
}
