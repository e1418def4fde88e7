package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/squadhq/squad-backend/internal/apperr"
	"github.com/squadhq/squad-backend/internal/repository"
	"github.com/squadhq/squad-backend/internal/service"
	"github.com/squadhq/squad-backend/internal/types"
)

const (
	testCreator = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testInvitee = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// stubInviteService lets each test pin the service behavior per method.
type stubInviteService struct {
	createFn func(ctx context.Context, squadName, creatorWallet, inviteeWallet string, expiresInDays int) (*repository.SquadInvite, error)
	acceptFn func(ctx context.Context, inviteID, actingWallet string) (*repository.SquadInvite, *service.SquadStatus, error)
	listFn   func(ctx context.Context, walletAddress string) ([]*repository.SquadInvite, error)
	squadsFn func(ctx context.Context, creatorWallet string) ([]*service.SquadInfo, error)
}

func (s *stubInviteService) CreateInvite(ctx context.Context, squadName, creatorWallet, inviteeWallet string, expiresInDays int) (*repository.SquadInvite, error) {
	return s.createFn(ctx, squadName, creatorWallet, inviteeWallet, expiresInDays)
}

func (s *stubInviteService) AcceptInvite(ctx context.Context, inviteID, actingWallet string) (*repository.SquadInvite, *service.SquadStatus, error) {
	return s.acceptFn(ctx, inviteID, actingWallet)
}

func (s *stubInviteService) ListInvitesFor(ctx context.Context, walletAddress string) ([]*repository.SquadInvite, error) {
	return s.listFn(ctx, walletAddress)
}

func (s *stubInviteService) ListSquadsFor(ctx context.Context, creatorWallet string) ([]*service.SquadInfo, error) {
	return s.squadsFn(ctx, creatorWallet)
}

func setupRouter(svc service.InviteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	invite := &InviteHandler{inviteService: svc}
	squad := &SquadHandler{inviteService: svc}
	r.POST("/api/invite", invite.CreateInvite)
	r.POST("/api/accept", invite.AcceptInvite)
	r.GET("/api/invites/:walletAddress", invite.ListInvites)
	r.GET("/api/squad/:creatorWallet", squad.ListSquads)
	return r
}

func testInvite() *repository.SquadInvite {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	return &repository.SquadInvite{
		ID:            "invite-1",
		SquadName:     "alpha",
		CreatorWallet: testCreator,
		InviteeWallet: testInvitee,
		Status:        types.InviteStatusPending,
		ExpiresAt:     now.Add(7 * 24 * time.Hour),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestCreateInviteHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		router := setupRouter(&stubInviteService{
			createFn: func(ctx context.Context, squadName, creatorWallet, inviteeWallet string, expiresInDays int) (*repository.SquadInvite, error) {
				require.Equal(t, "alpha", squadName)
				require.Equal(t, 7, expiresInDays)
				return testInvite(), nil
			},
		})

		body, _ := json.Marshal(map[string]interface{}{
			"squadName":     "alpha",
			"creatorWallet": testCreator,
			"inviteeWallet": testInvitee,
			"expiresInDays": 7,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/invite", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Invite  struct {
				ID        string `json:"id"`
				SquadName string `json:"squadName"`
				Status    string `json:"status"`
			} `json:"invite"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.Equal(t, "invite-1", resp.Invite.ID)
		require.Equal(t, "PENDING", resp.Invite.Status)
	})

	t.Run("missing fields", func(t *testing.T) {
		router := setupRouter(&stubInviteService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/invite", bytes.NewReader([]byte(`{"squadName":"alpha"}`)))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		router := setupRouter(&stubInviteService{
			createFn: func(ctx context.Context, squadName, creatorWallet, inviteeWallet string, expiresInDays int) (*repository.SquadInvite, error) {
				return nil, apperr.Conflict("Invite already exists and is pending")
			},
		})

		body, _ := json.Marshal(map[string]interface{}{
			"squadName":     "alpha",
			"creatorWallet": testCreator,
			"inviteeWallet": testInvitee,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/invite", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusConflict, w.Code)
		require.Contains(t, w.Body.String(), "Invite already exists and is pending")
	})
}

func TestAcceptInviteHandler(t *testing.T) {
	t.Run("accepted with squad status", func(t *testing.T) {
		accepted := testInvite()
		accepted.Status = types.InviteStatusAccepted
		router := setupRouter(&stubInviteService{
			acceptFn: func(ctx context.Context, inviteID, actingWallet string) (*repository.SquadInvite, *service.SquadStatus, error) {
				require.Equal(t, "invite-1", inviteID)
				require.Equal(t, testInvitee, actingWallet)
				return accepted, &service.SquadStatus{TotalInvites: 1, AcceptedInvites: 1, IsComplete: true}, nil
			},
		})

		body, _ := json.Marshal(map[string]string{
			"inviteId":      "invite-1",
			"inviteeWallet": testInvitee,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/accept", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success     bool `json:"success"`
			SquadStatus struct {
				IsComplete   bool `json:"isComplete"`
				TotalInvites int  `json:"totalInvites"`
			} `json:"squadStatus"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.True(t, resp.SquadStatus.IsComplete)
		require.Equal(t, 1, resp.SquadStatus.TotalInvites)
	})

	t.Run("wallet mismatch maps to 403", func(t *testing.T) {
		router := setupRouter(&stubInviteService{
			acceptFn: func(ctx context.Context, inviteID, actingWallet string) (*repository.SquadInvite, *service.SquadStatus, error) {
				return nil, nil, apperr.Authorization("Unauthorized: wallet address mismatch")
			},
		})

		body, _ := json.Marshal(map[string]string{"inviteId": "invite-1", "inviteeWallet": testCreator})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/accept", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		router := setupRouter(&stubInviteService{
			acceptFn: func(ctx context.Context, inviteID, actingWallet string) (*repository.SquadInvite, *service.SquadStatus, error) {
				return nil, nil, apperr.NotFound("Invite not found")
			},
		})

		body, _ := json.Marshal(map[string]string{"inviteId": "missing", "inviteeWallet": testInvitee})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/accept", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("expired maps to 400", func(t *testing.T) {
		router := setupRouter(&stubInviteService{
			acceptFn: func(ctx context.Context, inviteID, actingWallet string) (*repository.SquadInvite, *service.SquadStatus, error) {
				return nil, nil, apperr.InvalidState(apperr.ReasonExpired, "Invite has expired")
			},
		})

		body, _ := json.Marshal(map[string]string{"inviteId": "invite-1", "inviteeWallet": testInvitee})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/accept", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Invite has expired")
	})
}

func TestListInvitesHandler(t *testing.T) {
	router := setupRouter(&stubInviteService{
		listFn: func(ctx context.Context, walletAddress string) ([]*repository.SquadInvite, error) {
			require.Equal(t, testInvitee, walletAddress)
			return []*repository.SquadInvite{testInvite()}, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/invites/"+testInvitee, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success       bool   `json:"success"`
		WalletAddress string `json:"walletAddress"`
		Invites       []struct {
			SquadName string `json:"squadName"`
		} `json:"invites"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, testInvitee, resp.WalletAddress)
	require.Len(t, resp.Invites, 1)
	require.Equal(t, "alpha", resp.Invites[0].SquadName)
}

func TestListSquadsHandler(t *testing.T) {
	t.Run("returns squads", func(t *testing.T) {
		router := setupRouter(&stubInviteService{
			squadsFn: func(ctx context.Context, creatorWallet string) ([]*service.SquadInfo, error) {
				return []*service.SquadInfo{
					{
						SquadName:     "alpha",
						CreatorWallet: testCreator,
						MemberWallets: []string{testCreator, testInvitee},
						SquadStatus:   service.SquadStatus{TotalInvites: 1, AcceptedInvites: 1, IsComplete: true},
						Invites: []service.SquadInviteView{
							{ID: "invite-1", InviteeWallet: testInvitee, Status: types.InviteStatusAccepted},
						},
					},
				}, nil
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/squad/"+testCreator, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success       bool   `json:"success"`
			CreatorWallet string `json:"creatorWallet"`
			Squads        []struct {
				SquadName     string   `json:"squadName"`
				MemberWallets []string `json:"memberWallets"`
				IsComplete    bool     `json:"isComplete"`
				Invites       []struct {
					InviteeWallet string `json:"inviteeWallet"`
					Status        string `json:"status"`
				} `json:"invites"`
			} `json:"squads"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, testCreator, resp.CreatorWallet)
		require.Len(t, resp.Squads, 1)
		require.True(t, resp.Squads[0].IsComplete)
		require.Equal(t, []string{testCreator, testInvitee}, resp.Squads[0].MemberWallets)
		require.Len(t, resp.Squads[0].Invites, 1)
		require.Equal(t, testInvitee, resp.Squads[0].Invites[0].InviteeWallet)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		router := setupRouter(&stubInviteService{
			squadsFn: func(ctx context.Context, creatorWallet string) ([]*service.SquadInfo, error) {
				return nil, nil
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/squad/"+testCreator, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"squads":[]`)
	})
}
