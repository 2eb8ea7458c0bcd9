package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coder/quartz"
	"github.com/fadedpez/tucobet/internal/logging"
	"github.com/fadedpez/tucobet/internal/types"
	"github.com/fadedpez/tucobet/pkg/dice"
	"github.com/fadedpez/tucobet/pkg/entities"
	sessionRepo "github.com/fadedpez/tucobet/pkg/repositories/session"
	"github.com/fadedpez/tucobet/pkg/services/bacbo"
	"github.com/fadedpez/tucobet/pkg/services/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DashboardTestSuite struct {
	suite.Suite
	router http.Handler
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardTestSuite))
}

func (s *DashboardTestSuite) SetupTest() {
	logger := logging.NewLoggerTo(io.Discard, logging.DEBUG, "")
	service := session.NewService(
		sessionRepo.NewMemoryRepository(),
		// player 9 vs banker 5, then a tie on 7
		bacbo.NewResolver(dice.NewSequence(4, 5, 2, 3, 3, 4, 2, 5)),
		quartz.NewMock(s.T()),
		logger,
	)
	defaults := session.Params{
		Bankroll:       decimal.NewFromInt(100),
		BaseBet:        decimal.NewFromInt(1),
		PayoutMultiple: decimal.NewFromInt(2),
		MaxLossStreak:  3,
	}
	s.router = NewServer(":0", service, defaults, logger).Router()
}

func (s *DashboardTestSuite) do(method, path, body string) (int, map[string]any) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var payload map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	return rec.Code, payload
}

func (s *DashboardTestSuite) TestHealth() {
	status, body := s.do(http.MethodGet, "/healthz", "")
	s.Equal(http.StatusOK, status)
	s.Equal("ok", body["status"])
}

func (s *DashboardTestSuite) TestStartWithDefaults() {
	status, body := s.do(http.MethodPost, "/users/u1/progression", "")

	s.Equal(http.StatusCreated, status)
	s.Equal("u1", body["user_id"])
	s.Equal("100", body["bankroll"])
	s.Equal("1", body["next_bet"])
	s.NotEmpty(body["session_id"])
}

func (s *DashboardTestSuite) TestStartWithOverrides() {
	status, body := s.do(http.MethodPost, "/users/u1/progression", `{"bankroll": 50, "base_bet": "2.5"}`)

	s.Equal(http.StatusCreated, status)
	s.Equal("50", body["bankroll"])
	s.Equal("2.5", body["next_bet"])
	s.Equal("2", body["payout"])
}

func (s *DashboardTestSuite) TestStartRejectsBadInput() {
	status, body := s.do(http.MethodPost, "/users/u1/progression", `{"base_bet": 500}`)
	s.Equal(http.StatusBadRequest, status)
	s.Equal(string(types.ErrInvalidArgument), body["code"])

	status, body = s.do(http.MethodPost, "/users/u1/progression", `{"bankroll": `)
	s.Equal(http.StatusBadRequest, status)
	s.Equal(string(types.ErrInvalidArgument), body["code"])

	status, _ = s.do(http.MethodPost, "/users/u1/progression", `{"colour": "red"}`)
	s.Equal(http.StatusBadRequest, status)
}

func (s *DashboardTestSuite) TestStartTwiceConflicts() {
	status, _ := s.do(http.MethodPost, "/users/u1/progression", "")
	s.Require().Equal(http.StatusCreated, status)

	status, body := s.do(http.MethodPost, "/users/u1/progression", "")
	s.Equal(http.StatusConflict, status)
	s.Equal(string(types.ErrSessionInProgress), body["code"])
}

func (s *DashboardTestSuite) TestNoSession() {
	status, body := s.do(http.MethodGet, "/users/u1/progression", "")
	s.Equal(http.StatusNotFound, status)
	s.Equal(string(types.ErrSessionNotFound), body["code"])

	status, _ = s.do(http.MethodPost, "/users/u1/progression/result", `{"won": true}`)
	s.Equal(http.StatusNotFound, status)

	status, _ = s.do(http.MethodDelete, "/users/u1/progression", "")
	s.Equal(http.StatusNotFound, status)
}

func (s *DashboardTestSuite) TestReportResult() {
	s.do(http.MethodPost, "/users/u1/progression", "")

	status, body := s.do(http.MethodPost, "/users/u1/progression/result", `{"won": false}`)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(false, body["won"])
	s.Equal("1", body["stake"])
	s.Equal("continue", body["decision"])
	s.Equal(false, body["ended"])

	progression := body["progression"].(map[string]any)
	s.Equal("99", progression["bankroll"])
	s.Equal("2", progression["next_bet"])
	s.Equal(float64(1), progression["loss_streak"])
	s.Equal([]any{false}, progression["recent_results"])
	s.Equal([]any{"100", "99"}, progression["bankroll_history"])

	status, body = s.do(http.MethodGet, "/users/u1/progression", "")
	s.Equal(http.StatusOK, status)
	s.Equal("2", body["next_bet"])
}

func (s *DashboardTestSuite) TestReportResultRequiresWon() {
	s.do(http.MethodPost, "/users/u1/progression", "")

	status, body := s.do(http.MethodPost, "/users/u1/progression/result", `{}`)
	s.Equal(http.StatusBadRequest, status)
	s.Equal(string(types.ErrInvalidArgument), body["code"])
}

func (s *DashboardTestSuite) TestStopLossEndsSession() {
	s.do(http.MethodPost, "/users/u1/progression", "")

	var body map[string]any
	for i := 0; i < 4; i++ {
		_, body = s.do(http.MethodPost, "/users/u1/progression/result", `{"won": false}`)
	}

	s.Equal("stop_loss", body["decision"])
	s.Equal(true, body["ended"])
	s.Equal("stop_loss", body["end_reason"])
	s.Equal("85", body["progression"].(map[string]any)["bankroll"])

	status, _ := s.do(http.MethodGet, "/users/u1/progression", "")
	s.Equal(http.StatusNotFound, status)
}

func (s *DashboardTestSuite) TestStopProgression() {
	s.do(http.MethodPost, "/users/u1/progression", "")

	status, body := s.do(http.MethodDelete, "/users/u1/progression", "")
	s.Equal(http.StatusOK, status)
	s.Equal("100", body["bankroll"])

	status, _ = s.do(http.MethodGet, "/users/u1/progression", "")
	s.Equal(http.StatusNotFound, status)
}

func (s *DashboardTestSuite) TestBacBoRounds() {
	status, body := s.do(http.MethodPost, "/users/u1/bacbo/rounds", `{"wager": "player"}`)
	s.Require().Equal(http.StatusOK, status)
	s.Equal([]any{float64(4), float64(5)}, body["player_dice"])
	s.Equal(float64(9), body["player_score"])
	s.Equal(float64(5), body["banker_score"])
	s.Equal("player", body["winner"])
	s.Equal("win", body["outcome"])
	s.Equal("odds", body["payout_kind"])
	s.Equal("1", body["payout_ratio"])

	status, body = s.do(http.MethodPost, "/users/u1/bacbo/rounds", `{"wager": "Banker"}`)
	s.Require().Equal(http.StatusOK, status)
	s.Equal("tie", body["winner"])
	s.Equal("tie_push", body["outcome"])
	s.Equal("refund", body["payout_kind"])
	s.Equal("0.9", body["payout_ratio"])
	s.Equal("N/A", body["tie_payout"])

	summary := body["summary"].(map[string]any)
	s.Equal(float64(2), summary["rounds"])
	s.Equal(float64(1), summary["wins"])
	s.Equal(float64(1), summary["tie_push"])

	status, body = s.do(http.MethodDelete, "/users/u1/bacbo", "")
	s.Equal(http.StatusOK, status)
	s.Equal(float64(2), body["rounds"])

	status, body = s.do(http.MethodDelete, "/users/u1/bacbo", "")
	s.Equal(http.StatusOK, status)
	s.Equal(float64(0), body["rounds"])
}

func (s *DashboardTestSuite) TestBacBoInvalidWager() {
	status, body := s.do(http.MethodPost, "/users/u1/bacbo/rounds", `{"wager": "dragon"}`)
	s.Equal(http.StatusBadRequest, status)
	s.Equal(string(types.ErrInvalidWager), body["code"])
}

func (s *DashboardTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/users/u1/progression", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	s.NotEmpty(rec.Header().Get("Access-Control-Allow-Origin"))
}

// brokenService fails every call with a storage error
type brokenService struct {
	SessionService
}

func (brokenService) CurrentProgression(context.Context, string) (*entities.ProgressionSession, error) {
	return nil, errors.New("disk on fire")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	logger := logging.NewLoggerTo(io.Discard, logging.DEBUG, "")
	router := NewServer(":0", brokenService{}, session.Params{}, logger).Router()

	req := httptest.NewRequest(http.MethodGet, "/users/u1/progression", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"internal error"}`, rec.Body.String())
}

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		code   types.ErrorCode
		status int
	}{
		{types.ErrSessionNotFound, http.StatusNotFound},
		{types.ErrSessionInProgress, http.StatusConflict},
		{types.ErrInvalidArgument, http.StatusBadRequest},
		{types.ErrInvalidWager, http.StatusBadRequest},
		{types.ErrBankrupt, http.StatusGone},
		{types.ErrStopLoss, http.StatusGone},
		{types.ErrNetworkError, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.status, statusFor(tc.code), string(tc.code))
	}
}
