package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/service"
	"github.com/fsdevblog/groph-bank/internal/transport/api/testutils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	handlerSuite
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func fakeRegisterPayload(username string) map[string]any {
	return map[string]any{
		"login":        username,
		"password":     gofakeit.Password(true, true, true, false, false, 12),
		"email":        gofakeit.Email(),
		"first_name":   gofakeit.FirstName(),
		"last_name":    gofakeit.LastName(),
		"account_type": string(domain.AccountTypeCurrent),
		"gender":       string(domain.GenderMale),
		"birth_date":   "1990-05-17",
		"address": map[string]any{
			"street":      gofakeit.Street(),
			"city":        gofakeit.City(),
			"postal_code": 1212,
			"country":     gofakeit.Country(),
		},
	}
}

func (s *AuthHandlerTestSuite) TestRegister() {
	okPayload := fakeRegisterPayload("alice")
	birthDate := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	s.mockUserService.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.RegisterUserArgs) (*service.Profile, string, error) {
			s.Equal("alice", args.Username)
			s.Equal(domain.AccountTypeCurrent, args.AccountType)
			s.Require().NotNil(args.BirthDate)
			s.True(birthDate.Equal(*args.BirthDate))
			s.Equal(int32(1212), args.Address.PostalCode)
			return &service.Profile{
				User:    &domain.User{ID: 7, Username: args.Username},
				Account: &domain.Account{ID: 3, UserID: 7, AccountNo: "1000000007"},
				Address: &domain.Address{UserID: 7, City: args.Address.City},
			}, "jwt-token", nil
		})
	s.mockUserService.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, "", domain.ErrDuplicateKey)

	s.Run("all ok", func() {
		res, body := s.request(http.MethodPost, RegisterRoute, okPayload, "")
		s.Require().Equal(http.StatusCreated, res.StatusCode)
		s.Equal("Bearer jwt-token", res.Header.Get("Authorization"))
		s.Contains(string(body), `"account_no":"1000000007"`)
	})

	s.Run("duplicate login", func() {
		res, body := s.request(http.MethodPost, RegisterRoute, fakeRegisterPayload("alice"), "")
		s.Equal(http.StatusConflict, res.StatusCode)
		s.Equal("user with this login already exists", s.errorMessage(body))
	})

	s.Run("invalid fields", func() {
		payload := fakeRegisterPayload("bob")
		payload["email"] = "not-an-email"
		payload["account_type"] = "Checking"

		res, body := s.request(http.MethodPost, RegisterRoute, payload, "")
		s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
		s.Contains(string(body), `"Email":"email"`)
		s.Contains(string(body), `"AccountType":"oneof"`)
	})

	s.Run("password over bcrypt limit", func() {
		// длина в рунах в пределах, в байтах - нет.
		payload := fakeRegisterPayload("bob")
		payload["password"] = testutils.GenerateOverBytesUnderRunes(20)

		res, _ := s.request(http.MethodPost, RegisterRoute, payload, "")
		s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
	})

	s.Run("already authorized", func() {
		res, _ := s.request(http.MethodPost, RegisterRoute, okPayload, s.userToken)
		s.Equal(http.StatusUnauthorized, res.StatusCode)
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	user := &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser}
	s.mockUserService.EXPECT().Login(gomock.Any(), "alice", "good-password").Return(user, "jwt-token", nil)
	s.mockUserService.EXPECT().Login(gomock.Any(), "alice", "bad-password").Return(nil, "", domain.ErrPasswordMissMatch)
	s.mockUserService.EXPECT().Login(gomock.Any(), "nobody", "good-password").Return(nil, "", domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
		wantHeader bool
	}{
		{name: "all ok", payload: `{"login":"alice","password":"good-password"}`, wantStatus: http.StatusOK,
			wantHeader: true},
		{name: "wrong password", payload: `{"login":"alice","password":"bad-password"}`,
			wantStatus: http.StatusUnauthorized},
		{name: "unknown user", payload: `{"login":"nobody","password":"good-password"}`,
			wantStatus: http.StatusUnauthorized},
		{name: "bad json", payload: `{"login":`, wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, body := s.request(http.MethodPost, LoginRoute, t.payload, "")
			s.Equal(t.wantStatus, res.StatusCode)
			if t.wantHeader {
				s.Equal("Bearer jwt-token", res.Header.Get("Authorization"))
				s.True(strings.Contains(string(body), `"login":"alice"`))
			}
		})
	}
}
