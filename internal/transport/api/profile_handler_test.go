package api

import (
	"net/http"
	"testing"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type ProfileHandlerTestSuite struct {
	handlerSuite
}

func TestProfileHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProfileHandlerTestSuite))
}

func (s *ProfileHandlerTestSuite) TestShow() {
	s.mockUserService.EXPECT().GetProfile(gomock.Any(), s.currentUserID).Return(&service.Profile{
		User:    &domain.User{ID: s.currentUserID, Username: "alice"},
		Account: &domain.Account{ID: 4, AccountNo: "1000000001"},
	}, nil)

	res, body := s.request(http.MethodGet, ProfileRoute, nil, s.userToken)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	s.Contains(string(body), `"login":"alice"`)
	s.NotContains(string(body), `"address"`)
}

func (s *ProfileHandlerTestSuite) TestUpdate() {
	s.mockUserService.EXPECT().
		UpdateProfile(gomock.Any(), s.currentUserID, service.UpdateProfileArgs{
			Email:     "alice@example.com",
			FirstName: "Alice",
			LastName:  "Liddell",
			Address:   service.AddressArgs{Street: "Main st", City: "Dhaka", PostalCode: 1212, Country: "BD"},
		}).
		Return(&service.Profile{
			User:    &domain.User{ID: s.currentUserID, Email: "alice@example.com"},
			Account: &domain.Account{ID: 4},
			Address: &domain.Address{City: "Dhaka"},
		}, nil)

	res, body := s.request(http.MethodPut, ProfileRoute, `{"email":"alice@example.com","first_name":"Alice",
		"last_name":"Liddell","address":{"street":"Main st","city":"Dhaka","postal_code":1212,"country":"BD"}}`,
		s.userToken)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	s.Contains(string(body), `"city":"Dhaka"`)

	res, _ = s.request(http.MethodPut, ProfileRoute, `{"email":"alice@example.com"}`, s.userToken)
	s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
}

func (s *ProfileHandlerTestSuite) TestChangePassword() {
	s.mockUserService.EXPECT().ChangePassword(gomock.Any(), s.currentUserID, "old-secret", "new-secret").Return(nil)
	s.mockUserService.EXPECT().
		ChangePassword(gomock.Any(), s.currentUserID, "wrong", "new-secret").
		Return(domain.ErrPasswordMissMatch)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{name: "all ok", payload: `{"old_password":"old-secret","new_password":"new-secret"}`,
			wantStatus: http.StatusNoContent},
		{name: "wrong current password", payload: `{"old_password":"wrong","new_password":"new-secret"}`,
			wantStatus: http.StatusUnauthorized},
		{name: "same password", payload: `{"old_password":"old-secret","new_password":"old-secret"}`,
			wantStatus: http.StatusUnprocessableEntity},
		{name: "short password", payload: `{"old_password":"old-secret","new_password":"123"}`,
			wantStatus: http.StatusUnprocessableEntity},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, _ := s.request(http.MethodPost, PasswordRoute, t.payload, s.userToken)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
