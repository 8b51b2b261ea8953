package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/logger"
	"github.com/fsdevblog/groph-bank/internal/service/tokens"
	"github.com/fsdevblog/groph-bank/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-bank/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

// handlerSuite общий каркас тестов обработчиков: роутер на моках сервисов.
type handlerSuite struct {
	suite.Suite
	router             *gin.Engine
	jwtSecret          []byte
	mockUserService    *mocks.MockUserServicer
	mockTrService      *mocks.MockTransactionServicer
	mockLoanService    *mocks.MockLoanServicer
	mockReportService  *mocks.MockReportServicer
	userToken          string
	adminToken         string
	currentUserID      int64
	currentAdminUserID int64
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	mockCtrl := gomock.NewController(s.T())

	s.jwtSecret = []byte("super secret key")
	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.mockTrService = mocks.NewMockTransactionServicer(mockCtrl)
	s.mockLoanService = mocks.NewMockLoanServicer(mockCtrl)
	s.mockReportService = mocks.NewMockReportServicer(mockCtrl)

	router, err := New(RouterArgs{
		Logger:             logger.Discard(),
		UserService:        s.mockUserService,
		TransactionService: s.mockTrService,
		LoanService:        s.mockLoanService,
		ReportService:      s.mockReportService,
		JWTSecretKey:       s.jwtSecret,
	})
	s.Require().NoError(err)
	s.router = router

	s.currentUserID, s.currentAdminUserID = 1, 100
	s.userToken = s.token(s.currentUserID, domain.RoleUser)
	s.adminToken = s.token(s.currentAdminUserID, domain.RoleAdmin)
}

func (s *handlerSuite) token(userID int64, role domain.RoleType) string {
	token, err := tokens.GenerateUserJWT(userID, role, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	return token
}

// request выполняет запрос с json телом payload (строка уходит как есть) и возвращает ответ и его тело.
func (s *handlerSuite) request(method, url string, payload any, jwtToken string) (*http.Response, []byte) {
	var body io.Reader
	switch p := payload.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(p)
	default:
		raw, err := json.Marshal(p)
		s.Require().NoError(err)
		body = bytes.NewReader(raw)
	}

	reqOpts := []func(*testutils.RequestOptions){
		testutils.WithHeader("Content-Type", "application/json; charset=utf-8"),
	}
	if jwtToken != "" {
		reqOpts = append(reqOpts, testutils.WithHeader("Authorization", "Bearer "+jwtToken))
	}

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    RouteGroup + url,
		Body:   body,
	}, reqOpts...)
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	resBody, readErr := io.ReadAll(res.Body)
	s.Require().NoError(readErr)
	return res, resBody
}

// errorMessage достает поле error из json ответа.
func (s *handlerSuite) errorMessage(body []byte) string {
	var resp struct {
		Error string `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(body, &resp))
	return resp.Error
}
