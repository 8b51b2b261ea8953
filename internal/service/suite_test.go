package service

import (
	"context"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/internal/service/mocks"
	"github.com/fsdevblog/groph-bank/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-bank/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// repoSuite общая обвязка тестов сервисов: моки uow, транзакции и всех репозиториев.
type repoSuite struct {
	suite.Suite
	mockCtrl             *gomock.Controller
	mockUOW              *uowmocks.MockUOW
	mockTX               *uowmocks.MockTX
	mockUserRepo         *mocks.MockUserRepository
	mockAccountRepo      *mocks.MockAccountRepository
	mockAddressRepo      *mocks.MockAddressRepository
	mockTransactionRepo  *mocks.MockTransactionRepository
	mockNotificationRepo *mocks.MockNotificationRepository
}

func (s *repoSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockAccountRepo = mocks.NewMockAccountRepository(s.mockCtrl)
	s.mockAddressRepo = mocks.NewMockAddressRepository(s.mockCtrl)
	s.mockTransactionRepo = mocks.NewMockTransactionRepository(s.mockCtrl)
	s.mockNotificationRepo = mocks.NewMockNotificationRepository(s.mockCtrl)

	repos := map[repoargs.RepositoryName]uow.Repository{
		repoargs.UserRepoName:         s.mockUserRepo,
		repoargs.AccountRepoName:      s.mockAccountRepo,
		repoargs.AddressRepoName:      s.mockAddressRepo,
		repoargs.TransactionRepoName:  s.mockTransactionRepo,
		repoargs.NotificationRepoName: s.mockNotificationRepo,
	}
	for name, repo := range repos {
		// репозитории вне транзакции получаются при инициализации сервисов.
		s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(name)).Return(repo, nil).AnyTimes()
		s.mockTX.EXPECT().Get(uow.RepositoryName(name)).Return(repo, nil).AnyTimes()
	}
}

func (s *repoSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectTx ожидает ровно один вызов uow.Do. Ошибка fn возвращается как есть, имитируя откат.
func (s *repoSuite) expectTx() {
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
}

// expectNotifications ожидает постановку в outbox уведомлений с шаблонами templates в заданном порядке.
func (s *repoSuite) expectNotifications(templates ...domain.NotificationTemplate) *[]repoargs.CreateNotification {
	created := make([]repoargs.CreateNotification, 0, len(templates))
	calls := make([]*gomock.Call, 0, len(templates))
	for _, tpl := range templates {
		calls = append(calls, s.mockNotificationRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, args repoargs.CreateNotification) error {
				s.Equal(tpl, args.Template)
				s.NotEmpty(args.Subject)
				created = append(created, args)
				return nil
			}))
	}
	if len(calls) > 1 {
		gomock.InOrder(calls...)
	}
	return &created
}

// decimalMatcher сравнивает суммы по значению, а не по внутреннему представлению decimal.
type decimalMatcher struct {
	want decimal.Decimal
}

func decEq(v string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(v)}
}

func (d decimalMatcher) Matches(x any) bool {
	got, ok := x.(decimal.Decimal)
	return ok && got.Equal(d.want)
}

func (d decimalMatcher) String() string {
	return "is equal to decimal " + d.want.String()
}
