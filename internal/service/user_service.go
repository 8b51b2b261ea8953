package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/internal/service/tokens"
	"github.com/fsdevblog/groph-bank/pkg/uow"
)

const (
	JWTTokenExpire = 1 * time.Hour

	// accountNoBase начало нумерации счетов: номер счета = accountNoBase + id юзера.
	accountNoBase = 1_000_000_000
)

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	accountRepo    AccountRepository
	addressRepo    AddressRepository
	hasher         PasswordHasher
	jwtTokenSecret []byte
	admins         map[string]struct{}
}

// NewUserService создает сервис юзеров. Юзеры с именами из admins регистрируются с ролью администратора.
func NewUserService(
	u uow.UOW,
	hasher PasswordHasher,
	jwtTokenSecret []byte,
	admins []string,
) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr //nolint:wrapcheck
	}
	accountRepo, accErr := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if accErr != nil {
		return nil, accErr //nolint:wrapcheck
	}
	addressRepo, addrErr := uow.GetRepositoryAs[AddressRepository](u, uow.RepositoryName(repoargs.AddressRepoName))
	if addrErr != nil {
		return nil, addrErr //nolint:wrapcheck
	}

	adminSet := make(map[string]struct{}, len(admins))
	for _, name := range admins {
		adminSet[name] = struct{}{}
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		accountRepo:    accountRepo,
		addressRepo:    addressRepo,
		hasher:         hasher,
		jwtTokenSecret: jwtTokenSecret,
		admins:         adminSet,
	}, nil
}

type AddressArgs struct {
	Street     string
	City       string
	PostalCode int32
	Country    string
}

type RegisterUserArgs struct {
	Username    string
	Password    string
	Email       string
	FirstName   string
	LastName    string
	AccountType domain.AccountType
	BirthDate   *time.Time
	Gender      domain.GenderType
	Address     AddressArgs
}

// Profile данные юзера вместе со счетом и адресом.
type Profile struct {
	User    *domain.User
	Account *domain.Account
	Address *domain.Address
}

// Register создает юзера, его счет с нулевым балансом и адрес в одной транзакции. После успешного создания
// генерирует jwt token. Занятый юзернейм - domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*Profile, string, error) {
	password, hashErr := s.hasher.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", hashErr)
	}
	role := domain.RoleUser
	if _, ok := s.admins[args.Username]; ok {
		role = domain.RoleAdmin
	}

	var profile Profile
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		accountRepo, accErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accErr != nil {
			return accErr //nolint:wrapcheck
		}
		addressRepo, addrErr := uow.GetAs[AddressRepository](tx, uow.RepositoryName(repoargs.AddressRepoName))
		if addrErr != nil {
			return addrErr //nolint:wrapcheck
		}

		var err error
		profile.User, err = userRepo.CreateUser(c, repoargs.CreateUser{
			Username:  args.Username,
			Password:  password,
			Email:     args.Email,
			FirstName: args.FirstName,
			LastName:  args.LastName,
			Role:      role,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		profile.Account, err = accountRepo.Create(c, repoargs.CreateAccount{
			UserID:      profile.User.ID,
			AccountType: args.AccountType,
			AccountNo:   AccountNumber(profile.User.ID),
			BirthDate:   args.BirthDate,
			Gender:      args.Gender,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		profile.Address, err = addressRepo.Upsert(c, upsertAddressArgs(profile.User.ID, args.Address))
		return err //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", txErr)
	}

	token, tokenErr := tokens.GenerateUserJWT(profile.User.ID, profile.User.Role, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", tokenErr)
	}
	return &profile, token, nil
}

// Login проверяет пару юзернейм/пароль и выдает jwt token. Неизвестный юзер - domain.ErrRecordNotFound,
// неверный пароль - domain.ErrPasswordMissMatch.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindUserByUsername(ctx, username)
	if findErr != nil {
		return nil, "", fmt.Errorf("login: %w", findErr)
	}
	if !s.hasher.ComparePassword(password, user.Password) {
		return nil, "", fmt.Errorf("login: %w", domain.ErrPasswordMissMatch)
	}
	token, tokenErr := tokens.GenerateUserJWT(user.ID, user.Role, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("login: %w", tokenErr)
	}
	return user, token, nil
}

// GetProfile возвращает профиль юзера. Отсутствующий адрес не считается ошибкой.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	user, userErr := s.userRepo.FindUserByID(ctx, userID)
	if userErr != nil {
		return nil, fmt.Errorf("getting profile: %w", userErr)
	}
	account, accErr := s.accountRepo.GetByUserID(ctx, userID)
	if accErr != nil {
		return nil, fmt.Errorf("getting profile: %w", accErr)
	}
	address, addrErr := s.addressRepo.FindByUserID(ctx, userID)
	if addrErr != nil && !isNotFound(addrErr) {
		return nil, fmt.Errorf("getting profile: %w", addrErr)
	}
	return &Profile{User: user, Account: account, Address: address}, nil
}

type UpdateProfileArgs struct {
	Email     string
	FirstName string
	LastName  string
	Address   AddressArgs
}

// UpdateProfile перезаписывает контактные данные и адрес юзера в одной транзакции.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, args UpdateProfileArgs) (*Profile, error) {
	var profile Profile
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		addressRepo, addrErr := uow.GetAs[AddressRepository](tx, uow.RepositoryName(repoargs.AddressRepoName))
		if addrErr != nil {
			return addrErr //nolint:wrapcheck
		}

		var err error
		profile.User, err = userRepo.UpdateUser(c, userID, repoargs.UpdateUser{
			Email:     args.Email,
			FirstName: args.FirstName,
			LastName:  args.LastName,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}
		profile.Address, err = addressRepo.Upsert(c, upsertAddressArgs(userID, args.Address))
		return err //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("updating profile of user %d: %w", userID, txErr)
	}

	account, accErr := s.accountRepo.GetByUserID(ctx, userID)
	if accErr != nil {
		return nil, fmt.Errorf("updating profile of user %d: %w", userID, accErr)
	}
	profile.Account = account
	return &profile, nil
}

// ChangePassword меняет пароль после проверки текущего и кладет в outbox письмо о смене пароля.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, userErr := s.userRepo.FindUserByID(ctx, userID)
	if userErr != nil {
		return fmt.Errorf("changing password: %w", userErr)
	}
	if !s.hasher.ComparePassword(oldPassword, user.Password) {
		return fmt.Errorf("changing password: %w", domain.ErrPasswordMissMatch)
	}
	hashed, hashErr := s.hasher.HashPassword(newPassword)
	if hashErr != nil {
		return fmt.Errorf("changing password: %w", hashErr)
	}

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		if err := userRepo.UpdatePassword(c, userID, hashed); err != nil {
			return err //nolint:wrapcheck
		}
		return enqueueNotifications(c, tx, notice{userID: userID, template: domain.TemplatePasswordChanged})
	})
	if txErr != nil {
		return fmt.Errorf("changing password: %w", txErr)
	}
	return nil
}

// AccountNumber номер счета юзера: 10 цифр, accountNoBase + id.
func AccountNumber(userID int64) string {
	return fmt.Sprintf("%010d", accountNoBase+userID)
}

func upsertAddressArgs(userID int64, a AddressArgs) repoargs.UpsertAddress {
	return repoargs.UpsertAddress{
		UserID:     userID,
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}
