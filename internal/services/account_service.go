package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/internal/models/response_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/stripe"
	"eventgate/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	GetAccount(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error)
	ConnectStripeAccount(ctx context.Context, id uuid.UUID, request request_models.ConnectAccountRequest) error
}

type AccountService struct {
	userRepo repositories.UserRepository
	gateway  stripe.Gateway
}

func NewAccountService(userRepo repositories.UserRepository, gateway stripe.Gateway) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
		gateway:  gateway,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {

	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if user == nil {
		return "", utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {

	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "host",
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error) {
	user, err := a.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	return &response_models.AccountResponse{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               user.Email,
		StripeAccountID:     user.StripeAccountID,
		StripeAccountStatus: string(user.StripeAccountStatus),
		SubscriptionStatus:  user.SubscriptionStatus,
		TrialEndsAt:         user.TrialEndsAt,
	}, nil
}

// ConnectStripeAccount links a connected account to the host, reading the
// current capability flags from the gateway so the stored status starts out
// accurate instead of waiting for the first account.updated event.
func (a *AccountService) ConnectStripeAccount(ctx context.Context, id uuid.UUID, request request_models.ConnectAccountRequest) error {
	user, err := a.userRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	status := db_models.AccountStatusPending
	account, err := a.gateway.GetAccount(ctx, request.StripeAccountID)
	if err != nil {
		log.Printf("account: lookup of connected account %s failed: %v", request.StripeAccountID, err)
	} else {
		status = accountStatusFromProvider(account)
	}

	if err := a.userRepo.SetStripeAccount(ctx, id, request.StripeAccountID, status); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
