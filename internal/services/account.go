package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/forms"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/sbilibin2017/gw-accounts/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrAccountDoesNotExist = errors.New("account does not exist")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)

// AccountGetter extends the forms reader with a lookup by id for the
// profile page.
type AccountGetter interface {
	forms.AccountReader
	GetByID(ctx context.Context, accountID uuid.UUID) (*models.AccountDB, error)
}

// PictureStore persists uploaded profile pictures.
type PictureStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Placeholder() string
}

// RegistrationPublisher announces created accounts.
type RegistrationPublisher interface {
	PublishRegistered(ctx context.Context, account *models.AccountDB)
}

// AccountService handles registration, authentication and profile reads.
type AccountService struct {
	reader AccountGetter
	writer forms.AccountWriter
	store  PictureStore
	events RegistrationPublisher
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(reader AccountGetter, writer forms.AccountWriter, store PictureStore, events RegistrationPublisher) *AccountService {
	return &AccountService{
		reader: reader,
		writer: writer,
		store:  store,
		events: events,
	}
}

// Register validates the form and creates the account. Validation failures
// come back in the returned Errors, which is never nil when err is nil; an
// error is only returned for infrastructure failures.
func (svc *AccountService) Register(ctx context.Context, form *forms.RegistrationForm) (*models.AccountDB, *forms.Errors, error) {
	verrs, err := form.Validate(ctx, svc.reader)
	if err != nil {
		return nil, nil, err
	}
	if !verrs.Empty() {
		return nil, verrs, nil
	}

	picture := svc.store.Placeholder()
	if form.Picture != nil {
		picture, err = svc.store.Upload(ctx, form.Picture.Filename, form.Picture.ContentType, form.Picture.Data)
		if err != nil {
			logger.Log.Errorw("failed to store profile picture", "err", err)
			return nil, nil, err
		}
	}

	account, err := form.Save(ctx, svc.writer, picture, true)
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			// lost the race against a concurrent registration: surface it
			// as the same field error a pre-check failure produces
			if strings.Contains(err.Error(), "email") {
				verrs.AddField("email", "This email is already taken.")
			} else {
				verrs.AddField("username", "This username is already taken.")
			}
			return nil, verrs, nil
		}
		return nil, nil, err
	}

	svc.events.PublishRegistered(ctx, account)

	return account, verrs, nil
}

// Authenticate verifies credentials and returns the account. Any failure,
// unknown username included, reports ErrInvalidCredentials.
func (svc *AccountService) Authenticate(ctx context.Context, username, password string) (*models.AccountDB, error) {
	account, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get account", "err", err)
		return nil, err
	}
	if account == nil || !account.IsActive {
		logger.Log.Infow("authentication failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("authentication failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

// Profile returns the account for the given id.
func (svc *AccountService) Profile(ctx context.Context, accountID uuid.UUID) (*models.AccountDB, error) {
	account, err := svc.reader.GetByID(ctx, accountID)
	if err != nil {
		logger.Log.Errorw("failed to get account", "account_id", accountID, "err", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountDoesNotExist
	}

	return account, nil
}
