package forms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MaxUsernameLength bounds the username field, counted in runes.
	MaxUsernameLength = 150

	// maxUploadBytes bounds the multipart body held in memory while parsing.
	maxUploadBytes = 5 << 20
)

// MsgPasswordMismatch is the form-level error for a failed confirmation.
const MsgPasswordMismatch = "Passwords do not match!"

// AccountReader defines the read operations the forms need for uniqueness
// checks and credential lookups.
type AccountReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.AccountDB, error)
}

// AccountWriter defines the write operation used to persist a validated
// account.
type AccountWriter interface {
	Save(ctx context.Context, account *models.AccountDB) error
}

// Upload carries one uploaded file out of a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RegistrationForm holds the raw registration fields as submitted.
type RegistrationForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Picture         *Upload
}

// ParseRegistrationForm reads a multipart registration POST into a
// RegistrationForm. The content type of an uploaded picture is sniffed from
// its bytes, not taken from the client's part header.
func ParseRegistrationForm(r *http.Request) (*RegistrationForm, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}

	form := &RegistrationForm{
		Username:        strings.TrimSpace(r.FormValue("username")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	file, header, err := r.FormFile("profile_picture")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}
		form.Picture = &Upload{
			Filename:    header.Filename,
			ContentType: http.DetectContentType(data),
			Data:        data,
		}
	case errors.Is(err, http.ErrMissingFile):
		// picture is optional
	default:
		return nil, err
	}

	return form, nil
}

// Validate applies the registration rules in order and collects every
// detectable failure. Uniqueness is checked through reader. The returned
// Errors is never nil; an Empty result means the form may be saved.
func (f *RegistrationForm) Validate(ctx context.Context, reader AccountReader) (*Errors, error) {
	verrs := NewErrors()

	switch {
	case f.Username == "":
		verrs.AddField("username", "This field is required.")
	case utf8.RuneCountInString(f.Username) > MaxUsernameLength:
		verrs.AddField("username", fmt.Sprintf("Ensure this value has at most %d characters.", MaxUsernameLength))
	default:
		existing, err := reader.GetByUsernameOrEmail(ctx, &f.Username, nil)
		if err != nil {
			logger.Log.Errorw("failed to check username uniqueness", "err", err)
			return nil, err
		}
		if existing != nil {
			verrs.AddField("username", "This username is already taken.")
		}
	}

	switch {
	case f.Email == "":
		verrs.AddField("email", "This field is required.")
	default:
		if _, err := mail.ParseAddress(f.Email); err != nil {
			verrs.AddField("email", "Enter a valid email address.")
			break
		}
		existing, err := reader.GetByUsernameOrEmail(ctx, nil, &f.Email)
		if err != nil {
			logger.Log.Errorw("failed to check email uniqueness", "err", err)
			return nil, err
		}
		if existing != nil {
			verrs.AddField("email", "This email is already taken.")
		}
	}

	if f.Picture != nil && !strings.HasPrefix(f.Picture.ContentType, "image/") {
		verrs.AddField("profile_picture", "Upload a valid image.")
	}

	if f.Password == "" {
		verrs.AddField("password", "This field is required.")
	}
	if f.ConfirmPassword == "" {
		verrs.AddField("confirm_password", "This field is required.")
	}
	if f.Password != "" && f.ConfirmPassword != "" && f.Password != f.ConfirmPassword {
		verrs.AddNonField(MsgPasswordMismatch)
	}

	return verrs, nil
}

// Save hashes the password, builds the account record and, when commit is
// true, persists it through writer. The constructed account is returned
// either way so a caller can keep shaping it before its own commit. The
// plaintext password is dropped as soon as the hash is computed.
func (f *RegistrationForm) Save(ctx context.Context, writer AccountWriter, picture string, commit bool) (*models.AccountDB, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	if picture == "" {
		picture = models.DefaultProfilePicture
	}

	account := &models.AccountDB{
		AccountID:      uuid.New(),
		Username:       f.Username,
		Email:          f.Email,
		PasswordHash:   string(hash),
		ProfilePicture: picture,
		IsActive:       true,
	}

	if commit {
		if err := writer.Save(ctx, account); err != nil {
			logger.Log.Errorw("failed to save account", "username", f.Username, "err", err)
			return nil, err
		}
	}

	return account, nil
}
