package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/repository"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// txRunner runs a function inside a database transaction. *database.Pool
// satisfies it.
type txRunner interface {
	Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// AuthService handles credential verification and password changes. Every
// decision about a temporary credential is made against a single probe
// instant taken at the top of the operation.
type AuthService struct {
	userRepo    repository.UserRepository
	resetRepo   repository.ResetRequestRepository
	db          txRunner
	jwtService  *auth.JWTService
	passwordCfg *auth.PasswordConfig
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	resetRepo repository.ResetRequestRepository,
	db txRunner,
	jwtService *auth.JWTService,
	passwordCfg *auth.PasswordConfig,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		db:          db,
		jwtService:  jwtService,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}
}

// Login verifies the submitted credentials and returns an access token.
//
// The identifier is resolved to an account first. If the account has an
// approved, unconsumed, unexpired reset request, the submitted password is
// checked against that temporary credential before the permanent one; a
// temporary match consumes the request and forces a password change. A
// permanent match while a valid temporary credential is outstanding is
// rejected with an explicit pointer to the temporary password. Every other
// failure collapses into the same generic credential error.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	now := s.now()

	identifier := models.ParseLoginIdentifier(req.Identifier)

	var user *models.User
	var err error
	if identifier.Kind == models.IdentifierEmail {
		user, err = s.userRepo.GetByEmail(ctx, identifier.Value)
	} else {
		user, err = s.userRepo.GetByNationalID(ctx, identifier.Value)
	}

	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth("login_failed", "0", req.Identifier, false, "unknown identifier")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Look for an outstanding temporary credential. Its absence is the
	// common case and not an error.
	resetReq, err := s.resetRepo.GetCurrentlyValidByUserID(ctx, user.ID, now)
	if err != nil && !utils.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get reset request: %w", err)
	}

	if resetReq != nil && resetReq.TempCredentialHash != nil && resetReq.TempCredentialSalt != nil {
		match, err := auth.VerifyPassword(req.Password, *resetReq.TempCredentialHash, *resetReq.TempCredentialSalt, s.passwordCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to verify temporary credential: %w", err)
		}

		if match {
			return s.loginWithTemporaryCredential(ctx, user, resetReq, now)
		}
	}

	match, err := auth.VerifyPassword(req.Password, user.PasswordHash, user.Salt, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !match {
		utils.LogAuth("login_failed", utils.FormatInt64(user.ID), user.Email, false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	// The permanent password is correct, but a minted temporary credential
	// takes precedence until it is consumed or expires.
	if resetReq != nil {
		utils.LogAuth("login_failed", utils.FormatInt64(user.ID), user.Email, false, "temporary credential outstanding")
		return nil, utils.NewConflictError(constants.MsgUseTemporaryPassword)
	}

	// The status gate applies only after identity and password are both
	// verified, so the error cannot be used to probe for accounts.
	if user.AccountStatus != models.StatusActive {
		utils.LogAuth("login_failed", utils.FormatInt64(user.ID), user.Email, false, "account not active")
		return nil, utils.NewAccountNotActiveError()
	}

	// A normal login invalidates any reset request still awaiting approval;
	// the owner has evidently recovered their password.
	if err := s.resetRepo.Supersede(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to supersede reset request: %w", err)
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	utils.LogAuth("login_success", utils.FormatInt64(user.ID), user.Email, true, "")

	return &models.LoginResponse{
		Token:                  token,
		ExpiresAt:              expiresAt,
		RequiresPasswordChange: user.RequiresPasswordChange,
		User:                   user.Sanitize(),
	}, nil
}

// loginWithTemporaryCredential consumes the matched reset request and issues
// a token. The consume is a conditional update; when two sessions race on
// the same credential, exactly one sees a row flip and the other gets the
// generic credential error. The account status gate is bypassed on this
// path so a locked-out user can complete their recovery.
func (s *AuthService) loginWithTemporaryCredential(ctx context.Context, user *models.User, resetReq *models.ResetRequest, now time.Time) (*models.LoginResponse, error) {
	if err := s.resetRepo.Consume(ctx, resetReq.ID, now); err != nil {
		if utils.IsInvalidCredentialsError(err) {
			utils.LogAuth("login_failed", utils.FormatInt64(user.ID), user.Email, false, "temporary credential already consumed")
		}
		return nil, err
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	utils.LogAuth("login_success", utils.FormatInt64(user.ID), user.Email, true, "temporary credential")

	return &models.LoginResponse{
		Token:                  token,
		ExpiresAt:              expiresAt,
		RequiresPasswordChange: true,
		User:                   user.Sanitize(),
	}, nil
}

// ChangePassword replaces the caller's permanent password. The current
// password may be either the permanent one or an outstanding temporary
// credential; in the latter case the reset request is consumed in the same
// transaction that installs the new password, so the credential cannot be
// replayed if the server dies between the two writes.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *models.ChangePasswordRequest) error {
	now := s.now()

	if req.NewPassword != req.ConfirmPassword {
		return utils.NewValidationError("confirm_password", constants.MsgPasswordsDoNotMatch)
	}
	if len(req.NewPassword) < constants.MinPasswordLength {
		return utils.NewValidationError("new_password", constants.MsgPasswordTooShort)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	match, err := auth.VerifyPassword(req.CurrentPassword, user.PasswordHash, user.Salt, s.passwordCfg)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	// When the permanent password does not match, the current password may
	// still be a valid temporary credential (a user changing their password
	// right after a reset login).
	var viaReset *models.ResetRequest
	if !match {
		resetReq, err := s.resetRepo.GetCurrentlyValidByUserID(ctx, userID, now)
		if err != nil {
			if utils.IsNotFoundError(err) {
				return utils.NewBadRequestError(constants.MsgCurrentPasswordIncorrect)
			}
			return fmt.Errorf("failed to get reset request: %w", err)
		}

		if resetReq.TempCredentialHash == nil || resetReq.TempCredentialSalt == nil {
			return utils.NewBadRequestError(constants.MsgCurrentPasswordIncorrect)
		}

		tempMatch, err := auth.VerifyPassword(req.CurrentPassword, *resetReq.TempCredentialHash, *resetReq.TempCredentialSalt, s.passwordCfg)
		if err != nil {
			return fmt.Errorf("failed to verify temporary credential: %w", err)
		}
		if !tempMatch {
			return utils.NewBadRequestError(constants.MsgCurrentPasswordIncorrect)
		}
		viaReset = resetReq
	}

	passwordHash, salt, err := auth.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if viaReset == nil {
		if err := s.userRepo.ChangePassword(ctx, userID, passwordHash, salt); err != nil {
			return err
		}
	} else {
		err := s.db.Transaction(ctx, func(tx *sql.Tx) error {
			if err := s.userRepo.ChangePasswordTx(ctx, tx, userID, passwordHash, salt); err != nil {
				return err
			}
			return s.resetRepo.ConsumeTx(ctx, tx, viaReset.ID, now)
		})
		if err != nil {
			if utils.IsInvalidCredentialsError(err) {
				// The credential was consumed by a racing session after we
				// verified it; the whole change rolls back.
				return utils.NewBadRequestError(constants.MsgCurrentPasswordIncorrect)
			}
			return err
		}
	}

	utils.LogAuth("password_changed", utils.FormatInt64(userID), user.Email, true, "")

	return nil
}
