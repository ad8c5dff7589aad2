package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/config"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/repository"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// ResetService handles the admin-mediated password-reset workflow: a user
// files a request, an admin approves it, and the minted temporary credential
// is handed to the admin for out-of-band delivery.
type ResetService struct {
	userRepo    repository.UserRepository
	resetRepo   repository.ResetRequestRepository
	db          txRunner
	generator   *auth.CredentialGenerator
	passwordCfg *auth.PasswordConfig
	resetCfg    *config.ResetSettings
	now         func() time.Time
}

// NewResetService creates a new ResetService
func NewResetService(
	userRepo repository.UserRepository,
	resetRepo repository.ResetRequestRepository,
	db txRunner,
	generator *auth.CredentialGenerator,
	passwordCfg *auth.PasswordConfig,
	resetCfg *config.ResetSettings,
) *ResetService {
	return &ResetService{
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		db:          db,
		generator:   generator,
		passwordCfg: passwordCfg,
		resetCfg:    resetCfg,
		now:         time.Now,
	}
}

// Request files a reset request for the account matching both the national
// id and the email. When the pair matches no account, the call succeeds
// without writing anything, so the endpoint cannot be used to probe which
// identities exist. A conflict is only reported when the caller has already
// proven they know a real identity pair.
func (s *ResetService) Request(ctx context.Context, req *models.CreateResetRequest) error {
	now := s.now()

	nationalID := utils.NormalizeNationalID(req.NationalID)

	user, err := s.userRepo.GetByNationalID(ctx, nationalID)
	if err != nil {
		if utils.IsNotFoundError(err) {
			log.Info().Str("national_id", utils.MaskNationalID(nationalID)).Msg("Reset request for unknown national id ignored")
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !strings.EqualFold(user.Email, strings.TrimSpace(req.Email)) {
		log.Info().
			Int64("user_id", user.ID).
			Str("email", utils.MaskEmail(req.Email)).
			Msg("Reset request with mismatched email ignored")
		return nil
	}

	if _, err := s.resetRepo.GetActiveByUserID(ctx, user.ID, now); err == nil {
		return utils.NewConflictError(constants.MsgResetRequestPending)
	} else if !utils.IsNotFoundError(err) {
		return fmt.Errorf("failed to check active reset request: %w", err)
	}

	// An approved credential that expired unconsumed still occupies the
	// one-live-request slot; clear it so the new request can take its place.
	if err := s.resetRepo.DiscardExpired(ctx, user.ID, now); err != nil {
		return fmt.Errorf("failed to discard expired reset requests: %w", err)
	}

	request := &models.ResetRequest{UserID: user.ID}
	if err := s.resetRepo.Create(ctx, request); err != nil {
		// A racing request slipped in between the check and the insert.
		if utils.IsConflictError(err) {
			return utils.NewConflictError(constants.MsgResetRequestPending)
		}
		return err
	}

	utils.LogAuth("reset_requested", utils.FormatInt64(user.ID), user.Email, true, "")

	return nil
}

// ListPending returns every request still occupying a live slot, oldest
// first, joined with the owner's identity for the approval screen.
func (s *ResetService) ListPending(ctx context.Context) ([]*models.ResetRequestSummary, error) {
	return s.resetRepo.ListActive(ctx, s.now())
}

// Approve mints a temporary credential for the request and attaches its hash.
// The plaintext credential is returned to the approving admin exactly once;
// only the hash is stored. Approval is idempotent-hostile on purpose: a second
// approval of the same request fails with a conflict rather than minting a
// second credential.
func (s *ResetService) Approve(ctx context.Context, requestID, adminID int64) (*models.ApproveResetResponse, error) {
	now := s.now()

	request, err := s.resetRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.Active(now) {
		return nil, utils.NewConflictError(constants.MsgResetAlreadyApproved)
	}

	credential, err := s.generator.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary credential: %w", err)
	}

	credentialHash, credentialSalt, err := auth.HashPassword(credential, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash temporary credential: %w", err)
	}

	expiresAt := now.Add(s.resetCfg.TempCredentialExpiry)

	// Attach the credential and flag the account in one transaction. A
	// request approved without the flag, or with the flag write failed and
	// the plaintext already discarded, would leave the account stuck until
	// the credential expires.
	err = s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := s.resetRepo.ApproveTx(ctx, tx, requestID, adminID, credentialHash, credentialSalt, now, expiresAt); err != nil {
			return err
		}

		// The next permanent-password login after consuming the credential
		// must go through a password change.
		if err := s.userRepo.SetRequiresPasswordChangeTx(ctx, tx, request.UserID, true); err != nil {
			return fmt.Errorf("failed to flag password change: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogAuth("reset_approved", utils.FormatInt64(request.UserID), utils.FormatInt64(requestID), true, "")

	return &models.ApproveResetResponse{
		RequestID:  requestID,
		UserID:     request.UserID,
		Credential: credential,
		ExpiresAt:  expiresAt,
	}, nil
}

// CleanupDeadRequests permanently removes consumed, superseded and
// long-expired requests created before the cutoff.
func (s *ResetService) CleanupDeadRequests(ctx context.Context, before time.Time) (int64, error) {
	return s.resetRepo.PurgeDead(ctx, before)
}
