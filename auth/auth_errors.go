package auth

import apperrors "github.com/jrsteele09/wallet-admin-console/internal/errors"

var (
	ErrInvalidMobile        = apperrors.ErrInvalidMobile
	ErrInvalidMPIN          = apperrors.ErrInvalidMPIN
	ErrInvalidLoginResponse = apperrors.ErrInvalidLoginResponse
	ErrLoginRejected        = apperrors.ErrLoginRejected
)
