package users

import (
	"strings"
)

// RoleType is the console role reported by the wallet API for an admin
type RoleType string

const (
	RoleAdmin      RoleType = "ADMIN"
	RoleSuperAdmin RoleType = "SUPER_ADMIN"
	RoleSupport    RoleType = "SUPPORT"
)

// KYCStatus mirrors the KYC state strings the wallet API emits
type KYCStatus string

const (
	KYCPending  KYCStatus = "PENDING"
	KYCApproved KYCStatus = "APPROVED"
	KYCRejected KYCStatus = "REJECTED"
)

// Profile is the admin record returned alongside the token at login.
type Profile struct {
	ID            int64     `json:"id,omitempty"`            // Wallet API user id
	Name          string    `json:"name,omitempty"`          // Display name
	Mobile        string    `json:"mobile,omitempty"`        // Login mobile number
	Email         string    `json:"email,omitempty"`         // Contact email
	Role          RoleType  `json:"role,omitempty"`          // Console role, may be absent
	KYCStatus     KYCStatus `json:"kycStatus,omitempty"`     // KYC state of the admin's own wallet
	WalletBalance float64   `json:"walletBalance,omitempty"` // Balance of the admin's own wallet
	WalletFrozen  bool      `json:"walletFrozen,omitempty"`  // Whether the admin's own wallet is frozen
}

// Valid reports whether the profile identifies somebody.
func (p Profile) Valid() bool {
	return p.ID != 0 || strings.TrimSpace(p.Name) != "" || strings.TrimSpace(p.Mobile) != ""
}

// DisplayName returns the best available label for headers and menus.
func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	if p.Mobile != "" {
		return p.Mobile
	}
	return "Admin"
}

// Initials is used for the avatar in the page header
func (p Profile) Initials() string {
	fields := strings.Fields(p.DisplayName())
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.ToUpper(f[:1]))
		if b.Len() == 2 {
			break
		}
	}
	return b.String()
}

// IsSuperAdmin returns true if the admin has super admin privileges
func (p Profile) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}
