package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAuthStateChanged      = "identity.auth_state_changed"
	EventTypeAccountCreated        = "identity.account_created"
	EventTypeVerificationEmailSent = "identity.verification_email_sent"
)

type AuthStateChangedEvent struct {
	BaseEvent
	PrincipalID string `json:"principal_id"`
	Email       string `json:"email"`
	Verified    bool   `json:"verified"`
	SignedIn    bool   `json:"signed_in"`
}

func NewAuthStateChangedEvent(principalID, email string, verified, signedIn bool) *AuthStateChangedEvent {
	return &AuthStateChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAuthStateChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"principal_id": principalID,
				"email":        email,
				"verified":     verified,
				"signed_in":    signedIn,
			},
		},
		PrincipalID: principalID,
		Email:       email,
		Verified:    verified,
		SignedIn:    signedIn,
	}
}

type AccountCreatedEvent struct {
	BaseEvent
	PrincipalID string `json:"principal_id"`
	Email       string `json:"email"`
}

func NewAccountCreatedEvent(principalID, email string) *AccountCreatedEvent {
	return &AccountCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAccountCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"principal_id": principalID,
				"email":        email,
			},
		},
		PrincipalID: principalID,
		Email:       email,
	}
}

type VerificationEmailSentEvent struct {
	BaseEvent
	PrincipalID string `json:"principal_id"`
	Email       string `json:"email"`
	ReturnURL   string `json:"return_url"`
}

func NewVerificationEmailSentEvent(principalID, email, returnURL string) *VerificationEmailSentEvent {
	return &VerificationEmailSentEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeVerificationEmailSent,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"principal_id": principalID,
				"email":        email,
				"return_url":   returnURL,
			},
		},
		PrincipalID: principalID,
		Email:       email,
		ReturnURL:   returnURL,
	}
}
