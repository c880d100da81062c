package model

import "time"

// Identity is the authenticated caller extracted from a bearer token
type Identity struct {
	Subject   string
	Name      string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

type RevokeResponse struct {
	Revoked bool `json:"revoked"`
}
