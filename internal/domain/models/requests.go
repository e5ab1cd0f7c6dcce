package models

// Requests for the dashboard HTTP endpoints. Defined in domain for
// consistency and reuse.

type SignalsRequest struct {
	Refresh bool `query:"refresh" json:"refresh" default:"false"`
}

type CredentialsRequest struct {
	AccessKey string `json:"access_key" validate:"required,min=1"`
	SecretKey string `json:"secret_key" validate:"required,min=1"`
}

type ScanRequest struct {
	Source string `json:"source" default:"dashboard" validate:"oneof=dashboard scheduler"`
}
