package model

import "time"

// Dynalist credential coordinates. The token is the only credential the
// application keeps; its presence is the sole authentication signal.
const (
	CredentialServiceDynalist = "dynalist"
	CredentialKeyToken        = "TOKEN"
)

// Credential holds a service credential key-value pair. Service identifies
// the external system ("dynalist"), and Key identifies the credential type
// within that service ("TOKEN").
type Credential struct {
	ID        int64
	Service   string
	Key       string
	Value     string
	UpdatedAt time.Time
}
