package ports

import "github.com/knockbot/knockbot/internal/domain"

// CredentialsLoader loads and validates posting credentials.
type CredentialsLoader interface {
	LoadCredentials(path string) (domain.Credentials, error)
}
