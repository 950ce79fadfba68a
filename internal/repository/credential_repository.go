package repository

import (
	"context"

	"github.com/stemsi/academic-portal/internal/flatfile"
	"github.com/stemsi/academic-portal/internal/model"
)

// Passwords are compared exactly as stored, surrounding spaces included.
var credentialOptions = flatfile.Options{KeepSpace: []string{"Password"}}

// CredentialRepository reads login pairs from the login export.
type CredentialRepository struct {
	source
}

// NewCredentialRepository creates a new CredentialRepository.
func NewCredentialRepository(path string) *CredentialRepository {
	return &CredentialRepository{source{path: path, opts: credentialOptions}}
}

// ListByID returns every credential row whose ID equals id. Duplicate IDs
// are kept so each stored password is considered.
func (r *CredentialRepository) ListByID(ctx context.Context, id string) ([]model.Credential, error) {
	table, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var creds []model.Credential
	for _, row := range table.Rows {
		if row.Get("ID") != id {
			continue
		}
		creds = append(creds, model.Credential{ID: row.Get("ID"), Password: row.Get("Password")})
	}
	return creds, nil
}
