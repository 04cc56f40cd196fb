package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port interface.
// With a key, values are encrypted with AES-256-GCM before write and decrypted
// after read. Without a key, values are stored as plaintext and rows written
// encrypted cannot be read back.
type CredentialRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil stores plaintext.
}

// NewCredentialRepo creates a new CredentialRepo. key must be 32 bytes for
// AES-256-GCM, or nil to store values as plaintext.
func NewCredentialRepo(db *DB, key []byte) *CredentialRepo {
	return &CredentialRepo{db: db, key: key}
}

// Set stores or replaces the credential for the given service and key.
func (r *CredentialRepo) Set(ctx context.Context, service, key, plaintext string) error {
	value := plaintext
	encrypted := false
	if r.key != nil {
		sealed, err := r.encrypt(plaintext)
		if err != nil {
			return err
		}
		value = sealed
		encrypted = true
	}

	const query = `INSERT INTO credentials (service, key, value, encrypted, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (service, key) DO UPDATE SET
			value = excluded.value,
			encrypted = excluded.encrypted,
			updated_at = excluded.updated_at`
	_, err := r.db.Writer.ExecContext(ctx, query, service, key, value, encrypted)
	if err != nil {
		return fmt.Errorf("set credential %s/%s: %w", service, key, err)
	}
	return nil
}

// Get retrieves the plaintext credential for the given service and key.
// Returns ("", nil) if no credential exists.
func (r *CredentialRepo) Get(ctx context.Context, service, key string) (string, error) {
	const query = `SELECT value, encrypted FROM credentials WHERE service = ? AND key = ?`
	var stored string
	var encrypted bool
	err := r.db.Reader.QueryRowContext(ctx, query, service, key).Scan(&stored, &encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get credential %s/%s: %w", service, key, err)
	}

	plaintext, err := r.open(stored, encrypted)
	if err != nil {
		return "", fmt.Errorf("decrypt credential %s/%s: %w", service, key, err)
	}
	return plaintext, nil
}

// List returns all stored credentials with decrypted values.
func (r *CredentialRepo) List(ctx context.Context) ([]model.Credential, error) {
	const query = `SELECT id, service, key, value, encrypted, updated_at FROM credentials ORDER BY service, key`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var creds []model.Credential
	for rows.Next() {
		var cred model.Credential
		var stored, updatedAt string
		var encrypted bool
		if err := rows.Scan(&cred.ID, &cred.Service, &cred.Key, &stored, &encrypted, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}

		cred.Value, err = r.open(stored, encrypted)
		if err != nil {
			return nil, fmt.Errorf("decrypt credential %s/%s: %w", cred.Service, cred.Key, err)
		}

		cred.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at for credential %s/%s: %w", cred.Service, cred.Key, err)
		}

		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}

	return creds, nil
}

// open returns the plaintext of a stored value.
func (r *CredentialRepo) open(stored string, encrypted bool) (string, error) {
	if !encrypted {
		return stored, nil
	}
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}
	return r.decrypt(stored)
}

// aead builds the AES-256-GCM cipher for the repo key.
func (r *CredentialRepo) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return nil, fmt.Errorf("aes cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm mode: %w", err)
	}
	return gcm, nil
}

// encrypt seals plaintext and returns base64(nonce || ciphertext || tag).
func (r *CredentialRepo) encrypt(plaintext string) (string, error) {
	gcm, err := r.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// decrypt reverses encrypt.
func (r *CredentialRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	gcm, err := r.aead()
	if err != nil {
		return "", err
	}

	if len(data) < gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}

	nonce, sealed := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("open sealed value: %w", err)
	}
	return string(plaintext), nil
}
