package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/utilkit/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Protector turns setting values into their at-rest form and back.
type Protector interface {
	// Init prepares key material. It must succeed before Protect or Unprotect are used.
	Init(ctx context.Context) error

	// Protect returns the at-rest form of plaintext.
	Protect(ctx context.Context, plaintext string) (string, error)

	// Unprotect reverses Protect.
	Unprotect(ctx context.Context, ciphertext string) (string, error)

	// Close releases resources held by the protector.
	Close() error
}

// ProtectorConfig selects and parameterises a Protector.
type ProtectorConfig struct {
	Kind      cryptoDomain.ProtectorKind
	KeyDir    string
	Salt      string
	KeeperURI string
}

// NewProtector builds the Protector named by cfg.Kind. Init is not called.
func NewProtector(cfg ProtectorConfig, kms KMSService) (Protector, error) {
	switch cfg.Kind {
	case cryptoDomain.ProtectorKeyFile, "":
		return NewKeyFileProtector(NewKeyFileStore(cfg.KeyDir), NewPasswordCipher(), cfg.Salt), nil
	case cryptoDomain.ProtectorKeeper:
		return NewKeeperProtector(kms, cfg.KeeperURI), nil
	default:
		return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedProtector, cfg.Kind)
	}
}

// KeyFileProtector encrypts values with PasswordCipher, using the key file line as the
// password and a configured salt.
//
// The line captured by Init stays sealed in a memguard.Enclave and is only opened into
// locked memory for the length of one Protect or Unprotect call. Every call also re-reads
// the key file and refuses to run once it was deleted or replaced, so nothing is ever
// encrypted with a key that no longer exists on disk.
type KeyFileProtector struct {
	store  *KeyFileStore
	cipher *PasswordCipher
	salt   string

	mu  sync.RWMutex
	key *memguard.Enclave
}

// NewKeyFileProtector creates a KeyFileProtector.
func NewKeyFileProtector(store *KeyFileStore, cipher *PasswordCipher, salt string) *KeyFileProtector {
	return &KeyFileProtector{store: store, cipher: cipher, salt: salt}
}

// Init creates the key file when missing and seals its line.
func (p *KeyFileProtector) Init(_ context.Context) error {
	key, _, err := p.store.EnsureKey()
	if err != nil {
		return err
	}

	buf, err := openKey(key)
	if err != nil {
		return err
	}
	_, err = p.cipher.encrypt("", buf.Bytes(), p.salt)
	buf.Destroy()
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.key = key
	p.mu.Unlock()
	return nil
}

// Protect encrypts plaintext.
func (p *KeyFileProtector) Protect(_ context.Context, plaintext string) (string, error) {
	buf, err := p.currentKey()
	if err != nil {
		return "", err
	}
	defer buf.Destroy()

	return p.cipher.encrypt(plaintext, buf.Bytes(), p.salt)
}

// Unprotect decrypts ciphertext.
func (p *KeyFileProtector) Unprotect(_ context.Context, ciphertext string) (string, error) {
	buf, err := p.currentKey()
	if err != nil {
		return "", err
	}
	defer buf.Destroy()

	return p.cipher.decrypt(ciphertext, buf.Bytes(), p.salt)
}

// Close forgets the sealed key.
func (p *KeyFileProtector) Close() error {
	p.mu.Lock()
	p.key = nil
	p.mu.Unlock()
	return nil
}

// Store returns the key file store backing the protector.
func (p *KeyFileProtector) Store() *KeyFileStore {
	return p.store
}

// currentKey opens the sealed key after checking the key file still holds it. The caller
// must Destroy the returned buffer.
func (p *KeyFileProtector) currentKey() (*memguard.LockedBuffer, error) {
	p.mu.RLock()
	sealed := p.key
	p.mu.RUnlock()
	if sealed == nil {
		return nil, cryptoDomain.ErrProtectorNotReady
	}

	onDisk, err := p.store.Load()
	if err != nil {
		return nil, err
	}
	current, err := openKey(onDisk)
	if err != nil {
		return nil, err
	}
	defer current.Destroy()

	buf, err := openKey(sealed)
	if err != nil {
		return nil, err
	}
	if !buf.EqualTo(current.Bytes()) {
		buf.Destroy()
		return nil, cryptoDomain.ErrKeyMaterialChanged
	}
	return buf, nil
}

func openKey(key *memguard.Enclave) (*memguard.LockedBuffer, error) {
	if key == nil {
		return nil, cryptoDomain.ErrInvalidKeyMaterial
	}
	buf, err := key.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open key enclave: %w", cryptoDomain.ErrCrypto, err)
	}
	return buf, nil
}

// KMSService opens secrets keepers from gocloud.dev URLs.
type KMSService interface {
	// OpenKeeper opens the keeper for keyURI.
	// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

type kmsService struct{}

// NewKMSService creates a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// KeeperProtector protects values with a secrets keeper so the key never leaves the KMS.
// Ciphertexts are the keeper output in standard Base64.
type KeeperProtector struct {
	kms KMSService
	uri string

	mu     sync.RWMutex
	keeper cryptoDomain.KMSKeeper
}

// NewKeeperProtector creates a KeeperProtector for keyURI.
func NewKeeperProtector(kms KMSService, keyURI string) *KeeperProtector {
	return &KeeperProtector{kms: kms, uri: keyURI}
}

// Init opens the keeper. Calling it again on a ready protector is a no-op.
func (p *KeeperProtector) Init(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.keeper != nil {
		return nil
	}
	if p.uri == "" {
		return fmt.Errorf("%w: keeper uri is required", cryptoDomain.ErrUnsupportedProtector)
	}

	keeper, err := p.kms.OpenKeeper(ctx, p.uri)
	if err != nil {
		return err
	}
	p.keeper = keeper
	return nil
}

// Protect encrypts plaintext with the keeper.
func (p *KeeperProtector) Protect(ctx context.Context, plaintext string) (string, error) {
	keeper, err := p.current()
	if err != nil {
		return "", err
	}

	ciphertext, err := keeper.Encrypt(ctx, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("%w: keeper encrypt: %w", cryptoDomain.ErrCrypto, err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Unprotect decrypts ciphertext with the keeper.
func (p *KeeperProtector) Unprotect(ctx context.Context, ciphertext string) (string, error) {
	keeper, err := p.current()
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", cryptoDomain.ErrInvalidCiphertext
	}

	plaintext, err := keeper.Decrypt(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", cryptoDomain.ErrDecryptionFailed, err)
	}
	defer cryptoDomain.Zero(plaintext)

	return string(plaintext), nil
}

// Close closes the keeper.
func (p *KeeperProtector) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.keeper == nil {
		return nil
	}
	err := p.keeper.Close()
	p.keeper = nil
	return err
}

func (p *KeeperProtector) current() (cryptoDomain.KMSKeeper, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.keeper == nil {
		return nil, cryptoDomain.ErrProtectorNotReady
	}
	return p.keeper, nil
}
