package domain

// Key derivation and cipher parameters of the settings protection layer.
const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// IVSize is the AES block and CBC initialisation vector length in bytes.
	IVSize = 16

	// KDFIterations is the PBKDF2-HMAC-SHA1 iteration count.
	KDFIterations = 1000

	// MinSaltSize is the smallest accepted salt length in bytes.
	MinSaltSize = 8

	// KeyFileName is the name of the key material file inside the key directory.
	KeyFileName = ".key"
)

// ProtectorKind selects how setting values are protected at rest.
type ProtectorKind string

const (
	// ProtectorKeyFile encrypts with PasswordCipher keyed by the per-user key file.
	ProtectorKeyFile ProtectorKind = "keyfile"

	// ProtectorKeeper delegates to a gocloud.dev secrets keeper (OS or cloud KMS) so no key
	// material is visible to the application.
	ProtectorKeeper ProtectorKind = "keeper"
)

// IsValid reports whether k names a supported protector.
func (k ProtectorKind) IsValid() bool {
	return k == ProtectorKeyFile || k == ProtectorKeeper
}
