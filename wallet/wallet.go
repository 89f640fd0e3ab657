package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/scrypt"
)

var (
	ErrBadPassword  = errors.New("wallet: wrong password or corrupted file")
	ErrWalletExists = errors.New("wallet: file already exists")
	ErrBadKDFParams = errors.New("wallet: unsupported scrypt parameters")
)

// scrypt cost parameters written into every new wallet file.
const (
	defaultScryptN = 1 << 15
	maxScryptN     = 1 << 20
	scryptR        = 8
	scryptP        = 1
	keyLen         = 32
)

type WalletFile struct {
	Address string     `json:"address"`
	Crypto  CryptoJSON `json:"crypto"`
}

type CryptoJSON struct {
	Cipher     string `json:"cipher"`
	KDF        string `json:"kdf"`
	ScryptN    int    `json:"n"`
	Salt       string `json:"salt"`
	Ciphertext string `json:"ciphertext"` // nonce || sealed key, hex
}

// ------------------------------------------------------------
// AES-GCM helpers
// ------------------------------------------------------------

func deriveKey(pass string, salt []byte, n int) ([]byte, error) {
	return scrypt.Key([]byte(pass), salt, n, scryptR, scryptP, keyLen)
}

func seal(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

func open(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, ErrBadPassword
	}
	plain, err := gcm.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return nil, ErrBadPassword
	}
	return plain, nil
}

// ------------------------------------------------------------
// Create / load
// ------------------------------------------------------------

// Encrypt wraps an existing key into a wallet file structure.
func Encrypt(key *ecdsa.PrivateKey, pass string) (*WalletFile, error) {
	return encryptN(key, pass, defaultScryptN)
}

func encryptN(key *ecdsa.PrivateKey, pass string, n int) (*WalletFile, error) {
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	dk, err := deriveKey(pass, salt, n)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	sealed, err := seal(crypto.FromECDSA(key), dk)
	if err != nil {
		return nil, fmt.Errorf("encrypt key: %w", err)
	}

	return &WalletFile{
		Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		Crypto: CryptoJSON{
			Cipher:     "aes-256-gcm",
			KDF:        "scrypt",
			ScryptN:    n,
			Salt:       hex.EncodeToString(salt),
			Ciphertext: hex.EncodeToString(sealed),
		},
	}, nil
}

// Decrypt recovers the private key held by w.
func (w *WalletFile) Decrypt(pass string) (*ecdsa.PrivateKey, error) {
	salt, err := hex.DecodeString(w.Crypto.Salt)
	if err != nil {
		return nil, fmt.Errorf("wallet: bad salt: %w", err)
	}
	data, err := hex.DecodeString(w.Crypto.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("wallet: bad ciphertext: %w", err)
	}

	n := w.Crypto.ScryptN
	if n == 0 {
		n = defaultScryptN
	}
	if n < 2 || n > maxScryptN || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrBadKDFParams, n)
	}
	dk, err := deriveKey(pass, salt, n)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	raw, err := open(data, dk)
	if err != nil {
		return nil, err
	}

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("wallet: decode key: %w", err)
	}
	if !strings.EqualFold(crypto.PubkeyToAddress(key.PublicKey).Hex(), w.Address) {
		return nil, ErrBadPassword
	}
	return key, nil
}

// CreateWallet generates a fresh key and writes it encrypted to path.
// An existing file is never overwritten.
func CreateWallet(path, pass string) (*WalletFile, error) {
	return createWallet(path, pass, defaultScryptN)
}

func createWallet(path, pass string, n int) (*WalletFile, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrWalletExists, path)
	}

	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	w, err := encryptN(privateKey, pass, n)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, err
	}
	return w, nil
}

// LoadWallet reads and decrypts the wallet file at path.
func LoadWallet(path, pass string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}

	var w WalletFile
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse wallet %s: %w", path, err)
	}
	return w.Decrypt(pass)
}
