package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/argon2"
)

// File format constants
const (
	// magicHeader identifies keystore files
	magicHeader = "LOUP"
	// formatVersion is the current file format version
	formatVersion = byte(0x01)
	// saltLength is the length of the Argon2id salt
	saltLength = 16
	// nonceLength is the AES-GCM nonce length
	nonceLength = 12
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
)

// FileKeystore implements Keystore using encrypted file storage.
// Keys are stored in a JSON map encrypted with AES-256-GCM, with the
// encryption key derived from the master key via Argon2id.
type FileKeystore struct {
	path      string
	masterKey []byte
	mu        sync.RWMutex
}

// NewFileKeystore creates a new file-based keystore at the given path.
// The master key is derived from machine-specific data.
func NewFileKeystore(path string) (*FileKeystore, error) {
	return &FileKeystore{
		path:      path,
		masterKey: machineMasterKey(),
	}, nil
}

// NewFileKeystoreWithKey creates a keystore encrypted with the given master key.
func NewFileKeystoreWithKey(path string, masterKey []byte) (*FileKeystore, error) {
	if len(masterKey) == 0 {
		return nil, errors.New("empty master key")
	}
	return &FileKeystore{
		path:      path,
		masterKey: masterKey,
	}, nil
}

// Set stores a key-value pair.
func (f *FileKeystore) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.loadData()
	if err != nil {
		return err
	}

	data[name] = value
	return f.saveData(data)
}

// Get retrieves a value by name.
func (f *FileKeystore) Get(name string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.loadData()
	if err != nil {
		return "", err
	}

	value, ok := data[name]
	if !ok {
		return "", &ErrKeyNotFound{Name: name}
	}

	return value, nil
}

// Delete removes a key by name.
func (f *FileKeystore) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.loadData()
	if err != nil {
		return err
	}

	if _, ok := data[name]; !ok {
		return &ErrKeyNotFound{Name: name}
	}

	delete(data, name)
	return f.saveData(data)
}

// List returns all stored key names.
func (f *FileKeystore) List() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.loadData()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// loadData reads and decrypts the keystore file.
func (f *FileKeystore) loadData() (map[string]string, error) {
	data := make(map[string]string)

	ciphertext, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}

	if len(ciphertext) == 0 {
		return data, nil
	}

	plaintext, err := f.decrypt(ciphertext)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}

	return data, nil
}

// saveData encrypts and writes the keystore file.
func (f *FileKeystore) saveData(data map[string]string) error {
	// Ensure directory exists
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	ciphertext, err := f.encrypt(plaintext)
	if err != nil {
		return err
	}

	// Write with restrictive permissions (user only)
	return os.WriteFile(f.path, ciphertext, 0600)
}

// deriveKey derives an encryption key from the master key using Argon2id.
func deriveKey(masterKey, salt []byte) []byte {
	return argon2.IDKey(masterKey, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

// encrypt encrypts data using AES-256-GCM with Argon2id key derivation.
// Format: [magic (4)] [version (1)] [salt (16)] [nonce (12)] [ciphertext]
func (f *FileKeystore) encrypt(plaintext []byte) ([]byte, error) {
	// Generate random salt
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	key := deriveKey(f.masterKey, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	// Generate random nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Build output: magic + version + salt + nonce + ciphertext
	header := make([]byte, 0, len(magicHeader)+1+saltLength+nonceLength)
	header = append(header, []byte(magicHeader)...)
	header = append(header, formatVersion)
	header = append(header, salt...)
	header = append(header, nonce...)

	ciphertext := gcm.Seal(nil, nonce, plaintext, header)
	return append(header, ciphertext...), nil
}

// decrypt decrypts data using AES-256-GCM with Argon2id key derivation.
func (f *FileKeystore) decrypt(ciphertext []byte) ([]byte, error) {
	headerLen := len(magicHeader) + 1 + saltLength + nonceLength
	if len(ciphertext) < headerLen {
		return nil, errors.New("keystore file too short")
	}
	if string(ciphertext[:len(magicHeader)]) != magicHeader {
		return nil, errors.New("not a keystore file")
	}
	if ciphertext[len(magicHeader)] != formatVersion {
		return nil, errors.New("unsupported keystore version")
	}

	// Parse header
	offset := len(magicHeader) + 1 // Skip magic and version
	salt := ciphertext[offset : offset+saltLength]
	offset += saltLength
	nonce := ciphertext[offset : offset+nonceLength]
	offset += nonceLength
	encrypted := ciphertext[offset:]
	header := ciphertext[:offset]

	key := deriveKey(f.masterKey, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return gcm.Open(nil, nonce, encrypted, header)
}

// machineMasterKey creates a machine-specific master key.
// Uses hostname and user as entropy sources, hashed to 32 bytes.
// SECURITY NOTE: This is predictable; it protects against casual file
// reads, not against an attacker with local access.
func machineMasterKey() []byte {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	material := hostname + ":" + username + ":loupe-keystore"

	hash := sha256.Sum256([]byte(material))
	return hash[:]
}

// Ensure FileKeystore implements Keystore
var _ Keystore = (*FileKeystore)(nil)
