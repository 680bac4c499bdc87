package configuration

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rand"
	"encoding/base64"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-homedir"
)

const (
	keySize    = 24
	keyPadding = '*'
)

var ErrMissingEncryptionKey = errors.New("Encryption key not provided!")

// Value is a configuration entry. The encryption only keeps passwords from being displayed in
// plaintext, it is not meant to resist attacks.
type Value struct {
	value         string
	encryptionKey string
}

// NewValue wraps value; encryptionKey may be empty when no encryption is needed.
func NewValue(value, encryptionKey string) Value {
	return Value{value: value, encryptionKey: encryptionKey}
}

func (v Value) String() string {
	return v.value
}

// FullPath returns absolute paths unchanged and resolves the others from the home directory.
func (v Value) FullPath() (string, error) {
	if filepath.IsAbs(v.value) {
		return v.value, nil
	}
	if strings.HasPrefix(v.value, "~") {
		return homedir.Expand(v.value)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "cannot find home folder")
	}
	return filepath.Join(home, v.value), nil
}

// FullPaths splits a `:` separated list and resolves every entry like FullPath.
func (v Value) FullPaths() ([]string, error) {
	parts := strings.Split(v.value, ":")
	paths := make([]string, 0, len(parts))
	for _, part := range parts {
		path, err := NewValue(part, "").FullPath()
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Encrypted returns the base64 encoded 3DES-CBC ciphertext of the value, prefixed by a random IV.
func (v Value) Encrypted() (string, error) {
	block, err := v.cipherBlock()
	if err != nil {
		return "", err
	}

	iv := make([]byte, block.BlockSize())
	if _, err := rand.Read(iv); err != nil {
		return "", errors.Wrap(err, "generate iv")
	}

	plaintext := pkcs7Pad([]byte(v.value), block.BlockSize())
	ciphertext := make([]byte, len(iv)+len(plaintext))
	copy(ciphertext, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext[len(iv):], plaintext)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypted reverses Encrypted.
func (v Value) Decrypted() (string, error) {
	block, err := v.cipherBlock()
	if err != nil {
		return "", err
	}

	encoded := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v.value)
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Wrap(err, "decode encrypted value")
	}

	size := block.BlockSize()
	if len(data) < 2*size || len(data)%size != 0 {
		return "", errors.Newf("encrypted value has invalid length %d", len(data))
	}

	iv, ciphertext := data[:size], data[size:]
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = pkcs7Unpad(plaintext, size)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func (v Value) cipherBlock() (cipher.Block, error) {
	if v.encryptionKey == "" {
		return nil, ErrMissingEncryptionKey
	}
	if len(v.encryptionKey) > keySize {
		return nil, errors.Newf("encryption key longer than %d bytes", keySize)
	}
	key := v.encryptionKey + strings.Repeat(string(keyPadding), keySize-len(v.encryptionKey))
	return des.NewTripleDESCipher([]byte(key))
}

func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > size || n > len(data) {
		return nil, errors.New("bad decrypt")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("bad decrypt")
		}
	}
	return data[:len(data)-n], nil
}
