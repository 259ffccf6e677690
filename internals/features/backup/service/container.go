// Package service implements the encrypted backup container. The byte
// layout is a cross-version restore contract:
//
//	[32B salt][16B IV][16B GCM auth tag][ciphertext]
//
// Key is SHA-256(password || salt); cipher is AES-256-GCM with a
// 16-byte nonce; the plaintext is a gzip-compressed JSON snapshot.
// Changing any of these breaks restore of old backups.
package service

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
)

const (
	saltLen = 32
	ivLen   = 16
	tagLen  = 16

	headerLen = saltLen + ivLen + tagLen
)

var (
	// ErrMalformed marks a container too short or structurally broken.
	ErrMalformed = errors.New("backup: malformed container")
	// ErrDecrypt marks a wrong password or tampered ciphertext; GCM
	// cannot tell the two apart.
	ErrDecrypt = errors.New("backup: decryption failed")
)

func deriveKey(password string, salt []byte) []byte {
	h := sha256.New()
	h.Write([]byte(password))
	h.Write(salt)
	return h.Sum(nil)
}

// Encode compresses and encrypts a JSON snapshot into container bytes.
func Encode(snapshot []byte, password string) ([]byte, error) {
	var zbuf bytes.Buffer
	zw := gzip.NewWriter(&zbuf)
	if _, err := zw.Write(snapshot); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	iv := make([]byte, ivLen)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return nil, err
	}

	// Seal appends the tag after the ciphertext; the container wants
	// it between the IV and the ciphertext.
	sealed := gcm.Seal(nil, iv, zbuf.Bytes(), nil)
	if len(sealed) < tagLen {
		return nil, ErrMalformed
	}
	ct := sealed[:len(sealed)-tagLen]
	tag := sealed[len(sealed)-tagLen:]

	out := make([]byte, 0, headerLen+len(ct))
	out = append(out, salt...)
	out = append(out, iv...)
	out = append(out, tag...)
	out = append(out, ct...)
	return out, nil
}

// Decode decrypts and decompresses container bytes back into the JSON
// snapshot.
func Decode(container []byte, password string) ([]byte, error) {
	if len(container) < headerLen {
		return nil, ErrMalformed
	}
	salt := container[:saltLen]
	iv := container[saltLen : saltLen+ivLen]
	tag := container[saltLen+ivLen : headerLen]
	ct := container[headerLen:]

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ct)+tagLen)
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plain, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrDecrypt
	}

	zr, err := gzip.NewReader(bytes.NewReader(plain))
	if err != nil {
		return nil, ErrMalformed
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, ErrMalformed
	}
	return out, nil
}
