package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// KeyPair is a freshly generated RSA key pair.
type KeyPair struct {
	// PrivateKey is PEM-encoded PKCS#1.
	PrivateKey []byte
	// PublicKey is a single OpenSSH authorized_keys line.
	PublicKey []byte
}

// GenerateRSAKeyPair generates an RSA key pair of the given bit size.
// 2048 is the floor for new keys; 4096 when the key will outlive the instance.
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}

	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate RSA private key: %w", err)
	}

	privBlock := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	sshPub, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	return &KeyPair{
		PrivateKey: pem.EncodeToMemory(&privBlock),
		PublicKey:  ssh.MarshalAuthorizedKey(sshPub),
	}, nil
}
