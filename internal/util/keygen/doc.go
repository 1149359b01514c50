// Package keygen generates RSA key pairs for SSH authentication.
//
// The create flow uses it to mint the key pair a fresh container starts
// with: the private half is handed back to the caller, the public half is
// injected into the instance's authorized keys at creation time.
package keygen
