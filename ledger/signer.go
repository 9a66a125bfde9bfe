package ledger

import (
	"context"
	"crypto/rsa"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/caiorlm/logichain/geo"
	"github.com/caiorlm/logichain/route"
	"github.com/caiorlm/logichain/signature"
)

// Config holds the ledger connection parameters.
type Config struct {
	// NetworkURL is the ledger submission endpoint.
	NetworkURL string
	// ContractAddress is the on-ledger contract the proof settles.
	ContractAddress string
}

// ProofSigner holds the signing keypair and ledger parameters. It is
// stateless across calls apart from the key material and never mutates
// a validator.
type ProofSigner struct {
	config    Config
	key       *rsa.PrivateKey
	endpoint  Endpoint
	publicPEM []byte
	log       *log.Entry
}

// NewProofSigner builds a signer from PEM key material. Malformed key
// material fails fast here, before any route exists to sign for.
func NewProofSigner(config Config, keyPEM []byte, endpoint Endpoint) (*ProofSigner, error) {
	key, err := signature.ParsePrivateKeyPEM(keyPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigning, err)
	}

	publicPEM, err := signature.MarshalPublicKeyPEM(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigning, err)
	}

	return &ProofSigner{
		config:    config,
		key:       key,
		endpoint:  endpoint,
		publicPEM: publicPEM,
		log:       log.WithField("ledger", config.NetworkURL),
	}, nil
}

// PublicKeyPEM returns the signer's public key in PEM form.
func (s *ProofSigner) PublicKeyPEM() []byte {
	return s.publicPEM
}

// SignPoint signs the canonical encoding of a single point, the same
// field set and encoding used for proof generation.
func (s *ProofSigner) SignPoint(point *geo.GeoPoint) ([]byte, error) {
	sig, err := signature.SignData(s.key, point.Canonical())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return sig, nil
}

// SubmitProof signs the validator's proof hash and hands the assembled
// payload to the ledger endpoint. The completion precondition is
// checked before any I/O; transport failures are returned without
// retry. Safe to call again after a failure: re-signing the same hash
// is idempotent.
func (s *ProofSigner) SubmitProof(ctx context.Context, validator *route.RouteValidator) (string, error) {
	if validator.Status() != route.StatusCompleted {
		return "", ErrValidation
	}

	proofHash := validator.ProofHash()
	if proofHash == "" {
		return "", ErrValidation
	}

	sig, err := signature.SignData(s.key, []byte(proofHash))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}

	payload := &SubmissionPayload{
		ContractID:      validator.ContractID(),
		ContractAddress: s.config.ContractAddress,
		ProofHash:       proofHash,
		Signature:       sig,
		PublicKey:       s.publicPEM,
		Points:          validator.Points(),
	}

	if err := s.endpoint.Accept(ctx, payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	s.log.WithField("contract", payload.ContractID).
		WithField("proof", proofHash).
		Debug("Submitted proof to ledger")

	return proofHash, nil
}
