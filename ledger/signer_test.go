package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/caiorlm/logichain/geo"
	"github.com/caiorlm/logichain/route"
	"github.com/caiorlm/logichain/signature"
)

// countingEndpoint records every payload it accepts.
type countingEndpoint struct {
	calls    int
	payloads []*SubmissionPayload
	err      error
}

func (e *countingEndpoint) Accept(ctx context.Context, payload *SubmissionPayload) error {
	e.calls++
	e.payloads = append(e.payloads, payload)
	return e.err
}

func testKeyPEM(t *testing.T) []byte {
	t.Helper()
	key, err := signature.GenerateKey()
	require.NoError(t, err)
	return signature.MarshalPrivateKeyPEM(key)
}

func testSigner(t *testing.T, endpoint Endpoint) *ProofSigner {
	t.Helper()
	signer, err := NewProofSigner(Config{
		NetworkURL:      "http://ledger.test/proofs",
		ContractAddress: "0xcontract",
	}, testKeyPEM(t), endpoint)
	require.NoError(t, err)
	return signer
}

func floatPtr(v float64) *float64 {
	return &v
}

func completedValidator(t *testing.T) *route.RouteValidator {
	t.Helper()
	v, err := route.NewRouteValidator(route.RouteConfig{
		ContractID: "contract-1",
		MaxError:   10,
	})
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	for i := int64(0); i < 2; i++ {
		point := &geo.GeoPoint{
			Latitude:  1 + float64(i)*0.0001,
			Longitude: 1,
			Timestamp: now.Unix() + i,
			Accuracy:  floatPtr(5),
		}
		_, err := v.AddPoint(point, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	_, err = v.GenerateProof()
	require.NoError(t, err)
	return v
}

func TestNewProofSignerMalformedKey(t *testing.T) {
	_, err := NewProofSigner(Config{}, []byte("garbage"), &countingEndpoint{})
	require.ErrorIs(t, err, ErrSigning)
}

func TestSubmitProofPreconditions(t *testing.T) {
	endpoint := &countingEndpoint{}
	signer := testSigner(t, endpoint)

	v, err := route.NewRouteValidator(route.RouteConfig{
		ContractID: "contract-1",
		MaxError:   10,
	})
	require.NoError(t, err)

	_, err = signer.SubmitProof(context.Background(), v)
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, 0, endpoint.calls, "no network contact before a proof exists")
}

func TestSubmitProof(t *testing.T) {
	endpoint := &countingEndpoint{}
	signer := testSigner(t, endpoint)
	v := completedValidator(t)

	hash, err := signer.SubmitProof(context.Background(), v)
	require.NoError(t, err)
	require.Equal(t, v.ProofHash(), hash)
	require.Equal(t, 1, endpoint.calls)

	payload := endpoint.payloads[0]
	require.Equal(t, "contract-1", payload.ContractID)
	require.Equal(t, "0xcontract", payload.ContractAddress)
	require.Equal(t, hash, payload.ProofHash)
	require.Len(t, payload.Points, 2)
	require.Equal(t, signer.PublicKeyPEM(), payload.PublicKey)

	// The signature must verify over the proof hash bytes under the
	// held public key.
	pub, err := signature.ParsePublicKeyPEM(payload.PublicKey)
	require.NoError(t, err)
	require.NoError(t, signature.VerifyData(pub, []byte(hash), payload.Signature))
}

func TestSubmitProofNetworkError(t *testing.T) {
	endpoint := &countingEndpoint{err: errors.New("connection refused")}
	signer := testSigner(t, endpoint)
	v := completedValidator(t)

	_, err := signer.SubmitProof(context.Background(), v)
	require.ErrorIs(t, err, ErrNetwork)
	require.Equal(t, 1, endpoint.calls, "no retry inside the signer")

	// Submission is safely retryable: the proof is unchanged and
	// re-signing the same hash succeeds.
	endpoint.err = nil
	hash, err := signer.SubmitProof(context.Background(), v)
	require.NoError(t, err)
	require.Equal(t, v.ProofHash(), hash)
}

func TestSignPoint(t *testing.T) {
	signer := testSigner(t, &countingEndpoint{})

	point := &geo.GeoPoint{
		Latitude:  1,
		Longitude: 1,
		Timestamp: 1700000000,
		Accuracy:  floatPtr(5),
	}

	sig, err := signer.SignPoint(point)
	require.NoError(t, err)

	pub, err := signature.ParsePublicKeyPEM(signer.PublicKeyPEM())
	require.NoError(t, err)
	require.NoError(t, signature.VerifyData(pub, point.Canonical(), sig))

	// Speed must not affect the signed message.
	withSpeed := *point
	withSpeed.Speed = floatPtr(30)
	sig2, err := signer.SignPoint(&withSpeed)
	require.NoError(t, err)
	require.NoError(t, signature.VerifyData(pub, point.Canonical(), sig2))
}
