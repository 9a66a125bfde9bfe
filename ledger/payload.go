package ledger

import (
	"github.com/caiorlm/logichain/geo"
)

// SubmissionPayload is handed to the ledger endpoint for a completed
// route. Assembled at submission time and never persisted.
type SubmissionPayload struct {
	ContractID      string          `json:"contract_id"`
	ContractAddress string          `json:"contract_address"`
	ProofHash       string          `json:"proof_hash"`
	Signature       []byte          `json:"signature"`
	PublicKey       []byte          `json:"public_key"`
	Points          []*geo.GeoPoint `json:"points"`
}
