package route

import (
	"errors"
)

// RouteConfig holds the validation parameters for one contract.
type RouteConfig struct {
	// ContractID identifies the contract this route fulfills.
	ContractID string `json:"contract_id"`
	// ToleranceRadius is the maximum allowed displacement in meters
	// between consecutive accepted points. Zero disables the check.
	ToleranceRadius float64 `json:"tolerance_radius"`
	// MaxError is the maximum allowed reported accuracy for a point
	// to be acceptable.
	MaxError float64 `json:"max_error"`
}

// Validate checks the config for usability.
func (c *RouteConfig) Validate() error {
	if c.ContractID == "" {
		return errors.New("contract id must be set")
	}
	if c.MaxError < 0 {
		return errors.New("max error cannot be negative")
	}
	if c.ToleranceRadius < 0 {
		return errors.New("tolerance radius cannot be negative")
	}
	return nil
}
