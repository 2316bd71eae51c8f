package deployer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Deployment is the structured record persisted after a successful
// deployment.
type Deployment struct {
	ID              string    `json:"id"`
	Network         string    `json:"network"`
	ChainID         uint64    `json:"chain_id"`
	ContractAddress string    `json:"contract_address"`
	TxHash          string    `json:"tx_hash"`
	GasUsed         uint64    `json:"gas_used"`
	GasPriceGwei    float64   `json:"gas_price_gwei"`
	CostWei         string    `json:"cost_wei"`
	Timestamp       time.Time `json:"timestamp"`
}

func WriteRecord(path string, d *Deployment) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("couldn't encode deployment record: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("couldn't write deployment record to %s: %w", path, err)
	}
	return nil
}

func LoadRecord(path string) (*Deployment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read deployment record: %w", err)
	}
	var d Deployment
	if err := json.Unmarshal(content, &d); err != nil {
		return nil, fmt.Errorf("couldn't parse deployment record: %w", err)
	}
	return &d, nil
}
