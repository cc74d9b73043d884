package paypal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Actions declares which capability groups are enabled. Disabled groups are
// never registered, so routed operations against them render the standard
// tool-not-available text instead of reaching the API.
type Actions struct {
	Orders        bool `yaml:"orders"`
	Invoices      bool `yaml:"invoices"`
	Transactions  bool `yaml:"transactions"`
	Catalog       bool `yaml:"catalog"`
	Subscriptions bool `yaml:"subscriptions"`
	Disputes      bool `yaml:"disputes"`
	Shipment      bool `yaml:"shipment"`
}

// actionsFile is the on-disk shape: a single top-level actions block.
type actionsFile struct {
	Actions Actions `yaml:"actions"`
}

// DefaultActions enables every capability group.
func DefaultActions() Actions {
	return Actions{
		Orders:        true,
		Invoices:      true,
		Transactions:  true,
		Catalog:       true,
		Subscriptions: true,
		Disputes:      true,
		Shipment:      true,
	}
}

// LoadActions reads and parses an actions YAML file.
func LoadActions(path string) (Actions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Actions{}, fmt.Errorf("read actions file: %w", err)
	}
	return ParseActions(data)
}

// ParseActions parses a raw actions YAML payload.
func ParseActions(data []byte) (Actions, error) {
	var f actionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Actions{}, fmt.Errorf("parse actions yaml: %w", err)
	}
	return f.Actions, nil
}
