package types

import "time"

// Provider identifies the infrastructure provider a VM was fetched from
type Provider string

const (
	ProviderAWS       Provider = "aws"
	ProviderSoftLayer Provider = "softlayer"
)

// Unknown is the placeholder used when a value could not be determined
const Unknown = "Unknown"

// VM represents a DevEnv virtual machine normalized across providers
type VM struct {
	Provider     Provider  `json:"provider" yaml:"provider"`
	ID           string    `json:"id" yaml:"id"`
	Hostname     string    `json:"hostname" yaml:"hostname"`
	IPAddress    string    `json:"ip" yaml:"ip"`
	Specs        string    `json:"specs" yaml:"specs"`
	State        string    `json:"state" yaml:"state"`
	Zone         string    `json:"zone,omitempty" yaml:"zone,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	CostPerHour  float64   `json:"cost_hr" yaml:"cost_hr"`
	CostAccrued  float64   `json:"cost_total" yaml:"cost_total"`
	RootPassword string    `json:"password,omitempty" yaml:"password,omitempty"` // SoftLayer only
}

// IsRunning returns true if the VM is running
func (v *VM) IsRunning() bool {
	return v.State == "running"
}

// HasPassword reports whether the provider exposed a root password for the VM
func (v *VM) HasPassword() bool {
	return v.RootPassword != ""
}
