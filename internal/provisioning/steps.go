package provisioning

// Criticality classifies how a step's failure affects the attempt.
type Criticality int

const (
	// Critical steps fail the whole attempt when they fail.
	Critical Criticality = iota
	// BestEffort steps have their failures logged and swallowed.
	BestEffort
)

// Step is one named shell script run inside the target instance.
type Step struct {
	Name        string
	Script      string
	Criticality Criticality
}
