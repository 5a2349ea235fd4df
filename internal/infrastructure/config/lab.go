package config

// LabConfig holds tuning knobs for the production engine
type LabConfig struct {
	// Cutoff below which post-production stock residues on the cyclic
	// resolution path are snapped to exactly 0
	ResidueEpsilon float64 `mapstructure:"residue_epsilon" validate:"min=0"`
}
