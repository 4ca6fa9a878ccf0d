package domain

// VectorConfig describes the offers vector field used by the no-results
// fallback. The embedding model must produce vectors of this size.
type VectorConfig struct {
	Model      string
	Dimensions int
}

// DefaultVectorConfig returns the configuration matching the offers index.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:      "text-embedding-3-small",
		Dimensions: 1536,
	}
}
