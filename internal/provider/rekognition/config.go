package rekognition

// Config holds configuration for the AWS Rekognition frame oracle
type Config struct {
	// Region is the AWS region where Rekognition will be called (e.g., "us-east-1")
	Region string

	// PreviewSize is the side of the square preview guide, in preview
	// units. Rekognition reports bounding boxes as frame ratios; they are
	// scaled by this value so the liveness core sees preview coordinates.
	PreviewSize float64
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Region:      "us-east-1",
		PreviewSize: 325,
	}
}
