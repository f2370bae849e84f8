package rekognition

import "errors"

var (
	// ErrInvalidImage indicates the frame bytes cannot be processed by Rekognition
	ErrInvalidImage = errors.New("invalid image for rekognition")

	// ErrInvalidCredentials indicates that AWS credentials are invalid or missing
	ErrInvalidCredentials = errors.New("invalid or missing AWS credentials")

	// ErrThrottled indicates the frame rate exceeded the Rekognition quota
	ErrThrottled = errors.New("rekognition request throttled")
)
