package rekognition

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
	"github.com/saturnino-fabrica-de-software/liva/internal/provider"
)

const (
	// maxImageSize is the maximum frame size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
	// minImageSize is the minimum frame size for valid processing
	minImageSize = 100

	errCodeAccessDenied     = "AccessDeniedException"
	errCodeInvalidImage     = "InvalidImageFormatException"
	errCodeImageTooLarge    = "ImageTooLargeException"
	errCodeThrottling       = "ThrottlingException"
	errCodeThroughputExceed = "ProvisionedThroughputExceededException"
)

// rekognitionAPI is the subset of the Rekognition client the oracle calls
type rekognitionAPI interface {
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
}

// Oracle implements provider.FrameOracle using AWS Rekognition DetectFaces.
// Rekognition reports one eyes-open attribute for the whole face, so both
// per-eye probabilities carry the same value.
type Oracle struct {
	api rekognitionAPI
	cfg Config
}

// Ensure Oracle implements provider.FrameOracle at compile time
var _ provider.FrameOracle = (*Oracle)(nil)

// New creates a Rekognition-backed frame oracle. It uses the AWS default
// credential chain to authenticate.
func New(ctx context.Context, cfg Config) (*Oracle, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Oracle{
		api: rekognition.NewFromConfig(awsCfg),
		cfg: cfg,
	}, nil
}

// validateImage checks if frame data is valid for Rekognition processing
func validateImage(image []byte) error {
	if len(image) == 0 {
		return ErrInvalidImage
	}
	if len(image) < minImageSize {
		return fmt.Errorf("%w: frame too small (%d bytes, minimum %d)", ErrInvalidImage, len(image), minImageSize)
	}
	if len(image) > maxImageSize {
		return fmt.Errorf("%w: frame too large (%d bytes, maximum %d)", ErrInvalidImage, len(image), maxImageSize)
	}
	return nil
}

// MeasureFaces analyzes one frame and returns a measurement per detected
// face, scaled to preview coordinates. An empty slice is not an error.
func (o *Oracle) MeasureFaces(ctx context.Context, image []byte) ([]domain.FaceMeasurement, error) {
	if err := validateImage(image); err != nil {
		return nil, err
	}

	input := &rekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: image,
		},
		Attributes: []types.Attribute{types.AttributeAll},
	}

	output, err := o.api.DetectFaces(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case errCodeAccessDenied:
				return nil, fmt.Errorf("detect faces: %w", ErrInvalidCredentials)
			case errCodeInvalidImage, errCodeImageTooLarge:
				return nil, fmt.Errorf("detect faces: %w", ErrInvalidImage)
			case errCodeThrottling, errCodeThroughputExceed:
				return nil, fmt.Errorf("detect faces: %w", ErrThrottled)
			}
		}
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	measurements := make([]domain.FaceMeasurement, 0, len(output.FaceDetails))
	for _, detail := range output.FaceDetails {
		measurements = append(measurements, o.toMeasurement(detail))
	}

	return measurements, nil
}

// toMeasurement converts one Rekognition face detail into the domain
// measurement the liveness core consumes.
func (o *Oracle) toMeasurement(detail types.FaceDetail) domain.FaceMeasurement {
	m := domain.FaceMeasurement{
		// Neutral fallbacks when Rekognition omits an attribute: eyes
		// open, not smiling, head level.
		LeftEyeOpenProbability:  1,
		RightEyeOpenProbability: 1,
	}

	if detail.BoundingBox != nil {
		m.Bounds = domain.Rect{
			MinX:   float64(aws.ToFloat32(detail.BoundingBox.Left)) * o.cfg.PreviewSize,
			MinY:   float64(aws.ToFloat32(detail.BoundingBox.Top)) * o.cfg.PreviewSize,
			Width:  float64(aws.ToFloat32(detail.BoundingBox.Width)) * o.cfg.PreviewSize,
			Height: float64(aws.ToFloat32(detail.BoundingBox.Height)) * o.cfg.PreviewSize,
		}
	}

	if detail.EyesOpen != nil {
		p := attributeProbability(detail.EyesOpen.Value, detail.EyesOpen.Confidence)
		m.LeftEyeOpenProbability = p
		m.RightEyeOpenProbability = p
	}

	if detail.Smile != nil {
		m.SmilingProbability = attributeProbability(detail.Smile.Value, detail.Smile.Confidence)
	}

	if detail.Pose != nil {
		m.YawAngle = float64(aws.ToFloat32(detail.Pose.Yaw))
		m.RollAngle = float64(aws.ToFloat32(detail.Pose.Roll))
	}

	return m
}

// attributeProbability folds Rekognition's boolean-plus-confidence
// attribute shape into a single probability that the attribute holds.
func attributeProbability(value bool, confidence *float32) float64 {
	if confidence == nil {
		// No confidence reported: treat the boolean as a coin flip.
		return 0.5
	}
	p := float64(*confidence) / 100
	if !value {
		p = 1 - p
	}
	return p
}
