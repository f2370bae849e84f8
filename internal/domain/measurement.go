package domain

// FaceMeasurement is one frame's worth of oracle output for a single
// detected face. Probabilities are in [0,1]. Angles are in degrees:
// negative yaw means the head is turned left, roll is the sideways tilt.
type FaceMeasurement struct {
	Bounds                  Rect    `json:"bounds"`
	LeftEyeOpenProbability  float64 `json:"left_eye_open_probability"`
	RightEyeOpenProbability float64 `json:"right_eye_open_probability"`
	SmilingProbability      float64 `json:"smiling_probability"`
	YawAngle                float64 `json:"yaw_angle"`
	RollAngle               float64 `json:"roll_angle"`
}
