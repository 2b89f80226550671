package mathutil

import "math"

// RotX returns a rotation around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a rotation around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Orientation builds the view rotation for a yaw (around Y) followed by a
// pitch (around X), both in degrees.
func Orientation(pitchDeg, yawDeg float64) Mat3 {
	return Mat3Mul(RotX(Deg2Rad(pitchDeg)), RotY(Deg2Rad(yawDeg)))
}
