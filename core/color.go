package core

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Lerp blends linearly from c to o; t is clamped to [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	t = Clamp(t, 0, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return Color{mix(c.R, o.R), mix(c.G, o.G), mix(c.B, o.B), mix(c.A, o.A)}
}

var (
	White = Color{255, 255, 255, 255}
	Clear = Color{0, 0, 0, 0}
)
