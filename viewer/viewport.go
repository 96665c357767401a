package viewer

// Viewport is a rectangle in framebuffer pixels.
type Viewport struct {
	X, Y, Width, Height int
}

// Letterbox returns the largest viewport with the given aspect ratio that
// fits a width x height framebuffer, centered along the free axis.
func Letterbox(width, height int, aspect float32) Viewport {
	if width <= 0 || height <= 0 || aspect <= 0 {
		return Viewport{Width: max(width, 0), Height: max(height, 0)}
	}

	vw := float32(width)
	vh := vw / aspect
	if vh > float32(height) {
		vh = float32(height)
		vw = vh * aspect
		return Viewport{
			X:      int((float32(width) - vw) / 2),
			Width:  int(vw + 0.5),
			Height: height,
		}
	}
	return Viewport{
		Y:      int((float32(height) - vh) / 2),
		Width:  width,
		Height: int(vh + 0.5),
	}
}
