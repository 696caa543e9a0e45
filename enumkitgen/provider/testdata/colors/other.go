package colors

const Cyan Color = 10

const (
	_     Color = 11
	Black Color = -1
)
