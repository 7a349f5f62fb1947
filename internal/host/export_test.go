package host

// OpenCommand exports openCommand for testing.
var OpenCommand = openCommand

// SetStart replaces the process starter used by Open.
func SetStart(h *OS, start func(name string, args ...string) error) {
	h.start = start
}
