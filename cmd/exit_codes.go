package cmd

const (
	// Success is the same as EXIT_SUCCESS in C
	Success = iota

	// BadArgs passed to cli; not our fault.
	BadArgs

	// BadConfig means the config file did not load or validate.
	BadConfig

	// IOFailed means reading or writing one of the streams went wrong.
	IOFailed

	// UnknownError is a generic error code for everything else.
	UnknownError
)
