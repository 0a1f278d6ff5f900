package helpers

import "errors"

var (
	// ErrHashMismatch indicates content did not match its expected sha1.
	ErrHashMismatch = errors.New("sha1 mismatch")
	// ErrInvalidHash indicates an expected hash is not valid hex-encoded sha1.
	ErrInvalidHash = errors.New("hash is not a valid sha1 hash")
	// ErrTransferSizeMismatch indicates a download body had the wrong length.
	ErrTransferSizeMismatch = errors.New("downloaded file had wrong response size")
	// ErrSizeMismatch indicates final content had the wrong length after decompression.
	ErrSizeMismatch = errors.New("downloaded file had wrong raw size")
	// ErrInvalidPath indicates a manifest path escapes its destination root.
	ErrInvalidPath = errors.New("path is invalid")

	// ErrUnknownPlatform indicates the runtime catalog has no entry for this platform.
	ErrUnknownPlatform = errors.New("unknown platform")
	// ErrUnknownComponent indicates no runtime build exists for the platform+component pair.
	ErrUnknownComponent = errors.New("unknown component for platform")
	// ErrExecutableNotFound indicates no java binary exists at any known location.
	ErrExecutableNotFound = errors.New("unable to find java binary")

	// ErrUnknownPlaceholder indicates an argument template names an unsupported placeholder.
	ErrUnknownPlaceholder = errors.New("unsupported argument placeholder")
	// ErrLegacyArgumentsUnsupported indicates version metadata only carries
	// the pre-1.13 minecraftArguments string.
	ErrLegacyArgumentsUnsupported = errors.New("legacy minecraftArguments versions are unsupported")

	// ErrInstanceNotFound indicates no instance record exists for an id.
	ErrInstanceNotFound = errors.New("instance not found")
	// ErrInstanceExists indicates an instance record already exists for an id.
	ErrInstanceExists = errors.New("instance already exists")
	// ErrInvalidInstanceName indicates an instance name is not a safe path segment.
	ErrInvalidInstanceName = errors.New("invalid instance name")
	// ErrVersionNotFound indicates the version manifest lists no such version.
	ErrVersionNotFound = errors.New("version not found in manifest")

	// ErrLauncherDirEmpty indicates the launcher directory is unset.
	ErrLauncherDirEmpty = errors.New("launcher directory is empty")
	// ErrAnotherInstanceIsRunning indicates another launcher process holds the lock.
	ErrAnotherInstanceIsRunning = errors.New("another launcher is running")
)
