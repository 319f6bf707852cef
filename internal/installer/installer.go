package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/grokker-shim/internal/logger"
	"github.com/oshokin/grokker-shim/internal/platform"
	"github.com/oshokin/grokker-shim/internal/release"
)

const (
	// ExecutableMode is applied to installed binaries on non-Windows platforms.
	ExecutableMode os.FileMode = 0o755

	// createMode is the mode of a freshly created destination file before chmod.
	createMode os.FileMode = 0o644

	// dirMode is used when the target directory has to be created.
	dirMode os.FileMode = 0o755

	// progressThrottle limits how often the progress bar is redrawn.
	progressThrottle = 65 * time.Millisecond
)

var (
	// ErrTransport is returned when the download request or response body fails.
	ErrTransport = errors.New("download asset")
	// ErrWrite is returned when the destination file cannot be written.
	ErrWrite = errors.New("write binary")
	// ErrPermission is returned when the executable mode cannot be set.
	ErrPermission = errors.New("set executable permission")
	// ErrInvalidInput is returned for an empty binary name or download URL.
	ErrInvalidInput = errors.New("invalid install input")
)

// Binary is the installed file.
type Binary struct {
	// Path is targetDir/binaryName[.exe].
	Path string
	// Size is the number of bytes written.
	Size int64
	// Mode is the file mode after installation.
	Mode os.FileMode
}

// Installer downloads assets over HTTP and writes them to disk.
type Installer struct {
	// client performs the asset download.
	client *http.Client
	// progress receives the progress bar; nil disables it.
	progress io.Writer
	// userAgent is sent with the download request when set.
	userAgent string
	// chmod sets the executable mode; replaced in tests.
	chmod func(name string, mode os.FileMode) error
}

// Option configures an Installer.
type Option func(*Installer)

// WithProgress renders a byte progress bar into w.
func WithProgress(w io.Writer) Option {
	return func(i *Installer) {
		i.progress = w
	}
}

// WithUserAgent sets the User-Agent header of download requests.
func WithUserAgent(userAgent string) Option {
	return func(i *Installer) {
		i.userAgent = userAgent
	}
}

// New creates an Installer using client (nil means http.DefaultClient).
func New(client *http.Client, opts ...Option) *Installer {
	if client == nil {
		client = http.DefaultClient
	}

	i := &Installer{
		client: client,
		chmod:  os.Chmod,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Install downloads asset into targetDir under binaryName (plus ".exe" on Windows).
// It returns only after the stream is closed and, where required, the mode is set.
func (i *Installer) Install(
	ctx context.Context,
	asset release.Asset,
	targetDir, binaryName string,
	id platform.ID,
) (*Binary, error) {
	traits, err := id.RequireTraits()
	if err != nil {
		return nil, err
	}

	if binaryName == "" || asset.DownloadURL == "" {
		return nil, fmt.Errorf("binary name %q, url %q: %w", binaryName, asset.DownloadURL, ErrInvalidInput)
	}

	destination := filepath.Join(targetDir, id.BinaryFileName(binaryName))

	response, err := i.open(ctx, asset.DownloadURL)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if err = os.MkdirAll(targetDir, dirMode); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrWrite, targetDir, err)
	}

	logger.InfoKV(ctx, "Writing binary", "path", destination, "size", response.ContentLength)

	written, err := i.stream(response, destination, asset.Name)
	if err != nil {
		return nil, err
	}

	if traits.Executable {
		if err = i.chmod(destination, ExecutableMode); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPermission, destination, err)
		}
	}

	info, err := os.Stat(destination)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrWrite, destination, err)
	}

	return &Binary{
		Path: destination,
		Size: written,
		Mode: info.Mode(),
	}, nil
}

// open sends the download request and rejects non-2xx answers before anything is written.
func (i *Installer) open(ctx context.Context, downloadURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if i.userAgent != "" {
		req.Header.Set("User-Agent", i.userAgent)
	}

	req.Header.Set("Accept", "application/octet-stream")

	response, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		_ = response.Body.Close()

		return nil, fmt.Errorf("%w: %s: unexpected status %s", ErrTransport, downloadURL, response.Status)
	}

	return response, nil
}

// stream copies the response body into destination, truncating any previous file.
func (i *Installer) stream(response *http.Response, destination, assetName string) (int64, error) {
	file, err := os.OpenFile(filepath.Clean(destination), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, createMode)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %w", ErrWrite, destination, err)
	}

	var sink io.Writer = file

	var bar *progressbar.ProgressBar
	if i.progress != nil {
		bar = newProgressBar(i.progress, response.ContentLength, assetName)
		sink = io.MultiWriter(file, bar)
	}

	tracked := &trackingWriter{w: sink}

	written, err := io.Copy(tracked, response.Body)
	if err != nil {
		_ = file.Close()

		if tracked.err != nil {
			return written, fmt.Errorf("%w: %s: %w", ErrWrite, destination, tracked.err)
		}

		return written, fmt.Errorf("%w: read body after %d bytes: %w", ErrTransport, written, err)
	}

	if err = file.Close(); err != nil {
		return written, fmt.Errorf("%w: close %s: %w", ErrWrite, destination, err)
	}

	if response.ContentLength >= 0 && written != response.ContentLength {
		return written, fmt.Errorf("%w: got %d of %d bytes", ErrTransport, written, response.ContentLength)
	}

	if bar != nil {
		_ = bar.Finish()
	}

	return written, nil
}

func newProgressBar(w io.Writer, size int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(progressThrottle),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprint(w, "\n")
		}),
	)
}

// trackingWriter remembers the first write error so io.Copy failures can be
// split into filesystem and transport failures.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil && t.err == nil {
		t.err = err
	}

	return n, err
}
