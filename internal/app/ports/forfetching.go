package ports

import "context"

type ForFetching interface {
	// Fetch returns the body of url. Used for feed documents, sends no
	// special headers.
	Fetch(ctx context.Context, url string) ([]byte, error)
	// DownloadFile streams url into destPath (created or truncated)
	// identifying as a browser and returns the number of bytes
	// written. A failed transfer leaves whatever was written in place.
	DownloadFile(ctx context.Context, url, destPath string) (int64, error)
}
