package qpcr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// MaybeOpenFromGoogleStorage opens path for sequential reading. Paths
// starting with gs:// are fetched via the storage client (which must be
// non-nil for such paths); anything else is treated as a local file. The
// returned size is the object or file size in bytes.
func MaybeOpenFromGoogleStorage(path string, client *storage.Client) (io.ReadCloser, int64, error) {
	if strings.HasPrefix(path, "gs://") {
		if client == nil {
			return nil, 0, fmt.Errorf("%s: a storage client is required for gs:// paths", path)
		}

		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, 0, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
		}
		bucketName := pathParts[0]
		objectName := pathParts[1]

		handle := client.Bucket(bucketName).Object(objectName)

		attrs, err := handle.Attrs(context.Background())
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		rdr, err := handle.NewReader(context.Background())
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		return rdr, attrs.Size, nil
	}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, 0, err
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, fstat.Size(), nil
}

// NeedsGoogleStorageClient reports whether any of the given paths will
// require a storage client to open.
func NeedsGoogleStorageClient(paths ...string) bool {
	for _, path := range paths {
		if strings.HasPrefix(path, "gs://") {
			return true
		}
	}

	return false
}
