package rescache

import (
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// indexFileName names the file of a URI whose path is empty or a directory.
	indexFileName = "index"
	// tempPattern is the pattern of in-progress downloads next to their target.
	tempPattern = ".download-*"
)

// StoredResource describes one file of the disk cache.
type StoredResource struct {
	// Path is the absolute path of the file.
	Path string
	// Rel is the path relative to the cache root, slash separated.
	Rel     string
	Size    int64
	ModTime time.Time
}

// Store is the on-disk layout of the resource cache.
// Presence of a file is the index: no metadata is kept besides the files.
type Store struct {
	root string
}

// NewStore creates a store rooted at root, creating the directory if needed.
func NewStore(root string) (*Store, error) {
	cleanRoot := filepath.Clean(root)
	if err := os.MkdirAll(cleanRoot, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", cleanRoot)
	}
	return &Store{root: cleanRoot}, nil
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the deterministic location of uri below the root:
// <root>/<scheme>/<host>[/<port>]/<path>. URIs whose normalized path still
// escapes the host directory are rejected with ErrInvalidCachePath.
func (s *Store) Path(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrInvalidURI.Error()), "uri", uri)
	}
	host := strings.ToLower(u.Hostname())
	if u.Scheme == "" || host == "" || host == "." || host == ".." || strings.ContainsAny(host, `/\`) {
		return "", invalidCachePath(uri)
	}

	rel := strings.TrimPrefix(u.Path, "/")
	if strings.Contains(rel, `\`) {
		return "", invalidCachePath(uri)
	}
	isDir := rel == "" || strings.HasSuffix(rel, "/")
	cleaned := path.Clean(rel)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", invalidCachePath(uri)
	}
	if cleaned == "." {
		cleaned = ""
	}
	if isDir {
		cleaned = path.Join(cleaned, indexFileName)
	}
	if u.RawQuery != "" {
		cleaned += "_" + strconv.FormatUint(xxhash.Sum64String(u.RawQuery), 16)
	}

	parts := []string{s.root, u.Scheme, host}
	if port := u.Port(); port != "" {
		parts = append(parts, port)
	}
	parts = append(parts, filepath.FromSlash(cleaned))
	p := filepath.Join(parts...)

	within, err := filepath.Rel(s.root, p)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", invalidCachePath(uri)
	}
	return p, nil
}

func invalidCachePath(uri string) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidCachePath, "rejected URI"), "uri", uri)
}

// Exists reports whether a regular file is published at p.
func (s *Store) Exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Publish streams r into p. The content is written to a temporary file in the
// target directory and renamed into place, so readers never observe partial files.
func (s *Store) Publish(p string, r io.Reader) (int64, error) {
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", dir)
	}

	tmpFile, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmpFile, r)
	if err != nil {
		_ = tmpFile.Close()
		return n, zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	if err := tmpFile.Close(); err != nil {
		return n, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return n, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	if err := os.Rename(tmpName, p); err != nil {
		return n, zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", p)
	}
	return n, nil
}

// Digest returns the hex encoded BLAKE3 digest of the file at p.
func (s *Store) Digest(p string) (string, error) {
	//nolint:gosec // Path is derived from the cache root
	f, err := os.Open(p)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}
	defer func() { _ = f.Close() }()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// List returns every published file, sorted by relative path.
// Temporary files of in-flight downloads are skipped.
func (s *Store) List() ([]StoredResource, error) {
	var out []StoredResource
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".download-") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		out = append(out, StoredResource{
			Path:    p,
			Rel:     filepath.ToSlash(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rel < out[j].Rel })
	return out, nil
}

// Clear removes everything below the root and keeps the root itself.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrCacheEvictFailed.Error())
	}
	var errs []error
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return zerr.Wrap(err, domain.ErrCacheEvictFailed.Error())
	}
	return nil
}
