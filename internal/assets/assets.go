package assets

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// Web facing prefix on assets in static folder
const AssetPrefix string = "/static/"

// Assets serves files from a static directory on disk. The directory is
// also where the background image gets cached, so it is not embedded.
type Assets struct {
	dir string

	mu     sync.Mutex
	hashes map[string]fileHash
}

// fileHash is valid while the file keeps the same size and mtime.
type fileHash struct {
	size    int64
	modTime time.Time
	sum     [sha256.Size]byte
}

func New(dir string) *Assets {
	return &Assets{dir: dir, hashes: make(map[string]fileHash)}
}

func (a *Assets) HttpHandler(r chi.Router) {
	staticHandler := http.FileServer(http.Dir(a.dir))

	r.Group(func(r chi.Router) {
		r.Use(hideDotfiles)
		r.Use(versionedAssets)
		r.Get(AssetPrefix+"*", http.StripPrefix(AssetPrefix, staticHandler).ServeHTTP)
	})
}

func permCache(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "max-age=31536000")
		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// Unversioned files can be replaced in place (bg/bg.jpg on refetch)
func noCache(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// hideDotfiles keeps in-progress downloads (.bg.jpg.<rand>.tmp) private.
func hideDotfiles(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, seg := range strings.Split(r.URL.Path, "/") {
			if strings.HasPrefix(seg, ".") {
				http.NotFound(w, r)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// versionedAssets is Middleware that strips the version from an asset and
// marks it cacheable forever.
// Example: site.80b2c87c0b9a5af9.css forwards as site.css
func versionedAssets(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sections := strings.Split(r.URL.Path, ".")
		if len(sections) != 3 {
			noCache(next).ServeHTTP(w, r)
			return
		}

		r.URL.Path = strings.Join([]string{sections[0], sections[2]}, ".")
		permCache(next).ServeHTTP(w, r)
	})
}

// HashedPath takes the web facing path of an asset, and returns a hashed path
// to the asset. Missing files get an "x" version so the page still renders.
func (a *Assets) HashedPath(webPath string) string {
	trimmedPath := strings.TrimPrefix(webPath, AssetPrefix)
	ext := filepath.Ext(webPath)
	if ext == "" {
		return webPath
	}

	sum, err := a.hash(filepath.Join(a.dir, filepath.FromSlash(trimmedPath)))
	if err != nil {
		return fmt.Sprintf(AssetPrefix+"%v.x%v", strings.TrimSuffix(trimmedPath, ext), ext)
	}

	return fmt.Sprintf(AssetPrefix+"%v.%x%v", strings.TrimSuffix(trimmedPath, ext), sum, ext)
}

// hash returns the file's sha256, rereading it only when its size or mtime
// changed. A refetched background is a freshly written file renamed into
// place, so it always carries a new mtime.
func (a *Assets) hash(path string) ([sha256.Size]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return [sha256.Size]byte{}, err
	}

	a.mu.Lock()
	cached, ok := a.hashes[path]
	a.mu.Unlock()
	if ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.sum, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	sum := sha256.Sum256(data)

	a.mu.Lock()
	a.hashes[path] = fileHash{size: info.Size(), modTime: info.ModTime(), sum: sum}
	a.mu.Unlock()
	return sum, nil
}
