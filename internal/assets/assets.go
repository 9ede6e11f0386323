// Package assets resolves viewer files through layered file systems: a disk
// directory chosen at startup over the shaders and textures built into the
// binary.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/logger"
)

//go:embed builtin
var builtin embed.FS

// ShaderDir is the directory shader sources are read from.
const ShaderDir = "shaders"

// Builtin returns the embedded assets.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "builtin")
	if err != nil {
		panic(err)
	}
	return sub
}

// Manager reads files from a stack of file systems. Layers are searched in
// reverse order (last added = highest priority). Manager implements
// fs.ReadFileFS so decoders can read through it.
type Manager struct {
	layers []fs.FS
	cache  *Cache
	mu     sync.RWMutex
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// NewDefault returns a manager over the builtin assets with dir layered on
// top when it is not empty.
func NewDefault(dir string) (*Manager, error) {
	m := NewManager()
	m.AddFS(Builtin())
	if dir != "" {
		if err := m.AddDir(dir); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddFS adds a layer.
func (m *Manager) AddFS(fsys fs.FS) {
	m.mu.Lock()
	m.layers = append(m.layers, fsys)
	m.mu.Unlock()
}

// AddDir adds a directory on disk as a layer.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("opening asset dir %s: not a directory", dir)
	}
	m.AddFS(os.DirFS(dir))
	logger.Debug("Asset directory added", zap.String("dir", dir))
	return nil
}

// Open implements fs.FS.
func (m *Manager) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		f, err := m.layers[i].Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements fs.ReadFileFS. Results are cached.
func (m *Manager) ReadFile(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.layers[i], name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
}

// ShaderSource returns the text of shaders/<name>. A missing or unreadable
// file is logged and yields "", which then fails to compile.
func (m *Manager) ShaderSource(name string) string {
	p := path.Join(ShaderDir, name)
	data, err := m.ReadFile(p)
	if err != nil {
		logger.Error("Failed to read shader source", zap.String("path", p), zap.Error(err))
		return ""
	}
	return string(data)
}

// Close logs cache statistics and drops all layers and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	hits, misses := m.cache.Stats()
	logger.Debug("Asset cache closed", zap.Int("hits", hits), zap.Int("misses", misses))

	m.layers = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
