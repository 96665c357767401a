package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"brdf-viewer/log"
	"brdf-viewer/shading"
)

var logger = log.New("scene")

var (
	// ErrUnsupportedFormat is returned for files whose extension has no loader.
	ErrUnsupportedFormat = errors.New("unsupported model format")

	// ErrNoModels is returned when a directory scan finds nothing to load.
	ErrNoModels = errors.New("no models found")
)

// LoadModel loads every mesh of the model file at path, choosing the loader by
// file extension.
func LoadModel(path string) ([]*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// HasExtension reports whether path ends in one of exts (case-insensitive).
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ScanDirectory lists the regular files in dir whose extension is in exts.
// Entries come back sorted by file name.
func ScanDirectory(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !HasExtension(e.Name(), exts) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// LoadObject loads one model file as a scene object with its own copy of
// params.
func LoadObject(path string, params shading.Params) (*Object, error) {
	meshes, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewObject(name, path, meshes, params), nil
}

// LoadDirectory loads every recognized model in dir, in scan order. Any load
// failure aborts the whole scan.
func LoadDirectory(dir string, exts []string, params shading.Params) ([]*Object, error) {
	paths, err := ScanDirectory(dir, exts)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoModels)
	}

	objects := make([]*Object, 0, len(paths))
	for i, path := range paths {
		obj, err := LoadObject(path, params)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		logger.Noticef("loading %s... done (index %d)", path, i+1)
		objects = append(objects, obj)
	}
	return objects, nil
}
