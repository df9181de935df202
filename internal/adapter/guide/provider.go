package guide

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"os"
	"strings"
)

//go:embed docs
var builtin embed.FS

var ErrInvalidGuidePath = errors.New("invalid guide filepath")

// Provider serves player guides from Root, or the built-in set when Root is empty.
type Provider struct {
	Root string
}

func (p Provider) Index(_ context.Context) ([]byte, error) {
	fsys, err := p.fsys()
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, "index.json")
}

func (p Provider) File(_ context.Context, path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" || !fs.ValidPath(path) {
		return nil, ErrInvalidGuidePath
	}
	fsys, err := p.fsys()
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, path)
}

func (p Provider) fsys() (fs.FS, error) {
	if p.Root == "" {
		return fs.Sub(builtin, "docs")
	}
	return os.DirFS(p.Root), nil
}
