package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/domain"
)

var _ ports.ObjectStore = (*DiskStore)(nil)

// DiskStore grava os uploads em um diretório local (STORAGE_ENDPOINT vazio).
type DiskStore struct {
	root string
}

// NewDiskStore cria o diretório raiz se preciso.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de uploads: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") || clean == "/" {
		return "", domain.Errorf(domain.ErrInvalidInput, "Chave de arquivo inválida")
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *DiskStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("criar diretório: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("criar arquivo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("gravar arquivo: %w", err)
	}
	return f.Close()
}

func (s *DiskStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("abrir arquivo: %w", err)
	}
	return f, nil
}
