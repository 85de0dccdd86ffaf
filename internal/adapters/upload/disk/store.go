// Package disk grava uploads no filesystem local e devolve o caminho
// público servido pelo router em /uploads.
package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	dir     string
	baseURL string
}

// NewStore garante que o diretório existe antes de aceitar gravações.
func NewStore(dir, baseURL string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload dir vazio")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("criando upload dir: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Dir expõe o diretório para o router montar o file server.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	// filename vem gerado pelo handler; Base previne path traversal.
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." {
		return "", errors.New("nome de arquivo inválido")
	}

	dst, err := os.OpenFile(filepath.Join(s.dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("criando arquivo: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("gravando arquivo: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	return s.baseURL + "/" + filename, nil
}
