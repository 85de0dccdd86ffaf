// Package upload define o contrato de armazenamento de arquivos enviados.
package upload

import (
	"context"
	"io"
)

// FileStore grava o conteúdo sob o nome dado e devolve a URL pública
// que vai referenciada na Foto.
type FileStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (url string, err error)
}
