package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cordobafintech/cobranca-api/internal/application/access"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

const defaultFilesLimit = 200

// ArquivoUseCase upload bruto de arquivos para o armazenamento de objetos.
type ArquivoUseCase struct {
	repo     repository.ArquivoRepository
	store    ports.ObjectStore
	maxBytes int64
	now      func() time.Time
}

// NewArquivoUseCase constrói o caso de uso.
func NewArquivoUseCase(repo repository.ArquivoRepository, store ports.ObjectStore, maxBytes int64) *ArquivoUseCase {
	return &ArquivoUseCase{repo: repo, store: store, maxBytes: maxBytes, now: time.Now}
}

// Upload guarda o arquivo e registra seus metadados.
func (uc *ArquivoUseCase) Upload(ctx context.Context, actor *entity.User, filename, contentType string, size int64, r io.Reader) (*dto.ArquivoResponse, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx", ".xls":
	default:
		return nil, domain.Errorf(domain.ErrInvalidInput, "Formato inválido. Use CSV ou Excel (.csv, .xlsx, .xls)")
	}
	if size <= 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Arquivo está vazio")
	}
	if uc.maxBytes > 0 && size > uc.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id := uuid.NewString()
	a := &entity.Arquivo{
		ID:          id,
		TenantID:    actor.TenantID,
		UsuarioID:   actor.ID,
		Nome:        name,
		ObjectKey:   "uploads/" + id + "_" + name,
		Tamanho:     size,
		ContentType: contentType,
		CreatedAt:   uc.now(),
	}
	if err := uc.store.Put(ctx, a.ObjectKey, r, size, contentType); err != nil {
		return nil, fmt.Errorf("arquivo: armazenar: %w", err)
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toArquivoResponse(a), nil
}

// List devolve os uploads do escopo do usuário, mais recentes primeiro.
func (uc *ArquivoUseCase) List(ctx context.Context, actor *entity.User, requested *int64) ([]dto.ArquivoResponse, error) {
	list, err := uc.repo.List(ctx, access.ResolveScope(actor, requested).Filter(), defaultFilesLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArquivoResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toArquivoResponse(a))
	}
	return out, nil
}

// Download abre o conteúdo de um arquivo visível para o usuário. O chamador fecha o reader.
func (uc *ArquivoUseCase) Download(ctx context.Context, actor *entity.User, id string) (*entity.Arquivo, io.ReadCloser, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, domain.ErrFileNotFound
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if a == nil || !fileVisible(actor, a) {
		return nil, nil, domain.ErrFileNotFound
	}
	rc, err := uc.store.Get(ctx, a.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("arquivo: ler: %w", err)
	}
	return a, rc, nil
}

func fileVisible(actor *entity.User, a *entity.Arquivo) bool {
	if actor.IsDirector() {
		return true
	}
	if a.TenantID == nil {
		return a.UsuarioID == actor.ID
	}
	return actor.TenantID != nil && *actor.TenantID == *a.TenantID
}

func toArquivoResponse(a *entity.Arquivo) *dto.ArquivoResponse {
	return &dto.ArquivoResponse{
		FileID:      a.ID,
		Filename:    a.Nome,
		Size:        a.Tamanho,
		ContentType: a.ContentType,
		UploadedAt:  a.CreatedAt,
	}
}
