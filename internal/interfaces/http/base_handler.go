package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/importacao"
	"github.com/cordobafintech/cobranca-api/internal/application/usecase"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/metrics"
)

// BaseHandler upload e importação da base de devedores, mais as consultas da carteira.
type BaseHandler struct {
	imports  *importacao.UseCase
	carteira *usecase.CarteiraUseCase
	arquivos *usecase.ArquivoUseCase
}

// NewBaseHandler constrói o handler.
func NewBaseHandler(imports *importacao.UseCase, carteira *usecase.CarteiraUseCase, arquivos *usecase.ArquivoUseCase) *BaseHandler {
	return &BaseHandler{imports: imports, carteira: carteira, arquivos: arquivos}
}

var errNoFile = domain.Errorf(domain.ErrInvalidInput, "Arquivo não enviado")

// readUpload valida extensão e tamanho do campo multipart "file" e lê seu conteúdo.
func (h *BaseHandler) readUpload(c *fiber.Ctx) (importacao.Upload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return importacao.Upload{}, errNoFile
	}
	if err := h.imports.ValidateUpload(fh.Filename, fh.Size); err != nil {
		return importacao.Upload{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return importacao.Upload{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return importacao.Upload{}, err
	}
	return importacao.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

// Campos godoc
// @Summary      Campos aceitos na planilha
// @Tags         base
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.EstruturaCampos
// @Router       /base/campos [get]
func (h *BaseHandler) Campos(c *fiber.Ctx) error {
	return c.JSON(importacao.Estrutura())
}

// Preview godoc
// @Summary      Pré-visualizar importação
// @Tags         base
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file    true   "Planilha .csv ou .xlsx"
// @Param        tipo  query     string  false  "nova_base | atualizacao | incremental"
// @Success      200   {object}  dto.PreviewUpload
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Router       /base/upload/preview [post]
func (h *BaseHandler) Preview(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	up, err := h.readUpload(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.imports.Preview(c.UserContext(), GetUser(c), tenantID, c.Query("tipo"), up)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar importação de um preview
// @Tags         base
// @Produce      json
// @Security     BearerAuth
// @Param        preview_id    path   string  true   "ID do preview"
// @Param        sobrescrever  query  bool    false  "Atualiza clientes e contratos existentes"
// @Success      200  {object}  dto.ResultadoImportacao
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /base/upload/confirmar/{preview_id} [post]
func (h *BaseHandler) Confirm(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.imports.Confirm(c.UserContext(), GetUser(c), tenantID, c.Params("preview_id"), c.QueryBool("sobrescrever", false))
	if err != nil {
		return writeError(c, err)
	}
	recordImport(out)
	return c.JSON(out)
}

// Direct godoc
// @Summary      Importar planilha sem preview
// @Tags         base
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file          formData  file    true   "Planilha"
// @Param        tipo          query     string  false  "Tipo de importação"
// @Param        sobrescrever  query     bool    false  "Atualiza existentes"
// @Success      200  {object}  dto.ResultadoImportacao
// @Router       /base/upload/excel [post]
func (h *BaseHandler) Direct(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	up, err := h.readUpload(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.imports.Direct(c.UserContext(), GetUser(c), tenantID, c.Query("tipo"), c.QueryBool("sobrescrever", false), up)
	if err != nil {
		return writeError(c, err)
	}
	recordImport(out)
	return c.JSON(out)
}

func recordImport(r *dto.ResultadoImportacao) {
	if r != nil {
		metrics.RecordImport(r.Status, r.TotalLinhas)
	}
}

// Logs godoc
// @Summary      Histórico de importações
// @Tags         base
// @Produce      json
// @Security     BearerAuth
// @Param        pagina      query  int  false  "Página"        default(1)
// @Param        por_pagina  query  int  false  "Itens/página"  default(20)
// @Success      200  {object}  dto.ListaLogsImportacao
// @Router       /base/logs [get]
func (h *BaseHandler) Logs(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.imports.Logs(c.UserContext(), GetUser(c), tenantID, pageQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Log godoc
// @Summary      Detalhe de uma importação
// @Tags         base
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da importação"
// @Success      200  {object}  dto.ResultadoImportacao
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /base/logs/{id} [get]
func (h *BaseHandler) Log(c *fiber.Ctx) error {
	out, err := h.imports.Get(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Relatório PDF de uma importação
// @Tags         base
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da importação"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /base/logs/{id}/relatorio [get]
func (h *BaseHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.imports.Report(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Estatisticas godoc
// @Summary      Números gerais da base
// @Tags         base
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.EstatisticasBase
// @Router       /base/estatisticas [get]
func (h *BaseHandler) Estatisticas(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.carteira.Estatisticas(c.UserContext(), GetUser(c), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Clientes godoc
// @Summary      Clientes da base
// @Tags         base
// @Produce      json
// @Security     BearerAuth
// @Param        busca       query  string  false  "Nome ou CPF"
// @Param        pagina      query  int     false  "Página"        default(1)
// @Param        por_pagina  query  int     false  "Itens/página"  default(20)
// @Success      200  {object}  dto.ListaClientesBase
// @Router       /base/clientes [get]
func (h *BaseHandler) Clientes(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.carteira.Clientes(c.UserContext(), GetUser(c), tenantID, c.Query("busca"), pageQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Template godoc
// @Summary      Planilha modelo
// @Tags         base
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        formato  query  string  false  "xlsx | csv"  default(xlsx)
// @Success      200  {file}  binary
// @Router       /base/template [get]
func (h *BaseHandler) Template(c *fiber.Ctx) error {
	f, err := h.imports.Template(c.Query("formato"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Filename+`"`)
	return c.Send(f.Data)
}

// Upload godoc
// @Summary      Guardar arquivo bruto
// @Tags         base
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Arquivo"
// @Success      201   {object}  dto.ArquivoResponse
// @Router       /base/upload [post]
func (h *BaseHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, errNoFile)
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	out, err := h.arquivos.Upload(c.UserContext(), GetUser(c), fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Files godoc
// @Summary      Arquivos enviados
// @Tags         base
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ArquivoResponse
// @Router       /base/files [get]
func (h *BaseHandler) Files(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.arquivos.List(c.UserContext(), GetUser(c), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Baixar arquivo enviado
// @Tags         base
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        file_id  path  string  true  "ID do arquivo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /base/download/{file_id} [get]
func (h *BaseHandler) Download(c *fiber.Ctx) error {
	a, rc, err := h.arquivos.Download(c.UserContext(), GetUser(c), c.Params("file_id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, a.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+a.Nome+`"`)
	// fasthttp fecha o reader ao terminar o envio.
	return c.SendStream(rc, int(a.Tamanho))
}
