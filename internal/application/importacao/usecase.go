package importacao

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cordobafintech/cobranca-api/internal/application/access"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

const (
	maxErrosResultado = 100
	maxNomePreview    = 50
	templateSheet     = "Devedores"
)

// Status de validação de uma linha no preview.
const (
	LinhaErro      = "erro"
	LinhaDuplicado = "duplicado"
	LinhaAtualizar = "atualizar"
	LinhaNovo      = "novo"
)

// Ações previstas para uma linha no preview.
const (
	AcaoCriar     = "criar"
	AcaoAtualizar = "atualizar"
	AcaoIgnorar   = "ignorar"
)

// Config limites do upload.
type Config struct {
	MaxBytes       int64
	PreviewTTL     time.Duration
	MaxPreviewRows int
}

// Deps dependências do caso de uso. Store é opcional: sem ele o arquivo original não é arquivado.
type Deps struct {
	Reader      ports.SheetReader
	Writer      ports.SheetWriter
	Previews    ports.PreviewStore
	Store       ports.ObjectStore
	Reports     ports.ReportGenerator
	Clientes    repository.ClienteRepository
	Importacoes repository.ImportacaoRepository
	Tenants     repository.TenantRepository
	Tx          repository.TxRunner
}

// Upload arquivo recebido do cliente.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UseCase upload e importação de bases de devedores.
type UseCase struct {
	deps Deps
	cfg  Config
	log  zerolog.Logger
	now  func() time.Time
}

// New constrói o caso de uso.
func New(deps Deps, cfg Config, log zerolog.Logger) *UseCase {
	if cfg.MaxPreviewRows <= 0 {
		cfg.MaxPreviewRows = 100
	}
	if cfg.PreviewTTL <= 0 {
		cfg.PreviewTTL = 30 * time.Minute
	}
	return &UseCase{deps: deps, cfg: cfg, log: log, now: time.Now}
}

// ValidateUpload confere extensão e tamanho antes de ler o arquivo.
func (uc *UseCase) ValidateUpload(filename string, size int64) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx", ".xls":
	default:
		return domain.Errorf(domain.ErrInvalidInput, "Formato inválido. Use CSV ou Excel (.csv, .xlsx, .xls)")
	}
	if size == 0 {
		return domain.Errorf(domain.ErrInvalidInput, "Arquivo está vazio")
	}
	if uc.cfg.MaxBytes > 0 && size > uc.cfg.MaxBytes {
		return domain.ErrFileTooLarge
	}
	return nil
}

func (uc *UseCase) readSheet(up Upload) (*ports.Sheet, *ColumnMap, error) {
	if err := uc.ValidateUpload(up.Filename, int64(len(up.Data))); err != nil {
		return nil, nil, err
	}
	sheet, err := uc.deps.Reader.Read(up.Filename, up.Data)
	if err != nil {
		return nil, nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, nil, domain.Errorf(domain.ErrInvalidInput, "Arquivo está vazio")
	}
	cols, err := MapColumns(sheet.Headers)
	if err != nil {
		return nil, nil, err
	}
	return sheet, cols, nil
}

func normalizeTipo(tipo string) (string, error) {
	tipo = strings.ToLower(strings.TrimSpace(tipo))
	if tipo == "" {
		return entity.ImportIncremental, nil
	}
	if !entity.ValidImportType(tipo) {
		return "", domain.Errorf(domain.ErrInvalidInput, "Tipo de importação inválido: %s", tipo)
	}
	return tipo, nil
}

// archive guarda o arquivo original no object store; falha só gera aviso.
func (uc *UseCase) archive(ctx context.Context, tenantID int64, up Upload) string {
	if uc.deps.Store == nil {
		return ""
	}
	key := fmt.Sprintf("imports/%d/%s_%s", tenantID, uuid.NewString(), filepath.Base(up.Filename))
	ct := up.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	if err := uc.deps.Store.Put(ctx, key, bytes.NewReader(up.Data), int64(len(up.Data)), ct); err != nil {
		uc.log.Warn().Err(err).Str("arquivo", up.Filename).Msg("não foi possível arquivar o upload")
		return ""
	}
	return key
}

// ── Preview ───────────────────────────────────────────────────────────────────

// row linha do arquivo já interpretada.
type row struct {
	linha      int
	cpfRaw     string
	cpf        string
	cpfOK      bool
	nome       string
	valor      decimal.Decimal
	valorOK    bool
	vencimento time.Time
	vencOK     bool
}

// parseRow interpreta a linha idx (0 = primeira linha de dados, linha 2 do arquivo).
func parseRow(cols *ColumnMap, cells []string, idx int) row {
	r := row{linha: idx + 2, cpfRaw: cols.Value(cells, "cpf"), nome: cols.Value(cells, "nome")}
	r.cpf, r.cpfOK = ParseCPF(r.cpfRaw)
	r.valor, r.valorOK = ParseMoney(cols.Value(cells, "valor"))
	r.vencimento, r.vencOK = ParseDate(cols.Value(cells, "vencimento"))
	return r
}

func (r row) erros() []string {
	var out []string
	if !r.cpfOK {
		out = append(out, "CPF inválido")
	}
	if r.nome == "" {
		out = append(out, "Nome obrigatório")
	}
	if !r.valorOK || !r.valor.IsPositive() {
		out = append(out, "Valor deve ser maior que zero")
	}
	if !r.vencOK {
		out = append(out, "Data de vencimento inválida")
	}
	return out
}

func (r row) valid() bool { return len(r.erros()) == 0 }

// Preview analisa o arquivo sem gravar nada na carteira e guarda o resultado para confirmação.
func (uc *UseCase) Preview(ctx context.Context, actor *entity.User, requested *int64, tipo string, up Upload) (*dto.PreviewUpload, error) {
	tenantID, err := access.OperatingTenant(actor, requested)
	if err != nil {
		return nil, err
	}
	tipo, err = normalizeTipo(tipo)
	if err != nil {
		return nil, err
	}
	sheet, cols, err := uc.readSheet(up)
	if err != nil {
		return nil, err
	}

	rows := make([]row, len(sheet.Rows))
	cpfs := make([]string, 0, len(sheet.Rows))
	for i, cells := range sheet.Rows {
		rows[i] = parseRow(cols, cells, i)
		if rows[i].cpfOK {
			cpfs = append(cpfs, rows[i].cpf)
		}
	}
	existentes, err := uc.deps.Clientes.FindIDsByCPF(ctx, tenantID, cpfs)
	if err != nil {
		return nil, fmt.Errorf("importacao: clientes existentes: %w", err)
	}

	now := uc.now()
	out := &dto.PreviewUpload{
		PreviewID:          uuid.NewString(),
		Arquivo:            up.Filename,
		TipoImportacao:     tipo,
		TotalLinhas:        len(rows),
		Preview:            make([]dto.LinhaPreview, 0, min(len(rows), uc.cfg.MaxPreviewRows)),
		ColunasEncontradas: append([]string(nil), sheet.Headers...),
		ColunasMapeadas:    cols.Headers(),
		ExpiraEm:           now.Add(uc.cfg.PreviewTTL),
	}

	vistos := map[string]int{}
	for i, r := range rows {
		erros := r.erros()
		linha := dto.LinhaPreview{Linha: r.linha, Erros: erros}

		key := r.cpf
		primeira, duplicado := vistos[key]
		switch {
		case key != "" && duplicado:
			linha.StatusValidacao, linha.Acao = LinhaDuplicado, AcaoIgnorar
			linha.Erros = append(linha.Erros, fmt.Sprintf("CPF duplicado no arquivo (linha %d)", primeira))
			out.Duplicados++
		case len(erros) > 0:
			linha.StatusValidacao, linha.Acao = LinhaErro, AcaoIgnorar
			out.LinhasInvalidas++
		default:
			if _, ok := existentes[r.cpf]; ok {
				linha.StatusValidacao, linha.Acao = LinhaAtualizar, AcaoAtualizar
				out.Atualizacoes++
			} else {
				linha.StatusValidacao, linha.Acao = LinhaNovo, AcaoCriar
				out.NovosClientes++
			}
		}
		if key != "" && !duplicado {
			vistos[key] = r.linha
		}

		if i >= uc.cfg.MaxPreviewRows {
			continue
		}
		if linha.Erros == nil {
			linha.Erros = []string{}
		}
		if key != "" {
			masked := entity.MaskCPF(key)
			linha.CPF = &masked
		}
		if r.nome != "" {
			nome := truncate(r.nome, maxNomePreview)
			linha.Nome = &nome
		}
		if r.valorOK && r.valor.IsPositive() {
			v := r.valor
			linha.Valor = &v
		}
		if r.vencOK {
			v := r.vencimento.Format(time.DateOnly)
			linha.Vencimento = &v
		}
		if linha.StatusValidacao == LinhaAtualizar {
			c, err := uc.deps.Clientes.GetByCPF(ctx, tenantID, r.cpf)
			if err != nil {
				return nil, fmt.Errorf("importacao: cliente %s: %w", entity.MaskCPF(r.cpf), err)
			}
			if c != nil {
				linha.DadosExistentes = map[string]string{"nome": c.Nome, "telefone": c.Telefone, "email": c.Email}
			}
		}
		out.Preview = append(out.Preview, linha)
	}
	out.LinhasValidas = out.NovosClientes + out.Atualizacoes
	out.LinhasInvalidas += out.Duplicados

	stored := &ports.StoredPreview{
		ID:              out.PreviewID,
		TenantID:        tenantID,
		UsuarioID:       actor.ID,
		Arquivo:         up.Filename,
		TamanhoArquivo:  int64(len(up.Data)),
		CaminhoArquivo:  uc.archive(ctx, tenantID, up),
		TipoImportacao:  tipo,
		ColunasMapeadas: out.ColunasMapeadas,
		Sheet:           *sheet,
		CreatedAt:       now,
	}
	if err := uc.deps.Previews.Save(ctx, stored, uc.cfg.PreviewTTL); err != nil {
		return nil, fmt.Errorf("importacao: salvar preview: %w", err)
	}
	return out, nil
}

// ── Importação ────────────────────────────────────────────────────────────────

// Confirm importa um preview do mesmo tenant e o descarta. O preview é retirado do
// store antes de importar, então confirmações concorrentes importam uma única vez.
// Se a importação falhar o preview volta ao store pelo tempo que ainda lhe restava.
func (uc *UseCase) Confirm(ctx context.Context, actor *entity.User, requested *int64, previewID string, sobrescrever bool) (*dto.ResultadoImportacao, error) {
	tenantID, err := access.OperatingTenant(actor, requested)
	if err != nil {
		return nil, err
	}
	p, err := uc.deps.Previews.Get(ctx, previewID)
	if err != nil {
		return nil, fmt.Errorf("importacao: ler preview: %w", err)
	}
	if p == nil || p.TenantID != tenantID {
		return nil, domain.ErrPreviewExpired
	}
	cols, err := MapColumns(p.Sheet.Headers)
	if err != nil {
		return nil, err
	}
	p, err = uc.deps.Previews.Take(ctx, previewID)
	if err != nil {
		return nil, fmt.Errorf("importacao: retirar preview: %w", err)
	}
	if p == nil {
		return nil, domain.ErrPreviewExpired
	}
	res, err := uc.process(ctx, job{
		tenantID:     tenantID,
		usuarioID:    actor.ID,
		arquivo:      p.Arquivo,
		tamanho:      p.TamanhoArquivo,
		caminho:      p.CaminhoArquivo,
		tipo:         p.TipoImportacao,
		sobrescrever: sobrescrever,
		sheet:        &p.Sheet,
		cols:         cols,
	})
	if err != nil {
		uc.restorePreview(ctx, p)
		return nil, err
	}
	return res, nil
}

func (uc *UseCase) restorePreview(ctx context.Context, p *ports.StoredPreview) {
	ttl := p.CreatedAt.Add(uc.cfg.PreviewTTL).Sub(uc.now())
	if ttl <= 0 {
		return
	}
	if err := uc.deps.Previews.Save(ctx, p, ttl); err != nil {
		uc.log.Warn().Err(err).Str("preview_id", p.ID).Msg("não foi possível devolver o preview")
	}
}

// Direct lê e importa o arquivo sem preview.
func (uc *UseCase) Direct(ctx context.Context, actor *entity.User, requested *int64, tipo string, sobrescrever bool, up Upload) (*dto.ResultadoImportacao, error) {
	tenantID, err := access.OperatingTenant(actor, requested)
	if err != nil {
		return nil, err
	}
	tipo, err = normalizeTipo(tipo)
	if err != nil {
		return nil, err
	}
	sheet, cols, err := uc.readSheet(up)
	if err != nil {
		return nil, err
	}
	return uc.process(ctx, job{
		tenantID:     tenantID,
		usuarioID:    actor.ID,
		arquivo:      up.Filename,
		tamanho:      int64(len(up.Data)),
		caminho:      uc.archive(ctx, tenantID, up),
		tipo:         tipo,
		sobrescrever: sobrescrever,
		sheet:        sheet,
		cols:         cols,
	})
}

type job struct {
	tenantID     int64
	usuarioID    int64
	arquivo      string
	tamanho      int64
	caminho      string
	tipo         string
	sobrescrever bool
	sheet        *ports.Sheet
	cols         *ColumnMap
}

// process grava as linhas em uma única transação. O log de importação fica fora dela
// para que o status erro sobreviva ao rollback.
func (uc *UseCase) process(ctx context.Context, j job) (*dto.ResultadoImportacao, error) {
	log := &entity.ImportacaoLog{
		ID:              uuid.NewString(),
		TenantID:        j.tenantID,
		UsuarioID:       j.usuarioID,
		NomeArquivo:     j.arquivo,
		TamanhoArquivo:  j.tamanho,
		CaminhoArquivo:  j.caminho,
		TipoImportacao:  j.tipo,
		Status:          entity.ImportPendente,
		TotalLinhas:     len(j.sheet.Rows),
		ColunasMapeadas: j.cols.Headers(),
		DataInicio:      uc.now(),
	}
	if err := uc.deps.Importacoes.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("importacao: criar log: %w", err)
	}
	log.Status = entity.ImportProcessando
	if err := uc.deps.Importacoes.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("importacao: atualizar log: %w", err)
	}

	var c counters
	err := uc.deps.Tx.Run(ctx, func(repos repository.TxRepos) error {
		c = counters{}
		return uc.importRows(ctx, repos, j, &c)
	})

	fim := uc.now()
	log.DataFim = &fim
	if err != nil {
		log.Status = entity.ImportErro
		log.MensagemErro = err.Error()
		log.ErrosDetalhes = []string{err.Error()}
		if uerr := uc.deps.Importacoes.Update(ctx, log); uerr != nil {
			uc.log.Error().Err(uerr).Str("importacao_id", log.ID).Msg("falha ao registrar erro da importação")
		}
		uc.log.Error().Err(err).Str("importacao_id", log.ID).Int64("tenant_id", j.tenantID).Msg("importação falhou")
		return nil, fmt.Errorf("importacao: %w", err)
	}

	log.Status = entity.ImportConcluido
	log.LinhasProcessadas = c.processadas
	log.LinhasComErro = len(c.erros)
	log.ClientesCriados = c.clientesCriados
	log.ClientesAtualizados = c.clientesAtualizados
	log.ContratosCriados = c.contratosCriados
	log.ContratosAtualizados = c.contratosAtualizados
	log.ErrosDetalhes = firstN(c.erros, maxErrosResultado)
	if err := uc.deps.Importacoes.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("importacao: atualizar log: %w", err)
	}
	uc.log.Info().
		Str("importacao_id", log.ID).
		Int64("tenant_id", j.tenantID).
		Int("linhas", log.TotalLinhas).
		Int("clientes_criados", c.clientesCriados).
		Int("contratos_criados", c.contratosCriados).
		Int("erros", len(c.erros)).
		Msg("importação concluída")
	return toResultado(log), nil
}

type counters struct {
	processadas          int
	clientesCriados      int
	clientesAtualizados  int
	contratosCriados     int
	contratosAtualizados int
	erros                []string
}

func (uc *UseCase) importRows(ctx context.Context, repos repository.TxRepos, j job, c *counters) error {
	processados := map[string]bool{}
	now := uc.now()
	for idx, cells := range j.sheet.Rows {
		r := parseRow(j.cols, cells, idx)
		if r.cpfRaw == "" || processados[r.cpf] {
			continue
		}
		processados[r.cpf] = true
		if !r.valid() {
			c.erros = append(c.erros, fmt.Sprintf("Linha %d: Dados obrigatórios inválidos", r.linha))
			continue
		}

		cliente, err := repos.Clientes.GetByCPF(ctx, j.tenantID, r.cpf)
		if err != nil {
			return fmt.Errorf("linha %d: %w", r.linha, err)
		}
		if cliente != nil {
			if j.sobrescrever {
				applyClienteUpdate(cliente, j.cols, cells, r)
				cliente.UpdatedAt = &now
				if err := repos.Clientes.Update(ctx, cliente); err != nil {
					return fmt.Errorf("linha %d: %w", r.linha, err)
				}
				c.clientesAtualizados++
			}
		} else {
			cliente = newCliente(j.tenantID, j.cols, cells, r, now)
			if err := repos.Clientes.Create(ctx, cliente); err != nil {
				return fmt.Errorf("linha %d: %w", r.linha, err)
			}
			c.clientesCriados++
		}

		numero := j.cols.Value(cells, "numero_contrato")
		if numero == "" {
			numero = Digits(r.cpf) + "-" + strconv.Itoa(r.linha)
		}
		existente, err := repos.Contratos.GetByNumero(ctx, j.tenantID, numero)
		if err != nil {
			return fmt.Errorf("linha %d: %w", r.linha, err)
		}
		status := ParseStatus(j.cols.Value(cells, "status"))
		switch {
		case existente != nil && j.sobrescrever:
			existente.ValorOriginal = r.valor
			existente.DataVencimento = r.vencimento
			existente.Status = status
			existente.UpdatedAt = &now
			if err := repos.Contratos.Update(ctx, existente); err != nil {
				return fmt.Errorf("linha %d: %w", r.linha, err)
			}
			c.contratosAtualizados++
		case existente == nil:
			contrato := &entity.Contrato{
				NumeroContrato: numero,
				TenantID:       j.tenantID,
				ClienteID:      cliente.ID,
				ValorOriginal:  r.valor,
				ValorPago:      decimal.Zero,
				DataVencimento: r.vencimento,
				Status:         status,
				CreatedAt:      now,
			}
			if d, ok := ParseDate(j.cols.Value(cells, "data_contrato")); ok {
				contrato.DataContrato = &d
			}
			if err := repos.Contratos.Create(ctx, contrato); err != nil {
				return fmt.Errorf("linha %d: %w", r.linha, err)
			}
			c.contratosCriados++
		}
		c.processadas++
	}
	return nil
}

// applyClienteUpdate sobrescreve o nome e os campos opcionais mapeados e preenchidos.
func applyClienteUpdate(cl *entity.Cliente, cols *ColumnMap, cells []string, r row) {
	cl.Nome = r.nome
	if v := cols.Value(cells, "telefone"); v != "" {
		cl.Telefone = v
	}
	if v := cols.Value(cells, "email"); v != "" {
		cl.Email = v
	}
	if d, ok := ParseDate(cols.Value(cells, "data_nascimento")); ok {
		cl.DataNascimento = &d
	}
	if s := ParseSexo(cols.Value(cells, "sexo")); s != "" {
		cl.Sexo = s
	}
}

func newCliente(tenantID int64, cols *ColumnMap, cells []string, r row, now time.Time) *entity.Cliente {
	cl := &entity.Cliente{
		TenantID:  tenantID,
		Nome:      r.nome,
		CPF:       r.cpf,
		Sexo:      ParseSexo(cols.Value(cells, "sexo")),
		Telefone:  cols.Value(cells, "telefone"),
		Email:     cols.Value(cells, "email"),
		Endereco:  cols.Value(cells, "endereco"),
		Cidade:    cols.Value(cells, "cidade"),
		Estado:    ParseEstado(cols.Value(cells, "estado")),
		CEP:       cols.Value(cells, "cep"),
		CreatedAt: now,
	}
	if d, ok := ParseDate(cols.Value(cells, "data_nascimento")); ok {
		cl.DataNascimento = &d
	}
	return cl
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// Logs lista o histórico de importações do escopo do usuário.
func (uc *UseCase) Logs(ctx context.Context, actor *entity.User, requested *int64, page dto.PageRequest) (*dto.ListaLogsImportacao, error) {
	page.Normalize()
	scope := access.ResolveScope(actor, requested)
	list, total, err := uc.deps.Importacoes.List(ctx, scope.Filter(), page.PorPagina, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("importacao: listar logs: %w", err)
	}
	out := &dto.ListaLogsImportacao{
		Logs:      make([]dto.LogImportacao, 0, len(list)),
		Total:     total,
		Pagina:    page.Pagina,
		PorPagina: page.PorPagina,
	}
	for _, r := range list {
		usuario := r.UsuarioNome
		if usuario == "" {
			usuario = "Sistema"
		}
		var tenantNome *string
		if r.TenantNome != "" {
			n := r.TenantNome
			tenantNome = &n
		}
		out.Logs = append(out.Logs, dto.LogImportacao{
			ID:          r.Log.ID,
			Arquivo:     r.Log.NomeArquivo,
			Tipo:        r.Log.TipoImportacao,
			Status:      r.Log.Status,
			TotalLinhas: r.Log.TotalLinhas,
			Processados: r.Log.LinhasProcessadas,
			Erros:       r.Log.LinhasComErro,
			Data:        r.Log.DataInicio,
			Usuario:     usuario,
			TenantNome:  tenantNome,
		})
	}
	return out, nil
}

// Get devolve o resultado de uma importação visível para o usuário.
func (uc *UseCase) Get(ctx context.Context, actor *entity.User, id string) (*dto.ResultadoImportacao, error) {
	log, err := uc.getLog(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toResultado(log), nil
}

// Report gera o PDF de uma importação e o nome sugerido do arquivo.
func (uc *UseCase) Report(ctx context.Context, actor *entity.User, id string) ([]byte, string, error) {
	log, err := uc.getLog(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	tenantNome := ""
	t, err := uc.deps.Tenants.GetByID(ctx, log.TenantID)
	if err != nil {
		return nil, "", fmt.Errorf("importacao: tenant: %w", err)
	}
	if t != nil {
		tenantNome = t.Nome
	}
	pdf, err := uc.deps.Reports.ImportReport(log, tenantNome)
	if err != nil {
		return nil, "", fmt.Errorf("importacao: relatório: %w", err)
	}
	return pdf, "importacao_" + log.ID + ".pdf", nil
}

func (uc *UseCase) getLog(ctx context.Context, actor *entity.User, id string) (*entity.ImportacaoLog, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrImportNotFound
	}
	log, err := uc.deps.Importacoes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("importacao: log: %w", err)
	}
	if log == nil {
		return nil, domain.ErrImportNotFound
	}
	if err := access.ValidateTenantAccess(actor, log.TenantID); err != nil {
		return nil, err
	}
	return log, nil
}

// TemplateFile arquivo de template pronto para download.
type TemplateFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

var templateHeaders = []string{
	"cpf", "nome", "valor", "vencimento", "telefone", "email", "sexo", "data_nascimento",
	"numero_contrato", "status", "endereco", "cidade", "estado", "cep",
}

var templateRows = [][]string{
	{"123.456.789-00", "João da Silva", "1500.00", "2024-12-31", "(11) 99999-8888", "joao@email.com", "M", "1985-05-15",
		"CTR-001", "ativo", "Rua A, 123", "São Paulo", "SP", "01234-567"},
	{"987.654.321-00", "Maria Santos", "2300.50", "2024-11-15", "(21) 98888-7777", "maria@email.com", "F", "1990-08-22",
		"CTR-002", "atrasado", "Av. B, 456", "Rio de Janeiro", "RJ", "20000-000"},
	{"111.222.333-44", "Pedro Oliveira", "890.00", "2025-01-20", "(31) 97777-6666", "pedro@email.com", "M", "1978-03-10",
		"CTR-003", "ativo", "Rua C, 789", "Belo Horizonte", "MG", "30000-000"},
}

// Template gera o arquivo de exemplo em xlsx (padrão) ou csv.
func (uc *UseCase) Template(format string) (*TemplateFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ports.FormatXLSX
	}
	var ct string
	switch format {
	case ports.FormatXLSX:
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ports.FormatCSV:
		ct = "text/csv"
	default:
		return nil, domain.Errorf(domain.ErrInvalidInput, "Formato inválido. Use xlsx ou csv")
	}
	data, err := uc.deps.Writer.Write(format, templateSheet, templateHeaders, templateRows)
	if err != nil {
		return nil, fmt.Errorf("importacao: template: %w", err)
	}
	return &TemplateFile{Data: data, Filename: "template_importacao." + format, ContentType: ct}, nil
}

func toResultado(log *entity.ImportacaoLog) *dto.ResultadoImportacao {
	erros := firstN(log.ErrosDetalhes, maxErrosResultado)
	if erros == nil {
		erros = []string{}
	}
	total := log.LinhasComErro
	if log.Status == entity.ImportErro && total == 0 {
		total = len(log.ErrosDetalhes)
	}
	return &dto.ResultadoImportacao{
		IDImportacao:         log.ID,
		Arquivo:              log.NomeArquivo,
		TipoImportacao:       log.TipoImportacao,
		Status:               log.Status,
		TotalLinhas:          log.TotalLinhas,
		ClientesCriados:      log.ClientesCriados,
		ClientesAtualizados:  log.ClientesAtualizados,
		ContratosCriados:     log.ContratosCriados,
		ContratosAtualizados: log.ContratosAtualizados,
		TotalErros:           total,
		Erros:                erros,
		DataInicio:           log.DataInicio,
		DataFim:              log.DataFim,
		TenantID:             log.TenantID,
		UsuarioID:            log.UsuarioID,
	}
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return append([]string(nil), s[:n]...)
	}
	return s
}
