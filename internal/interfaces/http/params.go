package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
)

// queryTenantID lê ?tenant_id=; ausente ou vazio devolve nil.
func queryTenantID(c *fiber.Ctx) (*int64, error) {
	raw := c.Query("tenant_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "tenant_id inválido")
	}
	return &id, nil
}

// paramID lê um parâmetro de rota numérico positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Errorf(domain.ErrInvalidInput, "%s inválido", name)
	}
	return id, nil
}

// pageQuery lê ?pagina=&por_pagina= já normalizados.
func pageQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Pagina:    c.QueryInt("pagina", 1),
		PorPagina: c.QueryInt("por_pagina", 20),
	}
	p.Normalize()
	return p
}
