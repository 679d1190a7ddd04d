package catalog

// DefaultProducts is the storefront assortment served when no external
// catalog source is configured.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "7f9a1c02-4b11-4a6f-9a33-c1f2a0d2b901",
			Slug:        "oleo-de-massagem-morango",
			Name:        "Óleo de Massagem Morango",
			Description: "Óleo corporal beijável com aroma de morango, 30ml.",
			Category:    "cosméticos",
			Price:       3490,
			InStock:     true,
		},
		{
			ID:          "2d6c8e17-0f5d-4f7b-8a4e-61b3d9c0a542",
			Slug:        "gel-comestivel-chocolate",
			Name:        "Gel Comestível Chocolate",
			Description: "Gel para massagem com sabor de chocolate, 40g.",
			Category:    "cosméticos",
			Price:       2790,
			InStock:     true,
		},
		{
			ID:          "b4e01f6a-93c7-45d2-b7c8-2f80a5d417e3",
			Slug:        "vela-aromatica-lavanda",
			Name:        "Vela Aromática Lavanda",
			Description: "Vela de massagem que derrete em óleo morno, 90g.",
			Category:    "ambiente",
			Price:       6990,
			InStock:     true,
		},
		{
			ID:          "9c3b7a58-6d2e-4c91-a0f4-85e1b2c6d730",
			Slug:        "kit-massagem-casal",
			Name:        "Kit Massagem Casal",
			Description: "Kit com óleo, vela e venda de cetim em embalagem presenteável.",
			Category:    "kits",
			Price:       12990,
			InStock:     true,
		},
		{
			ID:          "e8d5f240-1a9b-4e63-bc72-30c4a7f8d615",
			Slug:        "venda-de-cetim",
			Name:        "Venda de Cetim",
			Description: "Venda dupla face em cetim preto com acabamento acolchoado.",
			Category:    "acessórios",
			Price:       1990,
			InStock:     true,
		},
		{
			ID:          "51a2c9e7-b3f8-4d06-9e14-7c8d20b6a493",
			Slug:        "espuma-de-banho-rosas",
			Name:        "Espuma de Banho Rosas",
			Description: "Espuma de banho relaxante com pétalas de rosas, 250ml.",
			Category:    "cosméticos",
			Price:       4590,
			InStock:     true,
		},
		{
			ID:          "c7f3e8b1-5d04-4a29-8c6f-91b0d2e4a857",
			Slug:        "baralho-desafios",
			Name:        "Baralho de Desafios",
			Description: "Jogo de cartas para casais com 50 desafios.",
			Category:    "jogos",
			Price:       2490,
			InStock:     true,
		},
		{
			ID:          "0a8d4f26-7e91-4b35-a2c0-d6e3f1b8c574",
			Slug:        "difusor-de-aromas",
			Name:        "Difusor de Aromas",
			Description: "Difusor de varetas com essência de baunilha, 100ml.",
			Category:    "ambiente",
			Price:       5290,
			InStock:     false,
		},
	}
}
