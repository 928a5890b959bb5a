package rota

// Dados de demonstração do modo offline, uma rota de quatro oficinas
// paulistanas da mesma campanha.

func MockCampanha() Campanha {
	return Campanha{
		IDCampanha: 1,
		Nome:       "Campanha Oleo Premium",
		Objetivo:   "VENDA",
	}
}

func MockRotas() []Rota {
	campanha := MockCampanha()
	km := func(v float64) *float64 { return &v }

	return []Rota{
		{
			IDRotaPromotor:     1,
			IDOficina:          1,
			IDCampanhaPromotor: 1,
			Status:             StatusBacklog,
			Oficina: Oficina{
				IDOficina:   1,
				Nome:        "Auto Center Oliveira",
				Endereco:    "Rua das Flores, 123, Centro, Sao Paulo, SP",
				Telefone:    "(11) 3456-7890",
				Localizacao: "-23.5505,-46.6333",
				Bairro:      "Centro",
				Cidade:      "Sao Paulo",
				Estado:      "SP",
				DistanciaKm: km(1.2),
			},
			Campanha: campanha,
		},
		{
			IDRotaPromotor:     2,
			IDOficina:          2,
			IDCampanhaPromotor: 1,
			Status:             StatusBacklog,
			Oficina: Oficina{
				IDOficina:   2,
				Nome:        "Mecanica Rapida Express",
				Endereco:    "Av. Brasil, 456, Liberdade, Sao Paulo, SP",
				Telefone:    "(11) 2345-6789",
				Localizacao: "-23.5575,-46.6353",
				Bairro:      "Liberdade",
				Cidade:      "Sao Paulo",
				Estado:      "SP",
				DistanciaKm: km(2.8),
			},
			Campanha: campanha,
		},
		{
			IDRotaPromotor:     3,
			IDOficina:          3,
			IDCampanhaPromotor: 1,
			Status:             StatusBacklog,
			Oficina: Oficina{
				IDOficina:   3,
				Nome:        "Oficina do Joao Freios",
				Endereco:    "Rua Augusta, 789, Consolacao, Sao Paulo, SP",
				Telefone:    "(11) 1234-5678",
				Localizacao: "-23.5615,-46.6553",
				Bairro:      "Consolacao",
				Cidade:      "Sao Paulo",
				Estado:      "SP",
				DistanciaKm: km(4.5),
			},
			Campanha: campanha,
		},
		{
			IDRotaPromotor:     4,
			IDOficina:          4,
			IDCampanhaPromotor: 1,
			Status:             StatusBacklog,
			Oficina: Oficina{
				IDOficina:   4,
				Nome:        "Point Car Service",
				Endereco:    "Rua Vergueiro, 321, Vila Mariana, Sao Paulo, SP",
				Telefone:    "(11) 9876-5432",
				Localizacao: "-23.5725,-46.6363",
				Bairro:      "Vila Mariana",
				Cidade:      "Sao Paulo",
				Estado:      "SP",
				DistanciaKm: km(6.1),
			},
			Campanha: campanha,
		},
	}
}
