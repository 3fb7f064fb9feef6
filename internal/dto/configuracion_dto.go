package dto

type ActualizarCortesRequest struct {
	HoraCorte1 string `json:"hora_corte_1" validate:"required"`
	HoraCorte2 string `json:"hora_corte_2" validate:"required"`
}

type ConfiguracionCortesResponse struct {
	HoraCorte1 string `json:"hora_corte_1"`
	HoraCorte2 string `json:"hora_corte_2"`
}
