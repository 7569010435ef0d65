package entity

import (
	"testing"
)

func qtd(v int) *int {
	return &v
}

func TestCusteiosExternos_Validate(t *testing.T) {
	tests := []struct {
		name     string
		custeios CusteiosExternos
		wantErr  bool
	}{
		{
			name:     "empty is valid",
			custeios: CusteiosExternos{},
		},
		{
			name:     "flag with count",
			custeios: CusteiosExternos{Hospedagem: true, HospedagemQtd: qtd(3)},
		},
		{
			name:     "count at bounds",
			custeios: CusteiosExternos{Diarias: true, DiariasQtd: qtd(1), Almoco: true, AlmocoQtd: qtd(10)},
		},
		{
			name:     "flag without count",
			custeios: CusteiosExternos{PassagemAerea: true},
			wantErr:  true,
		},
		{
			name:     "count without flag",
			custeios: CusteiosExternos{JantarQtd: qtd(2)},
			wantErr:  true,
		},
		{
			name:     "count below range",
			custeios: CusteiosExternos{CafeManha: true, CafeManhaQtd: qtd(0)},
			wantErr:  true,
		},
		{
			name:     "count above range",
			custeios: CusteiosExternos{TransferAeroportoHotel: true, TransferAeroportoHotelQtd: qtd(11)},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.custeios.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTipoUsuario_IsValid(t *testing.T) {
	tests := []struct {
		tipo     TipoUsuario
		expected bool
	}{
		{TipoSolicitante, true},
		{TipoAutorizador, true},
		{TipoAdministrador, true},
		{TipoUsuario("root"), false},
		{TipoUsuario(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.tipo), func(t *testing.T) {
			if got := tt.tipo.IsValid(); got != tt.expected {
				t.Errorf("TipoUsuario.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}
