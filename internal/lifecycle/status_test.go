package lifecycle

import "testing"

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusPendenteAprovacao, false},
		{StatusAguardandoCorrecao, false},
		{StatusAprovada, false},
		{StatusAguardandoPrestacao, false},
		{StatusPrestacaoEmAnalise, false},
		{StatusPendenciaPrestacao, false},
		{StatusReprovada, true},
		{StatusCancelada, true},
		{StatusFinalizada, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("Status.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected bool
	}{
		{"valid status", StatusPendenteAprovacao, true},
		{"valid status", StatusFinalizada, true},
		{"invalid status", Status("INVALID"), false},
		{"empty status", Status(""), false},
		{"case sensitive", Status("pendente de aprovação"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.expected {
				t.Errorf("Status.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_IsPostApproval(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusPendenteAprovacao, false},
		{StatusAguardandoCorrecao, false},
		{StatusReprovada, false},
		{StatusCancelada, false},
		{StatusAprovada, true},
		{StatusAguardandoPrestacao, true},
		{StatusPrestacaoEmAnalise, true},
		{StatusPendenciaPrestacao, true},
		{StatusFinalizada, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsPostApproval(); got != tt.expected {
				t.Errorf("Status.IsPostApproval() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_String(t *testing.T) {
	if got := StatusAguardandoPrestacao.String(); got != "Aguardando Prestação de Contas" {
		t.Errorf("Status.String() = %v, want %v", got, "Aguardando Prestação de Contas")
	}
}
