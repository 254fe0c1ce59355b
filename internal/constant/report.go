package constant

// Report statuses are conventions only; any short string is accepted.
const (
	ReportStatusDraft     = "rascunho"
	ReportStatusCompleted = "concluido"
	ReportStatusApproved  = "aprovado"

	ReportStatusMaxLength = 50
)
