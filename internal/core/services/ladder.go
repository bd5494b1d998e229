package services

import "github.com/custodia-labs/triage-cli/internal/core/domain"

// Assignee teams used by the built-in ladder.
const (
	teamSecurity = "Security Team"
	teamSoftware = "Software Team"
	teamNetwork  = "Network Team"
	teamHardware = "Hardware Team"
	teamPrinters = "Hardware Team - Printers"
)

// builtinLadder is evaluated top to bottom after custom rules.
// Security and data-loss terms come before generic hardware terms.
// Keywords are in the ticket language (Spanish) and must stay lowercase.
var builtinLadder = []domain.BuiltinRule{
	{
		Label:    "Security incident",
		Keywords: []string{"virus", "malware", "ransomware", "phishing", "phising", "adjunto sospechoso", "suplantación"},
		Category: domain.CategorySecurity,
		Priority: domain.PriorityHigh,
		Assignee: teamSecurity,
	},
	{
		Label:    "Data recovery",
		Keywords: []string{"perdí", "perdida", "archivo eliminado", "no encuentro", "restaurar", "recuperar", "backup perdido", "datos borrados"},
		Category: domain.CategorySoftware,
		Priority: domain.PriorityHigh,
		Assignee: teamSoftware,
	},
	{
		Label:    "ERP / finance system",
		Keywords: []string{"erp", "contabilidad", "facturación", "finanzas", "nomina", "siga", "siaf", "sistema contable"},
		Category: domain.CategorySoftware,
		Priority: domain.PriorityHigh,
		Assignee: teamSoftware,
	},
	{
		Label:    "Remote access / VPN",
		Keywords: []string{"vpn", "acceso remoto", "escritorio remoto", "teamviewer", "conexión remota", "remote desktop"},
		Category: domain.CategoryNetwork,
		Priority: domain.PriorityHigh,
		Assignee: teamNetwork,
	},
	{
		Label:    "Equipment won't power on",
		Keywords: []string{"no enciende", "no prende", "pantalla negra", "no inicia"},
		Category: domain.CategoryHardware,
		Priority: domain.PriorityHigh,
		Assignee: teamHardware,
	},
	{
		Label:    "Network problem",
		Keywords: []string{"red", "internet", "wifi", "conexion", "dominio"},
		Category: domain.CategoryNetwork,
		Priority: domain.PriorityHigh,
		Assignee: teamNetwork,
	},
	{
		Label:    "Corporate system problem",
		Keywords: []string{"siga", "siaf", "sgd", "sisper", "sistema", "intranet"},
		Category: domain.CategorySoftware,
		Priority: domain.PriorityHigh,
		Assignee: teamSoftware,
	},
	{
		Label:    "Peripheral problem",
		Keywords: []string{"mouse", "ratón", "teclado", "monitor", "pantalla", "webcam", "microfono", "altavoz", "parlante"},
		Category: domain.CategoryHardware,
		Priority: domain.PriorityMedium,
		Assignee: teamHardware,
	},
	{
		Label:    "Slow equipment",
		Keywords: []string{"lento", "lenta", "lentos", "lentas", "demora", "tarda", "rendimiento", "optimizar"},
		Category: domain.CategoryHardware,
		Priority: domain.PriorityMedium,
		Assignee: teamHardware,
	},
	{
		Label:    "Printer problem",
		Keywords: []string{"impresora", "toner", "impresion", "escaner", "atasco"},
		Category: domain.CategoryPrintScan,
		Priority: domain.PriorityMedium,
		Assignee: teamPrinters,
	},
	{
		Label:    "Password problem",
		Keywords: []string{"contraseña", "password", "bloqueada", "expirada", "restablecimiento"},
		Category: domain.CategorySecurity,
		Priority: domain.PriorityMedium,
		Assignee: teamSecurity,
	},
	{
		Label:    "Corporate email",
		Keywords: []string{"correo", "email", "gmail", "outlook", "corporativo"},
		Category: domain.CategorySoftware,
		Priority: domain.PriorityMedium,
		Assignee: teamSoftware,
	},
	{
		Label:    "General advice",
		Keywords: []string{"asesoria", "ayuda", "como", "consulta", "duda"},
		Category: domain.CategorySoftware,
		Priority: domain.PriorityLow,
		Assignee: teamSoftware,
	},
	{
		Label:    "Enablement / configuration",
		Keywords: []string{"habilitar", "configurar", "activar", "crear", "backup"},
		Category: domain.CategorySoftware,
		Priority: domain.PriorityLow,
		Assignee: teamSoftware,
	},
	{
		Label:    "Software installation",
		Keywords: []string{"instalacion", "instalar", "software", "programa", "aplicacion"},
		Category: domain.CategorySoftware,
		Priority: domain.PriorityLow,
		Assignee: teamSoftware,
	},
}
