package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driving"
)

// Ensure CategoryScorer implements the interface.
var _ driving.ScorerService = (*CategoryScorer)(nil)

// scoredCategories is the tie-break order of the scorer.
var scoredCategories = []domain.Category{
	domain.CategoryHardware,
	domain.CategorySoftware,
	domain.CategoryNetwork,
	domain.CategorySecurity,
}

// scorerDefaultCategory is used when no keyword matches at all.
const scorerDefaultCategory = domain.CategorySoftware

var categoryKeywords = map[domain.Category][]string{
	domain.CategoryHardware: {
		"computadora", "pc", "laptop", "mouse", "teclado", "monitor",
		"impresora", "disco", "ram", "memoria", "cpu", "pantalla",
		"dispositivo", "equipo", "hardware",
	},
	domain.CategorySoftware: {
		"programa", "aplicación", "app", "software", "sistema", "windows",
		"office", "word", "excel", "correo", "email", "navegador",
		"chrome", "firefox", "instalar", "actualizar", "licencia",
	},
	domain.CategoryNetwork: {
		"internet", "wifi", "red", "conexión", "conectar", "ethernet",
		"cable", "router", "modem", "vpn", "acceso", "servidor",
		"ip", "dns", "ping", "lento", "velocidad",
	},
	domain.CategorySecurity: {
		"virus", "malware", "contraseña", "password", "hackeo", "ataque",
		"antivirus", "firewall", "phishing", "spam", "bloqueo", "acceso",
		"permisos", "seguridad", "protección", "amenaza",
	},
}

var urgentPhrases = []string{
	"urgente", "crítico", "emergencia", "inmediato", "ahora",
	"bloqueado", "no funciona", "caído", "importante", "necesito ya",
}

var requestPhrases = []string{
	"solicito", "requiero", "necesito", "quiero", "podría",
	"me gustaría", "consulta", "información", "ayuda con",
	"cómo", "cuando", "pregunta",
}

type actionKey struct {
	category domain.Category
	reqType  domain.RequestType
	priority domain.Priority
}

var recommendedActions = map[actionKey]string{
	{domain.CategoryHardware, domain.RequestTypeIncident, domain.PriorityHigh}: "IMMEDIATE ACTION: assign to a hardware technician. Urgent on-site visit.",
	{domain.CategoryHardware, domain.RequestTypeIncident, domain.PriorityMedium}: "Assign to a hardware technician. Schedule a visit within 24-48 hours.",
	{domain.CategoryHardware, domain.RequestTypeRequest, domain.PriorityLow}: "Register the equipment request. Check stock availability.",
	{domain.CategorySoftware, domain.RequestTypeIncident, domain.PriorityHigh}: "Assign to level 2 software support. Resolve through remote access.",
	{domain.CategorySoftware, domain.RequestTypeIncident, domain.PriorityMedium}: "Assign to level 1 software support. Contact the user within 2 hours.",
	{domain.CategorySoftware, domain.RequestTypeRequest, domain.PriorityLow}: "Send documentation or a tutorial. Schedule training if needed.",
	{domain.CategoryNetwork, domain.RequestTypeIncident, domain.PriorityHigh}: "URGENT: assign to the network administrator. Check connectivity immediately.",
	{domain.CategoryNetwork, domain.RequestTypeIncident, domain.PriorityMedium}: "Assign to network support. Verify configuration and cabling.",
	{domain.CategorySecurity, domain.RequestTypeIncident, domain.PriorityHigh}: "SECURITY ALERT: assign to the cybersecurity team. Isolate the equipment if necessary.",
	{domain.CategorySecurity, domain.RequestTypeRequest, domain.PriorityLow}: "Assign to the security officer. Provide good-practice guides.",
}

// CategoryScorer classifies text by counting keyword hits per category.
// It is independent of the rule ladder: the highest count wins, earlier
// categories win ties, and a text with no hits falls back to SOFTWARE.
type CategoryScorer struct{}

// NewCategoryScorer creates a category scorer.
func NewCategoryScorer() *CategoryScorer {
	return &CategoryScorer{}
}

// Score returns category, request type, priority and recommended action for text.
func (s *CategoryScorer) Score(text string) domain.ScoreResult {
	content := strings.ToLower(text)

	counts := make(map[domain.Category]int, len(scoredCategories))
	best := scoredCategories[0]
	for _, c := range scoredCategories {
		counts[c] = 0
		for _, k := range categoryKeywords[c] {
			if strings.Contains(content, k) {
				counts[c]++
			}
		}
		if counts[c] > counts[best] {
			best = c
		}
	}
	if counts[best] == 0 {
		best = scorerDefaultCategory
	}

	reqType := domain.RequestTypeIncident
	if domain.ContainsAny(content, requestPhrases) {
		reqType = domain.RequestTypeRequest
	}

	var priority domain.Priority
	switch {
	case domain.ContainsAny(content, urgentPhrases),
		reqType == domain.RequestTypeIncident &&
			(best == domain.CategoryHardware || best == domain.CategorySecurity):
		priority = domain.PriorityHigh
	case reqType == domain.RequestTypeIncident:
		priority = domain.PriorityMedium
	default:
		priority = domain.PriorityLow
	}

	return domain.ScoreResult{
		Category: best,
		Type:     reqType,
		Priority: priority,
		Action:   RecommendedAction(best, reqType, priority),
		Counts:   counts,
	}
}

// RecommendedAction looks up the handling for a classification triple.
// Triples without a specific entry get a generic action naming the category.
func RecommendedAction(category domain.Category, reqType domain.RequestType, priority domain.Priority) string {
	if action, ok := recommendedActions[actionKey{category, reqType, priority}]; ok {
		return action
	}
	return fmt.Sprintf("Assign to the %s team. Evaluate the specific case.", strings.ToLower(category.Description()))
}
