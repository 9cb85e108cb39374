package chatbot

import "strings"

// Context tags recognized by the responder. Anything else is treated as
// ContextGeneral rather than rejected, favoring availability here.
const (
	ContextGeneral   = "general"
	ContextExhibitor = "exhibitor"
	ContextPackage   = "package"
	ContextEvent     = "event"
)

// Rule pairs a keyword list with a canned response. The first rule whose
// keywords match wins, so order within a context matters.
type Rule struct {
	Keywords []string
	Response string
}

// Ruleset is the full declarative response table, keyed by context.
type Ruleset struct {
	rules    map[string][]Rule
	defaults map[string]string
	fallback string
}

// NewRuleset loads the built-in simulation table.
func NewRuleset() *Ruleset {
	return &Ruleset{
		rules:    defaultRules,
		defaults: contextDefaults,
		fallback: genericFallback,
	}
}

// Normalize maps an unknown or empty context tag to the general context.
func (rs *Ruleset) Normalize(context string) string {
	switch context {
	case ContextGeneral, ContextExhibitor, ContextPackage, ContextEvent:
		return context
	default:
		return ContextGeneral
	}
}

// Respond picks a canned response for the message via case-insensitive
// substring matching against the context's rules.
func (rs *Ruleset) Respond(message, context string) string {
	context = rs.Normalize(context)
	lowered := strings.ToLower(message)

	for _, rule := range rs.rules[context] {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return rule.Response
			}
		}
	}
	if def, ok := rs.defaults[context]; ok {
		return def
	}
	return rs.fallback
}

var defaultRules = map[string][]Rule{
	ContextPackage: {
		{
			Keywords: []string{"vip"},
			Response: "Le VIP Pass (750€) offre un accès privilégié sur 3 journées : rendez-vous B2B illimités, soirée de gala exclusive, conférences privées C-Level et service de conciergerie.",
		},
		{
			Keywords: []string{"premium"},
			Response: "Le Premium Pass (350€) couvre 2 journées complètes avec 5 rendez-vous B2B garantis, ateliers techniques spécialisés et accès à la zone VIP. C'est notre forfait le plus populaire.",
		},
		{
			Keywords: []string{"basic"},
			Response: "Le Basic Pass (150€) est le forfait essentiel pour 1 journée : 2 rendez-vous B2B garantis, accès aux pauses café et badge visiteur personnalisé.",
		},
		{
			Keywords: []string{"gratuit", "free"},
			Response: "Le Free Pass donne un accès gratuit aux espaces d'exposition, aux conférences publiques et à l'application mobile du salon.",
		},
		{
			Keywords: []string{"prix", "tarif", "coût", "cout", "budget"},
			Response: "Nos forfaits visiteur vont du Free Pass (gratuit) au VIP Pass (750€), en passant par le Basic Pass (150€) et le Premium Pass (350€). Chaque niveau ajoute des rendez-vous B2B et des accès exclusifs.",
		},
		{
			Keywords: []string{"partenariat", "partner", "sponsor", "stand"},
			Response: "Les packages partenaires vont du Startup Package (2 500$) au Platinum Package (25 000$), avec stand, badges exposant et visibilité croissante sur l'événement.",
		},
	},
	ContextExhibitor: {
		{
			Keywords: []string{"grue", "portique", "équipement", "equipement", "manutention"},
			Response: "Plusieurs exposants spécialisés en équipements portuaires (grues, portiques, automatisation) seront présents dans le hall principal. Consultez l'annuaire pour planifier vos rendez-vous B2B.",
		},
		{
			Keywords: []string{"digital", "iot", "ia", "data", "blockchain"},
			Response: "Les exposants du pôle digitalisation présentent des solutions IoT, IA et big data pour les opérations portuaires. Le village innovation regroupe les startups du secteur.",
		},
		{
			Keywords: []string{"énergie", "energie", "éolien", "eolien", "hydrogène", "hydrogene"},
			Response: "Le pavillon énergies renouvelables rassemble les acteurs de l'éolien offshore et de l'hydrogène vert. Des démonstrations sont programmées chaque après-midi.",
		},
		{
			Keywords: []string{"rendez-vous", "rencontrer", "contact", "b2b"},
			Response: "Utilisez le système de matching de la plateforme pour identifier les exposants compatibles avec vos objectifs et réserver des créneaux B2B.",
		},
	},
	ContextEvent: {
		{
			Keywords: []string{"horaire", "heure", "ouverture", "programme", "agenda"},
			Response: "Le salon est ouvert de 9h à 18h. Le programme détaillé des conférences et ateliers est disponible dans l'application mobile et mis à jour en temps réel.",
		},
		{
			Keywords: []string{"conférence", "conference", "keynote", "atelier"},
			Response: "Les conférences plénières ont lieu chaque matin en salle principale ; les ateliers techniques spécialisés se tiennent l'après-midi. Les sessions C-Level sont réservées aux détenteurs du VIP Pass.",
		},
		{
			Keywords: []string{"accès", "acces", "venir", "transport", "parking", "hôtel", "hotel"},
			Response: "Le parc des expositions est accessible en transports en commun et dispose d'un parking visiteurs. Des hôtels partenaires proposent des tarifs préférentiels aux participants.",
		},
		{
			Keywords: []string{"networking", "soirée", "soiree", "gala"},
			Response: "Des déjeuners networking sont organisés chaque jour ; la soirée de gala est réservée aux détenteurs du VIP Pass et aux partenaires Gold et Platinum.",
		},
	},
	ContextGeneral: {
		{
			Keywords: []string{"port", "portuaire", "terminal", "logistique"},
			Response: "Le salon couvre l'ensemble de l'écosystème portuaire : gestion des terminaux, logistique, manutention et stockage. Précisez votre domaine pour des recommandations ciblées.",
		},
		{
			Keywords: []string{"forfait", "pass", "prix", "tarif", "package"},
			Response: "Nous proposons des forfaits visiteur (Free, Basic, Premium, VIP) et des packages partenaires (Startup, Silver, Gold, Platinum). Demandez le détail d'un forfait pour en savoir plus.",
		},
		{
			Keywords: []string{"bonjour", "hello", "salut"},
			Response: "Bonjour et bienvenue sur l'assistant SIPORTS ! Je peux vous renseigner sur les forfaits, les exposants et le programme de l'événement maritime.",
		},
		{
			Keywords: []string{"merci"},
			Response: "Avec plaisir ! N'hésitez pas si vous avez d'autres questions sur l'événement maritime.",
		},
	},
}

var contextDefaults = map[string]string{
	ContextPackage:   "Nos forfaits visiteur et packages partenaires couvrent tous les besoins, du Free Pass gratuit au Platinum Package. Quel niveau vous intéresse ?",
	ContextExhibitor: "Plus de 300 exposants maritimes sont attendus. Indiquez votre secteur (équipements, digitalisation, énergies) pour des recommandations d'exposants.",
	ContextEvent:     "L'événement rassemble la communauté portuaire internationale sur 3 jours : conférences, ateliers, rendez-vous B2B et networking. Que souhaitez-vous savoir ?",
}

const genericFallback = "Je suis l'assistant virtuel de l'événement maritime SIPORTS. Je peux vous renseigner sur les forfaits, les exposants, le programme et les opportunités de networking portuaire."
