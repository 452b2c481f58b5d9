package assistant

// All template tables in this file are constructed once and never mutated,
// so they are shared safely across concurrent requests.

// langText picks the variant for a language code, falling back to English
// for unknown codes.
func langText(m map[string]string, lang string) string {
	if s, ok := m[lang]; ok {
		return s
	}
	return m[LangEnglish]
}

// greetings is keyed by "{role}_greeting_{language}".
var greetings = map[string]string{
	"student_greeting_ht": "Bonjou! Mwen se asistan Lakou a. Kisa ou ta renmen aprann jodi a?",
	"student_greeting_en": "Hello! I'm the Lakou assistant. What would you like to learn today?",
	"student_greeting_fr": "Bonjour ! Je suis l'assistant Lakou. Que souhaitez-vous apprendre aujourd'hui ?",

	"teacher_greeting_ht": "Bonjou pwofesè! Mwen la pou ede w jere kou ou yo ak elèv ou yo.",
	"teacher_greeting_en": "Hello teacher! I'm here to help you manage your courses and students.",
	"teacher_greeting_fr": "Bonjour professeur ! Je suis là pour vous aider avec vos cours et vos élèves.",

	"sme_greeting_ht": "Bonjou ekspè! Mwen ka ede w pataje konesans ou sou platfòm nan.",
	"sme_greeting_en": "Hello expert! I can help you share your knowledge on the platform.",
	"sme_greeting_fr": "Bonjour expert ! Je peux vous aider à partager vos connaissances sur la plateforme.",

	"admin_greeting_ht": "Bonjou administratè! Kisa w bezwen tcheke jodi a?",
	"admin_greeting_en": "Hello administrator! What do you need to check today?",
	"admin_greeting_fr": "Bonjour administrateur ! Que souhaitez-vous vérifier aujourd'hui ?",
}

const genericGreeting = "Hello! How can I help you today?"

// Greeting resolves a greeting through the fixed four-level fallback chain:
// exact (role, language), then (role, en), then (student, en), then a
// hardcoded generic greeting. It never returns an empty string.
func Greeting(role, lang string) string {
	if s, ok := greetings[role+"_greeting_"+lang]; ok {
		return s
	}
	if s, ok := greetings[role+"_greeting_"+LangEnglish]; ok {
		return s
	}
	if s, ok := greetings["student_greeting_"+LangEnglish]; ok {
		return s
	}
	return genericGreeting
}

// errorResponses is the shared generic-error table strategies fall back to
// when an auxiliary data-store call fails.
var errorResponses = map[string]string{
	LangHaitian: "Padon, mwen pa t ka jwenn enfòmasyon sa a kounye a. Tanpri eseye ankò pita.",
	LangEnglish: "Sorry, I couldn't fetch that information right now. Please try again later.",
	LangFrench:  "Désolé, je n'ai pas pu récupérer cette information. Veuillez réessayer plus tard.",
}

func ErrorResponse(lang string) string {
	return langText(errorResponses, lang)
}

var disabledNotices = map[string]string{
	LangHaitian: "Asistan AI a dezaktive nan paramèt ou yo. Ou ka aktive l nenpòt lè.",
	LangEnglish: "The AI assistant is disabled in your settings. You can enable it at any time.",
	LangFrench:  "L'assistant IA est désactivé dans vos paramètres. Vous pouvez l'activer à tout moment.",
}

func disabledNotice(lang string) string {
	return langText(disabledNotices, lang)
}

// apologies is the generic 500-class text; it never leaks internal detail.
var apologies = map[string]string{
	LangHaitian: "Padon, yon bagay pa t mache. Tanpri eseye ankò nan yon ti moman.",
	LangEnglish: "Sorry, something went wrong. Please try again in a moment.",
	LangFrench:  "Désolé, une erreur s'est produite. Veuillez réessayer dans un instant.",
}

func Apology(lang string) string {
	return langText(apologies, lang)
}

// contextualFallbacks holds the static (language, role) responses used when
// a message matches no intent and the completion API is unavailable or the
// message is too short.
var contextualFallbacks = map[string]map[string]string{
	LangHaitian: {
		RoleStudent: "Mwen la pou ede w ak kou ou yo, pwogrè w ak rekòmandasyon. Di m plis sou sa w ap chèche.",
		RoleTeacher: "Mwen ka ede w ak estatistik klas ou yo ak jesyon kou. Kisa w ta renmen konnen?",
		RoleSme:     "Mwen ka ede w ak kontni w ap pataje yo. Di m plis sou sa w bezwen.",
		RoleAdmin:   "Mwen ka ede w ak aktivite platfòm nan. Kisa w ta renmen tcheke?",
	},
	LangEnglish: {
		RoleStudent: "I'm here to help with your courses, progress and recommendations. Tell me more about what you're looking for.",
		RoleTeacher: "I can help with your class analytics and course management. What would you like to know?",
		RoleSme:     "I can help with the content you're sharing. Tell me more about what you need.",
		RoleAdmin:   "I can help with platform activity. What would you like to check?",
	},
	LangFrench: {
		RoleStudent: "Je suis là pour vous aider avec vos cours, votre progression et des recommandations. Dites-m'en plus.",
		RoleTeacher: "Je peux vous aider avec les statistiques de vos classes et la gestion des cours. Que voulez-vous savoir ?",
		RoleSme:     "Je peux vous aider avec le contenu que vous partagez. Dites-m'en plus sur vos besoins.",
		RoleAdmin:   "Je peux vous aider avec l'activité de la plateforme. Que souhaitez-vous vérifier ?",
	},
}

// ContextualFallback returns the static response for a (language, role)
// pair, degrading to English, then to the student variant, and finally to
// the generic error text so it never comes back empty.
func ContextualFallback(role, lang string) string {
	byRole, ok := contextualFallbacks[lang]
	if !ok {
		byRole = contextualFallbacks[LangEnglish]
	}
	if s, ok := byRole[role]; ok {
		return s
	}
	if s, ok := byRole[RoleStudent]; ok {
		return s
	}
	return ErrorResponse(lang)
}

// Strategy response templates. Each carries a fmt verb set documented at its
// use site in strategies.go.

var personalizationIntros = map[string]string{
	LangHaitian: "Men yon chemen aprantisaj pou ou:",
	LangEnglish: "Here's a learning path for you:",
	LangFrench:  "Voici un parcours d'apprentissage pour vous :",
}

var personalizationEmpties = map[string]string{
	LangHaitian: "Mwen poko gen ase enfòmasyon pou pèsonalize chemen ou. Kontinye eksplore kou yo!",
	LangEnglish: "I don't have enough information to personalize your path yet. Keep exploring courses!",
	LangFrench:  "Je n'ai pas encore assez d'informations pour personnaliser votre parcours. Continuez à explorer les cours !",
}

var recommendationIntros = map[string]string{
	LangHaitian: "Men sa mwen rekòmande pou ou:",
	LangEnglish: "Here's what I recommend for you:",
	LangFrench:  "Voici ce que je vous recommande :",
}

var noRecommendations = map[string]string{
	LangHaitian: "Mwen poko gen rekòmandasyon pou ou. Di m plis sou enterè w yo!",
	LangEnglish: "I don't have recommendations for you yet. Tell me more about your interests!",
	LangFrench:  "Je n'ai pas encore de recommandations pour vous. Parlez-moi de vos centres d'intérêt !",
}

// analytics: teacher variant takes (students, courses, completion %).
var teacherAnalytics = map[string]string{
	LangHaitian: "Ou gen %d elèv aktif nan %d kou. To konpletasyon mwayèn: %d%%.",
	LangEnglish: "You have %d active students across %d courses. Average completion rate: %d%%.",
	LangFrench:  "Vous avez %d élèves actifs dans %d cours. Taux de complétion moyen : %d%%.",
}

// analytics: sme variant takes (published, pending, top topic).
var smeAnalytics = map[string]string{
	LangHaitian: "Ou pibliye %d kontni, %d ap tann revizyon. Sijè ki pi popilè a: %s.",
	LangEnglish: "You've published %d pieces of content, %d awaiting review. Top topic: %s.",
	LangFrench:  "Vous avez publié %d contenus, %d en attente de révision. Sujet le plus populaire : %s.",
}

// analytics: student variant takes (courses, average progress %).
var studentAnalytics = map[string]string{
	LangHaitian: "W ap swiv %d kou. Pwogrè mwayèn ou: %d%%. Kontinye konsa!",
	LangEnglish: "You're following %d courses. Your average progress: %d%%. Keep it up!",
	LangFrench:  "Vous suivez %d cours. Votre progression moyenne : %d%%. Continuez ainsi !",
}

var analyticsEmpties = map[string]string{
	LangHaitian: "Mwen poko gen done aktivite pou ou. Kòmanse yon kou pou w wè estatistik ou!",
	LangEnglish: "I don't have activity data for you yet. Start a course to see your stats!",
	LangFrench:  "Je n'ai pas encore de données d'activité pour vous. Commencez un cours pour voir vos statistiques !",
}

var voiceEnabledTexts = map[string]string{
	LangHaitian: "Vwa a aktive! Ou ka peze bouton mikwo a pou pale avè m dirèkteman.",
	LangEnglish: "Voice is enabled! You can press the mic button to talk to me directly.",
	LangFrench:  "La voix est activée ! Appuyez sur le bouton micro pour me parler directement.",
}

var voiceDisabledTexts = map[string]string{
	LangHaitian: "Vwa a dezaktive nan paramèt ou yo. Aktive l pou w ka pale avè m.",
	LangEnglish: "Voice is disabled in your settings. Enable it to talk to me.",
	LangFrench:  "La voix est désactivée dans vos paramètres. Activez-la pour me parler.",
}

// course list intro; each item is formatted as "title (progress %)".
var courseIntros = map[string]string{
	LangHaitian: "Men kou resan ou yo:",
	LangEnglish: "Here are your recent courses:",
	LangFrench:  "Voici vos cours récents :",
}

var courseEmpties = map[string]string{
	LangHaitian: "Ou poko enskri nan okenn kou. Ale nan katalòg la pou w kòmanse!",
	LangEnglish: "You're not enrolled in any courses yet. Head to the catalog to get started!",
	LangFrench:  "Vous n'êtes inscrit à aucun cours pour le moment. Consultez le catalogue pour commencer !",
}

// progress summary takes (average progress %, course count).
var progressSummaries = map[string]string{
	LangHaitian: "Ou rive nan %d%% an mwayèn sou %d kou. Bon travay!",
	LangEnglish: "You're at %d%% average progress across %d courses. Great work!",
	LangFrench:  "Vous êtes à %d%% de progression moyenne sur %d cours. Beau travail !",
}

var progressEmpties = map[string]string{
	LangHaitian: "Mwen poko wè pwogrè pou ou. Kòmanse yon leson jodi a!",
	LangEnglish: "I don't see any progress for you yet. Start a lesson today!",
	LangFrench:  "Je ne vois pas encore de progression pour vous. Commencez une leçon aujourd'hui !",
}
